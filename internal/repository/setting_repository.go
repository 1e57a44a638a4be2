package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edersonsgoncalves/acoes-backend/internal/apperrors"
)

// SettingRepository provides data access methods for the setting table,
// a small key/value store for provider credentials and feature toggles.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a stored value and whether it is encrypted at rest.
// Returns apperrors.ErrSettingNotFound when the key does not exist.
func (r *SettingRepository) GetSetting(key string) (value string, encrypted bool, err error) {
	query := `SELECT value, encrypted FROM setting WHERE key = ?`

	err = r.db.QueryRow(query, key).Scan(&value, &encrypted)
	if err == sql.ErrNoRows {
		return "", false, apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to scan setting table results: %w", err)
	}

	return value, encrypted, nil
}

// UpsertSetting stores a value under the given key, replacing any previous one.
func (r *SettingRepository) UpsertSetting(ctx context.Context, key, value string, encrypted bool) error {
	query := `
		INSERT INTO setting (key, value, encrypted)
		VALUES (?, ?, ?)
		ON CONFLICT(key)
		DO UPDATE SET value = excluded.value, encrypted = excluded.encrypted
	`

	if _, err := r.db.ExecContext(ctx, query, key, value, encrypted); err != nil {
		return fmt.Errorf("failed to upsert into setting table: %w", err)
	}

	return nil
}
