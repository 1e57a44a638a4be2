package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edersonsgoncalves/acoes-backend/internal/apperrors"
	"github.com/edersonsgoncalves/acoes-backend/internal/model"
)

// AssetRepository provides data access methods for the asset and
// operation_type tables.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// GetAssets retrieves one page of assets ordered by name ascending.
// page is 1-based; perPage must be positive.
func (r *AssetRepository) GetAssets(page, perPage int) (model.AssetPage, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM asset`).Scan(&total); err != nil {
		return model.AssetPage{}, fmt.Errorf("failed to count asset table: %w", err)
	}

	query := `
		SELECT id, ticker, name, segment, asset_type
		FROM asset
		ORDER BY name ASC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, perPage, (page-1)*perPage)
	if err != nil {
		return model.AssetPage{}, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}

	for rows.Next() {
		var a model.Asset
		var segment, assetType sql.NullString

		if err := rows.Scan(&a.ID, &a.Ticker, &a.Name, &segment, &assetType); err != nil {
			return model.AssetPage{}, fmt.Errorf("failed to scan asset table results: %w", err)
		}
		a.Segment = segment.String
		a.Type = assetType.String

		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return model.AssetPage{}, fmt.Errorf("error iterating asset table: %w", err)
	}

	totalPages := (total + perPage - 1) / perPage

	return model.AssetPage{
		Items:      assets,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetAsset retrieves a single asset by ID.
// Returns apperrors.ErrAssetNotFound when no row matches.
func (r *AssetRepository) GetAsset(assetID string) (model.Asset, error) {
	query := `
		SELECT id, ticker, name, segment, asset_type
		FROM asset
		WHERE id = ?
	`

	var a model.Asset
	var segment, assetType sql.NullString

	err := r.db.QueryRow(query, assetID).Scan(&a.ID, &a.Ticker, &a.Name, &segment, &assetType)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to scan asset table results: %w", err)
	}

	a.Segment = segment.String
	a.Type = assetType.String

	return a, nil
}

// InsertAsset stores a new asset.
// Returns apperrors.ErrDuplicateEntry when the ticker is already registered.
func (r *AssetRepository) InsertAsset(ctx context.Context, asset *model.Asset) error {
	query := `
		INSERT INTO asset (id, ticker, name, segment, asset_type)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, asset.ID, asset.Ticker, asset.Name, asset.Segment, asset.Type)
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to insert into asset table: %w", err)
	}

	return nil
}

// UpdateAsset overwrites the mutable fields of an asset.
// Returns apperrors.ErrAssetNotFound when no row matches,
// apperrors.ErrDuplicateEntry when the new ticker collides.
func (r *AssetRepository) UpdateAsset(ctx context.Context, asset *model.Asset) error {
	query := `
		UPDATE asset
		SET ticker = ?, name = ?, segment = ?, asset_type = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, asset.Ticker, asset.Name, asset.Segment, asset.Type, asset.ID)
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to update asset table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// DeleteAsset removes an asset that has no recorded operations.
// Returns apperrors.ErrAssetInUse when operations still reference it.
func (r *AssetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	var operationCount int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operation WHERE asset_id = ?`, assetID).Scan(&operationCount)
	if err != nil {
		return fmt.Errorf("failed to count operations for asset: %w", err)
	}
	if operationCount > 0 {
		return apperrors.ErrAssetInUse
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM asset WHERE id = ?`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete from asset table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// GetOperationTypes retrieves the seeded operation-type catalog.
func (r *AssetRepository) GetOperationTypes() ([]model.OperationTypeInfo, error) {
	rows, err := r.db.Query(`SELECT name, description FROM operation_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to query operation_type table: %w", err)
	}
	defer rows.Close()

	types := []model.OperationTypeInfo{}

	for rows.Next() {
		var name string
		var description sql.NullString

		if err := rows.Scan(&name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan operation_type table results: %w", err)
		}

		opType, ok := model.ParseOperationType(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidOperationType, name)
		}

		types = append(types, model.OperationTypeInfo{Name: opType, Description: description.String})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operation_type table: %w", err)
	}

	return types, nil
}
