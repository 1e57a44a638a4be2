package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edersonsgoncalves/acoes-backend/internal/apperrors"
	"github.com/edersonsgoncalves/acoes-backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetPortfolios retrieves all portfolios ordered by name.
// Returns an empty slice when none exist.
func (r *PortfolioRepository) GetPortfolios() ([]model.Portfolio, error) {
	query := `
		SELECT id, name, created_at
		FROM portfolio
		ORDER BY name ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		var p model.Portfolio
		var createdAtStr string

		if err := rows.Scan(&p.ID, &p.Name, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}

		p.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil || p.CreatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolio retrieves a single portfolio by ID.
// Returns apperrors.ErrPortfolioNotFound when no row matches.
func (r *PortfolioRepository) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT id, name, created_at
		FROM portfolio
		WHERE id = ?
	`

	var p model.Portfolio
	var createdAtStr string

	err := r.db.QueryRow(query, portfolioID).Scan(&p.ID, &p.Name, &createdAtStr)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to scan portfolio table results: %w", err)
	}

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || p.CreatedAt.IsZero() {
		return model.Portfolio{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return p, nil
}

// InsertPortfolio stores a new portfolio.
// Returns apperrors.ErrDuplicateEntry when the name is already taken.
func (r *PortfolioRepository) InsertPortfolio(ctx context.Context, portfolio *model.Portfolio) error {
	query := `
		INSERT INTO portfolio (id, name, created_at)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, portfolio.ID, portfolio.Name, portfolio.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to insert into portfolio table: %w", err)
	}

	return nil
}

// DeletePortfolio removes a portfolio that has no recorded operations.
// Returns apperrors.ErrPortfolioInUse when operations still reference it.
func (r *PortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	var operationCount int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operation WHERE portfolio_id = ?`, portfolioID).Scan(&operationCount)
	if err != nil {
		return fmt.Errorf("failed to count operations for portfolio: %w", err)
	}
	if operationCount > 0 {
		return apperrors.ErrPortfolioInUse
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete from portfolio table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}
