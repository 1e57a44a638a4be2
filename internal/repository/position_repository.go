package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edersonsgoncalves/acoes-backend/internal/model"
)

// PositionRepository provides data access methods for the position table,
// the derived custody cache. One row per (portfolio, asset) pair, upsert
// semantics; the table is rebuildable from the operation ledger at any time.
type PositionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside
// the given transaction.
func (r *PositionRepository) WithTx(tx *sql.Tx) *PositionRepository {
	return &PositionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PositionRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetPosition retrieves the stored position for one (portfolio, asset) pair.
// An absent pair reads as the zero position, not as an error.
func (r *PositionRepository) GetPosition(portfolioID, assetID string) (model.Position, error) {
	query := `
		SELECT portfolio_id, asset_id, custody, avg_price
		FROM position
		WHERE portfolio_id = ? AND asset_id = ?
	`

	var p model.Position
	var custodyStr, avgPriceStr string

	err := r.getQuerier().QueryRow(query, portfolioID, assetID).Scan(&p.PortfolioID, &p.AssetID, &custodyStr, &avgPriceStr)
	if err == sql.ErrNoRows {
		return model.ZeroPosition(portfolioID, assetID), nil
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to scan position table results: %w", err)
	}

	if p.Custody, err = ParseDecimal(custodyStr); err != nil {
		return model.Position{}, err
	}
	if p.AveragePrice, err = ParseDecimal(avgPriceStr); err != nil {
		return model.Position{}, err
	}

	return p, nil
}

// UpsertPosition writes the derived position for a pair, inserting the row
// on first touch and overwriting it afterwards.
func (r *PositionRepository) UpsertPosition(ctx context.Context, position model.Position) error {
	query := `
		INSERT INTO position (portfolio_id, asset_id, custody, avg_price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(portfolio_id, asset_id)
		DO UPDATE SET custody = excluded.custody, avg_price = excluded.avg_price
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		position.PortfolioID,
		position.AssetID,
		position.Custody.String(),
		position.AveragePrice.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert into position table: %w", err)
	}

	return nil
}

// GetPositionsPerPortfolio retrieves every stored position of a portfolio
// enriched with asset data, ordered by asset name.
func (r *PositionRepository) GetPositionsPerPortfolio(portfolioID string) ([]model.PositionResponse, error) {
	query := `
		SELECT p.portfolio_id, p.asset_id, a.ticker, a.name, p.custody, p.avg_price
		FROM position p
		JOIN asset a ON p.asset_id = a.id
		WHERE p.portfolio_id = ?
		ORDER BY a.name ASC
	`

	rows, err := r.getQuerier().Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.PositionResponse{}

	for rows.Next() {
		var p model.PositionResponse
		var custodyStr, avgPriceStr string

		err := rows.Scan(&p.PortfolioID, &p.AssetID, &p.Ticker, &p.AssetName, &custodyStr, &avgPriceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position table results: %w", err)
		}

		if p.Custody, err = ParseDecimal(custodyStr); err != nil {
			return nil, err
		}
		if p.AveragePrice, err = ParseDecimal(avgPriceStr); err != nil {
			return nil, err
		}

		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return positions, nil
}

// GetHeldTickers returns the tickers of every asset with a non-zero custody
// in any portfolio. Used by the quote-cache warmup job.
func (r *PositionRepository) GetHeldTickers() ([]string, error) {
	query := `
		SELECT DISTINCT a.ticker
		FROM position p
		JOIN asset a ON p.asset_id = a.id
		WHERE p.custody != '0'
		ORDER BY a.ticker ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	tickers := []string{}

	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("failed to scan position table results: %w", err)
		}
		tickers = append(tickers, ticker)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return tickers, nil
}
