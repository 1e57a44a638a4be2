package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/edersonsgoncalves/acoes-backend/internal/apperrors"
	"github.com/edersonsgoncalves/acoes-backend/internal/model"
)

// OperationRepository provides data access methods for the operation table,
// the ledger of record. Reads used by the position projector are ordered by
// (date, created_at) ascending so replays are deterministic.
type OperationRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewOperationRepository creates a new OperationRepository with the provided database connection.
func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside
// the given transaction.
func (r *OperationRepository) WithTx(tx *sql.Tx) *OperationRepository {
	return &OperationRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *OperationRepository) getQuerier() interface {
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

const operationColumns = `id, date, type, asset_id, portfolio_id, quantity, unit_price, costs, total, status, created_at`

func scanOperation(scan func(dest ...any) error) (model.Operation, error) {
	var op model.Operation
	var dateStr, typeStr, quantityStr, unitPriceStr, costsStr, totalStr, statusStr, createdAtStr string

	err := scan(
		&op.ID,
		&dateStr,
		&typeStr,
		&op.AssetID,
		&op.PortfolioID,
		&quantityStr,
		&unitPriceStr,
		&costsStr,
		&totalStr,
		&statusStr,
		&createdAtStr,
	)
	if err != nil {
		return model.Operation{}, err
	}

	opType, ok := model.ParseOperationType(typeStr)
	if !ok {
		return model.Operation{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidOperationType, typeStr)
	}
	op.Type = opType
	op.Status = model.OperationStatus(statusStr)

	if op.Date, err = ParseTime(dateStr); err != nil || op.Date.IsZero() {
		return model.Operation{}, fmt.Errorf("failed to parse date: %w", err)
	}
	if op.CreatedAt, err = ParseTime(createdAtStr); err != nil || op.CreatedAt.IsZero() {
		return model.Operation{}, fmt.Errorf("failed to parse date: %w", err)
	}

	if op.Quantity, err = ParseDecimal(quantityStr); err != nil {
		return model.Operation{}, err
	}
	if op.UnitPrice, err = ParseDecimal(unitPriceStr); err != nil {
		return model.Operation{}, err
	}
	if op.Costs, err = ParseDecimal(costsStr); err != nil {
		return model.Operation{}, err
	}
	if op.Total, err = ParseDecimal(totalStr); err != nil {
		return model.Operation{}, err
	}

	return op, nil
}

// GetOperationsForPair retrieves the full operation history of one
// (portfolio, asset) pair, ordered by (date, created_at) ascending. This is
// the ordering contract the position projector depends on; same-day entries
// replay in the order they were recorded.
func (r *OperationRepository) GetOperationsForPair(portfolioID, assetID string) ([]model.Operation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operation
		WHERE portfolio_id = ? AND asset_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.getQuerier().Query(query, portfolioID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query operation table: %w", err)
	}
	defer rows.Close()

	operations := []model.Operation{}

	for rows.Next() {
		op, err := scanOperation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation table results: %w", err)
		}
		operations = append(operations, op)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operation table: %w", err)
	}

	return operations, nil
}

// GetOperation retrieves a single operation by ID.
// Returns apperrors.ErrOperationNotFound when no row matches.
func (r *OperationRepository) GetOperation(operationID string) (model.Operation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operation
		WHERE id = ?
	`

	op, err := scanOperation(r.getQuerier().QueryRow(query, operationID).Scan)
	if err == sql.ErrNoRows {
		return model.Operation{}, apperrors.ErrOperationNotFound
	}
	if err != nil {
		return model.Operation{}, fmt.Errorf("failed to scan operation table results: %w", err)
	}

	return op, nil
}

// GetOperationsPerPortfolio retrieves all operations for a portfolio, or
// every operation when portfolioID is empty. Results are enriched with the
// asset ticker and portfolio name and ordered by (date, created_at).
func (r *OperationRepository) GetOperationsPerPortfolio(portfolioID string) ([]model.OperationResponse, error) {
	query := `
		SELECT
			o.id,
			o.date,
			o.type,
			o.asset_id,
			a.ticker,
			o.portfolio_id,
			p.name,
			o.quantity,
			o.unit_price,
			o.costs,
			o.total,
			o.status,
			o.created_at
		FROM operation o
		JOIN asset a ON o.asset_id = a.id
		JOIN portfolio p ON o.portfolio_id = p.id
	`

	var args []any

	if portfolioID == "" {
		query += `
		ORDER BY o.date ASC, o.created_at ASC
		`
	} else {
		query += `
		WHERE o.portfolio_id = ?
		ORDER BY o.date ASC, o.created_at ASC
		`
		args = append(args, portfolioID)
	}

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query operation table: %w", err)
	}
	defer rows.Close()

	operations := []model.OperationResponse{}

	for rows.Next() {
		var resp model.OperationResponse
		var dateStr, typeStr, quantityStr, unitPriceStr, costsStr, totalStr, statusStr, createdAtStr string

		err := rows.Scan(
			&resp.ID,
			&dateStr,
			&typeStr,
			&resp.AssetID,
			&resp.Ticker,
			&resp.PortfolioID,
			&resp.PortfolioName,
			&quantityStr,
			&unitPriceStr,
			&costsStr,
			&totalStr,
			&statusStr,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation table results: %w", err)
		}

		opType, ok := model.ParseOperationType(typeStr)
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidOperationType, typeStr)
		}
		resp.Type = opType
		resp.Status = model.OperationStatus(statusStr)

		if resp.Date, err = ParseTime(dateStr); err != nil || resp.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		if resp.CreatedAt, err = ParseTime(createdAtStr); err != nil || resp.CreatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		if resp.Quantity, err = ParseDecimal(quantityStr); err != nil {
			return nil, err
		}
		if resp.UnitPrice, err = ParseDecimal(unitPriceStr); err != nil {
			return nil, err
		}
		if resp.Costs, err = ParseDecimal(costsStr); err != nil {
			return nil, err
		}
		if resp.Total, err = ParseDecimal(totalStr); err != nil {
			return nil, err
		}

		operations = append(operations, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operation table: %w", err)
	}

	return operations, nil
}

// GetNewestOperationDate finds the date of the latest operation of a pair,
// optionally excluding one operation ID. Returns time.Time{} (zero value)
// when the pair has no other operations. Used to decide whether an appended
// operation is the newest in replay order and may take the incremental path.
func (r *OperationRepository) GetNewestOperationDate(portfolioID, assetID, excludeID string) (time.Time, error) {
	query := `
		SELECT MAX(date)
		FROM operation
		WHERE portfolio_id = ? AND asset_id = ? AND id != ?
	`

	var newestDateStr sql.NullString
	err := r.getQuerier().QueryRow(query, portfolioID, assetID, excludeID).Scan(&newestDateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query operation table: %w", err)
	}
	if !newestDateStr.Valid {
		return time.Time{}, nil
	}

	newestDate, err := ParseTime(newestDateStr.String)
	if err != nil {
		return time.Time{}, err
	}

	return newestDate, nil
}

// InsertOperation stores a new ledger entry.
func (r *OperationRepository) InsertOperation(ctx context.Context, op *model.Operation) error {
	query := `
		INSERT INTO operation (` + operationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		op.ID,
		op.Date.UTC().Format("2006-01-02"),
		string(op.Type),
		op.AssetID,
		op.PortfolioID,
		op.Quantity.String(),
		op.UnitPrice.String(),
		op.Costs.String(),
		op.Total.String(),
		string(op.Status),
		op.CreatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into operation table: %w", err)
	}

	return nil
}

// UpdateOperation overwrites the mutable fields of a ledger entry. The
// identity (ID, CreatedAt) never changes, so the entry keeps its place in
// the replay ordering for its date.
func (r *OperationRepository) UpdateOperation(ctx context.Context, op *model.Operation) error {
	query := `
		UPDATE operation
		SET date = ?, type = ?, asset_id = ?, portfolio_id = ?,
			quantity = ?, unit_price = ?, costs = ?, total = ?, status = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		op.Date.UTC().Format("2006-01-02"),
		string(op.Type),
		op.AssetID,
		op.PortfolioID,
		op.Quantity.String(),
		op.UnitPrice.String(),
		op.Costs.String(),
		op.Total.String(),
		string(op.Status),
		op.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update operation table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrOperationNotFound
	}

	return nil
}

// DeleteOperation removes a ledger entry.
func (r *OperationRepository) DeleteOperation(ctx context.Context, operationID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM operation WHERE id = ?`, operationID)
	if err != nil {
		return fmt.Errorf("failed to delete from operation table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrOperationNotFound
	}

	return nil
}
