package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/edersonsgoncalves/acoes-backend/internal/model"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults
//	asset := testutil.NewAsset().Build(t, db)
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    WithTicker("PETR4").
//	    WithName("Petrobras PN").
//	    Build(t, db)
type AssetBuilder struct {
	ID      string
	Ticker  string
	Name    string
	Segment string
	Type    string
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:      MakeID(),
		Ticker:  MakeTicker("TST"),
		Name:    "Test Asset " + randomAlphanumeric(6),
		Segment: "Test Segment",
		Type:    "stock",
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithTicker sets a custom ticker.
func (b *AssetBuilder) WithTicker(ticker string) *AssetBuilder {
	b.Ticker = ticker
	return b
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithSegment sets a custom segment.
func (b *AssetBuilder) WithSegment(segment string) *AssetBuilder {
	b.Segment = segment
	return b
}

// WithType sets a custom asset type.
func (b *AssetBuilder) WithType(assetType string) *AssetBuilder {
	b.Type = assetType
	return b
}

// Build inserts the asset into the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	asset := model.Asset{
		ID:      b.ID,
		Ticker:  b.Ticker,
		Name:    b.Name,
		Segment: b.Segment,
		Type:    b.Type,
	}

	_, err := db.Exec(
		`INSERT INTO asset (id, ticker, name, segment, asset_type) VALUES (?, ?, ?, ?, ?)`,
		asset.ID, asset.Ticker, asset.Name, asset.Segment, asset.Type,
	)
	if err != nil {
		t.Fatalf("Failed to insert test asset: %v", err)
	}

	return asset
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
type PortfolioBuilder struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:        MakeID(),
		Name:      MakePortfolioName("Test Portfolio"),
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// Build inserts the portfolio into the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	portfolio := model.Portfolio{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
	}

	_, err := db.Exec(
		`INSERT INTO portfolio (id, name, created_at) VALUES (?, ?, ?)`,
		portfolio.ID, portfolio.Name, portfolio.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("Failed to insert test portfolio: %v", err)
	}

	return portfolio
}

// OperationBuilder provides a fluent interface for creating test operations.
//
// Example usage:
//
//	op := testutil.NewOperation(portfolio.ID, asset.ID).
//	    Buy().
//	    WithDate("2024-03-01").
//	    WithQuantity("100").
//	    WithUnitPrice("10").
//	    Build(t, db)
type OperationBuilder struct {
	ID          string
	Date        time.Time
	Type        model.OperationType
	AssetID     string
	PortfolioID string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Costs       decimal.Decimal
	CreatedAt   time.Time
}

// NewOperation creates an OperationBuilder with sensible defaults: a buy of
// 100 units at 10.00 dated yesterday.
func NewOperation(portfolioID, assetID string) *OperationBuilder {
	return &OperationBuilder{
		ID:          MakeID(),
		Date:        time.Now().UTC().AddDate(0, 0, -1),
		Type:        model.OperationBuy,
		AssetID:     assetID,
		PortfolioID: portfolioID,
		Quantity:    decimal.NewFromInt(100),
		UnitPrice:   decimal.NewFromInt(10),
		Costs:       decimal.Zero,
		CreatedAt:   time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *OperationBuilder) WithID(id string) *OperationBuilder {
	b.ID = id
	return b
}

// Buy marks the operation as a buy.
func (b *OperationBuilder) Buy() *OperationBuilder {
	b.Type = model.OperationBuy
	return b
}

// Sell marks the operation as a sell.
func (b *OperationBuilder) Sell() *OperationBuilder {
	b.Type = model.OperationSell
	return b
}

// WithType sets a custom operation type.
func (b *OperationBuilder) WithType(opType model.OperationType) *OperationBuilder {
	b.Type = opType
	return b
}

// WithDate sets the operation date from a YYYY-MM-DD string.
func (b *OperationBuilder) WithDate(date string) *OperationBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("testutil: invalid operation date " + date)
	}
	b.Date = parsed
	return b
}

// WithQuantity sets the quantity from a decimal string.
func (b *OperationBuilder) WithQuantity(quantity string) *OperationBuilder {
	b.Quantity = decimal.RequireFromString(quantity)
	return b
}

// WithUnitPrice sets the unit price from a decimal string.
func (b *OperationBuilder) WithUnitPrice(unitPrice string) *OperationBuilder {
	b.UnitPrice = decimal.RequireFromString(unitPrice)
	return b
}

// WithCosts sets the transaction costs from a decimal string.
func (b *OperationBuilder) WithCosts(costs string) *OperationBuilder {
	b.Costs = decimal.RequireFromString(costs)
	return b
}

// WithCreatedAt sets the creation timestamp, which breaks same-date ordering ties.
func (b *OperationBuilder) WithCreatedAt(createdAt time.Time) *OperationBuilder {
	b.CreatedAt = createdAt
	return b
}

// Build inserts the operation into the database and returns it.
// Total and status are derived the same way the service derives them.
func (b *OperationBuilder) Build(t *testing.T, db *sql.DB) model.Operation {
	t.Helper()

	op := model.Operation{
		ID:          b.ID,
		Date:        b.Date,
		Type:        b.Type,
		AssetID:     b.AssetID,
		PortfolioID: b.PortfolioID,
		Quantity:    b.Quantity,
		UnitPrice:   b.UnitPrice,
		Costs:       b.Costs,
		Total:       model.CalculateTotal(b.Quantity, b.UnitPrice, b.Costs),
		Status:      model.DeriveStatus(b.Date, time.Now().UTC()),
		CreatedAt:   b.CreatedAt,
	}

	_, err := db.Exec(
		`INSERT INTO operation (id, date, type, asset_id, portfolio_id, quantity, unit_price, costs, total, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		op.ID,
		op.Date.Format("2006-01-02"),
		string(op.Type),
		op.AssetID,
		op.PortfolioID,
		op.Quantity.String(),
		op.UnitPrice.String(),
		op.Costs.String(),
		op.Total.String(),
		string(op.Status),
		op.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("Failed to insert test operation: %v", err)
	}

	return op
}

// InsertPosition writes a position row directly, bypassing the projection
// logic, for tests that need a known starting state.
func InsertPosition(t *testing.T, db *sql.DB, position model.Position) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO position (portfolio_id, asset_id, custody, avg_price) VALUES (?, ?, ?, ?)
		 ON CONFLICT(portfolio_id, asset_id) DO UPDATE SET custody = excluded.custody, avg_price = excluded.avg_price`,
		position.PortfolioID, position.AssetID, position.Custody.String(), position.AveragePrice.String(),
	)
	if err != nil {
		t.Fatalf("Failed to insert test position: %v", err)
	}
}
