package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType is the closed set of ledger entry kinds. Only Buy and Sell
// affect custody and average price; the remaining kinds are recorded but do
// not change the projected position.
type OperationType string

const (
	OperationBuy               OperationType = "buy"
	OperationSell              OperationType = "sell"
	OperationDividend          OperationType = "dividend"
	OperationInterestOnCapital OperationType = "interest_on_capital"
	OperationBonus             OperationType = "bonus"
	OperationSplit             OperationType = "split"
	OperationGrouping          OperationType = "grouping"
)

// OperationTypes lists every valid operation type in catalog order.
var OperationTypes = []OperationType{
	OperationBuy,
	OperationSell,
	OperationDividend,
	OperationInterestOnCapital,
	OperationBonus,
	OperationSplit,
	OperationGrouping,
}

// ParseOperationType resolves a stored or user-supplied type name.
// The second return value is false for unknown names.
func ParseOperationType(s string) (OperationType, bool) {
	for _, t := range OperationTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// OperationTypeInfo describes one entry of the operation-type catalog.
type OperationTypeInfo struct {
	Name        OperationType `json:"name"`
	Description string        `json:"description"`
}

// OperationStatus reflects whether an operation has already taken effect.
// It is derived from the operation date, never entered by the user.
type OperationStatus string

const (
	StatusSettled   OperationStatus = "settled"
	StatusScheduled OperationStatus = "scheduled"
)

// DeriveStatus returns Settled when the operation date falls on or before
// today, Scheduled otherwise. Comparison is at day granularity in UTC.
func DeriveStatus(date, today time.Time) OperationStatus {
	d := date.UTC().Truncate(24 * time.Hour)
	t := today.UTC().Truncate(24 * time.Hour)
	if d.After(t) {
		return StatusScheduled
	}
	return StatusSettled
}

// CalculateTotal returns quantity*unitPrice + costs using exact decimal
// arithmetic. This is the only way an operation total may be produced;
// totals are never accepted as independently-entered data.
func CalculateTotal(quantity, unitPrice, costs decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Add(costs)
}

// Operation is one ledger entry against an asset within a portfolio.
// Total is always CalculateTotal(Quantity, UnitPrice, Costs); it is
// recomputed whenever quantity, price or costs change. CreatedAt breaks
// same-day ordering ties when replaying history.
type Operation struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        OperationType   `json:"type"`
	AssetID     string          `json:"assetId"`
	PortfolioID string          `json:"portfolioId"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Costs       decimal.Decimal `json:"costs"`
	Total       decimal.Decimal `json:"total"`
	Status      OperationStatus `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// OperationResponse is an operation enriched with asset and portfolio names
// for API responses.
type OperationResponse struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Type          OperationType   `json:"type"`
	AssetID       string          `json:"assetId"`
	Ticker        string          `json:"ticker"`
	PortfolioID   string          `json:"portfolioId"`
	PortfolioName string          `json:"portfolioName"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Costs         decimal.Decimal `json:"costs"`
	Total         decimal.Decimal `json:"total"`
	Status        OperationStatus `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}
