package model

import "github.com/shopspring/decimal"

// Position is the derived custody snapshot for one asset within one
// portfolio. It is a cache over the operation history: rebuildable at any
// time by replaying the ordered operations for the pair.
//
// Custody and AveragePrice are never negative. When custody reaches zero the
// average price is reset to zero as well; closing a position discards its
// cost basis.
type Position struct {
	PortfolioID  string          `json:"portfolioId"`
	AssetID      string          `json:"assetId"`
	Custody      decimal.Decimal `json:"custody"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
}

// ZeroPosition returns the empty position for a pair. Absent pairs read as
// zero positions, not as errors.
func ZeroPosition(portfolioID, assetID string) Position {
	return Position{
		PortfolioID:  portfolioID,
		AssetID:      assetID,
		Custody:      decimal.Zero,
		AveragePrice: decimal.Zero,
	}
}

// PositionResponse is a position enriched with asset data for API responses.
type PositionResponse struct {
	PortfolioID  string          `json:"portfolioId"`
	AssetID      string          `json:"assetId"`
	Ticker       string          `json:"ticker"`
	AssetName    string          `json:"assetName"`
	Custody      decimal.Decimal `json:"custody"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
}

// DashboardEntry is one asset row of the portfolio dashboard: the stored
// position valued against the current market quote.
//
// QuoteAvailable is false when the quote provider returned its zero
// sentinel; the market-value fields are then zero and must be treated as
// unknown, not as a real price of zero.
type DashboardEntry struct {
	AssetID        string          `json:"assetId"`
	Ticker         string          `json:"ticker"`
	AssetName      string          `json:"assetName"`
	Custody        decimal.Decimal `json:"custody"`
	AveragePrice   decimal.Decimal `json:"averagePrice"`
	InvestedCost   decimal.Decimal `json:"investedCost"`
	CurrentPrice   decimal.Decimal `json:"currentPrice"`
	MarketValue    decimal.Decimal `json:"marketValue"`
	GainLoss       decimal.Decimal `json:"gainLoss"`
	GainLossPct    decimal.Decimal `json:"gainLossPct"`
	QuoteAvailable bool            `json:"quoteAvailable"`
}

// Dashboard aggregates the dashboard entries of one portfolio. Totals only
// include assets whose quote was available.
type Dashboard struct {
	PortfolioID       string           `json:"portfolioId"`
	PortfolioName     string           `json:"portfolioName"`
	Entries           []DashboardEntry `json:"entries"`
	TotalInvested     decimal.Decimal  `json:"totalInvested"`
	TotalMarketValue  decimal.Decimal  `json:"totalMarketValue"`
	TotalGainLoss     decimal.Decimal  `json:"totalGainLoss"`
	QuotedInvested    decimal.Decimal  `json:"quotedInvested"`
	MissingQuoteCount int              `json:"missingQuoteCount"`
}
