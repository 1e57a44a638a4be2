package request

import "github.com/shopspring/decimal"

// CreateOperationRequest carries a new ledger entry. Quantity, unitPrice and
// costs accept JSON numbers or strings; they are decoded as exact decimals.
// The total and the status are always derived server-side.
type CreateOperationRequest struct {
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	AssetID     string          `json:"assetId"`
	PortfolioID string          `json:"portfolioId"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Costs       decimal.Decimal `json:"costs"`
}

// UpdateOperationRequest carries a partial edit; nil fields are unchanged.
type UpdateOperationRequest struct {
	Date        *string          `json:"date,omitempty"`
	Type        *string          `json:"type,omitempty"`
	AssetID     *string          `json:"assetId,omitempty"`
	PortfolioID *string          `json:"portfolioId,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	Costs       *decimal.Decimal `json:"costs,omitempty"`
}
