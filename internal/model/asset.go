package model

// Asset represents a tradeable asset from the catalog (stock, FII, ETF, BDR).
// The ticker is unique across the catalog and is the key used against the
// quote provider.
type Asset struct {
	ID      string `json:"id"`
	Ticker  string `json:"ticker"`
	Name    string `json:"name"`
	Segment string `json:"segment"`
	Type    string `json:"type"`
}

// AssetPage is a single page of assets plus pagination metadata.
type AssetPage struct {
	Items      []Asset `json:"items"`
	Page       int     `json:"page"`
	PerPage    int     `json:"perPage"`
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
}

// TickerInfo is the result of a ticker lookup against the search provider.
// Found is false when the provider had no data for the ticker.
type TickerInfo struct {
	Ticker  string `json:"ticker"`
	Name    string `json:"name"`
	Segment string `json:"segment"`
	Found   bool   `json:"found"`
}
