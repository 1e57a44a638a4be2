package brapi

import "encoding/json"

// Response is the raw payload of the brapi.dev quote endpoint.
// RegularMarketPrice is kept as a json.Number so it can be converted to an
// exact decimal without a float64 round trip.
type Response struct {
	Results []Result `json:"results"`
	Message string   `json:"message,omitempty"`
}

// Result is one quoted ticker within a brapi response.
type Result struct {
	Symbol             string      `json:"symbol"`
	ShortName          string      `json:"shortName"`
	LongName           string      `json:"longName"`
	Currency           string      `json:"currency"`
	RegularMarketPrice json.Number `json:"regularMarketPrice"`
	RegularMarketTime  string      `json:"regularMarketTime"`
}
