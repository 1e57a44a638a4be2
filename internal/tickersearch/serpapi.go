// Package tickersearch resolves ticker symbols to display names using the
// SerpAPI google_finance engine. Tickers are normalized to the B3 exchange
// (":BVMF" suffix) before lookup.
package tickersearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edersonsgoncalves/acoes-backend/internal/model"
)

// Searcher looks up catalog data for a ticker.
type Searcher interface {
	Lookup(ctx context.Context, ticker string) (model.TickerInfo, error)
}

// Client is the SerpAPI implementation of Searcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a SerpAPI client with default HTTP settings.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://serpapi.com/search.json",
		apiKey:     apiKey,
	}
}

type searchResponse struct {
	Summary struct {
		Title    string `json:"title"`
		Exchange string `json:"exchange"`
	} `json:"summary"`
}

// NormalizeTicker strips any exchange suffix and upper-cases the ticker.
func NormalizeTicker(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	for _, suffix := range []string{".SAO", ".SA", ".BVMF"} {
		t = strings.TrimSuffix(t, suffix)
	}
	return t
}

// Lookup queries the google_finance engine for a B3 ticker. A response
// without a summary block reads as not found, not as an error; errors are
// reserved for transport and decoding failures.
func (c *Client) Lookup(ctx context.Context, ticker string) (model.TickerInfo, error) {
	normalized := NormalizeTicker(ticker)

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("engine", "google_finance")
	params.Set("q", normalized+":BVMF")
	params.Set("hl", "pt-br")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return model.TickerInfo{}, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.TickerInfo{}, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.TickerInfo{}, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.TickerInfo{}, fmt.Errorf("failed to decode search response: %w", err)
	}

	if parsed.Summary.Title == "" {
		return model.TickerInfo{Ticker: normalized, Found: false}, nil
	}

	return model.TickerInfo{
		Ticker:  normalized,
		Name:    parsed.Summary.Title,
		Segment: parsed.Summary.Exchange,
		Found:   true,
	}, nil
}
