// Package brapi implements the quote gateway against the brapi.dev API.
//
// The gateway never propagates provider failures: any network, HTTP, parse
// or not-found condition degrades to the zero sentinel, logged for
// diagnostics. Callers must treat a zero quote as "unknown", never as a
// real price of zero.
package brapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Quoter maps a ticker to its current market price, degrading to zero on
// any failure.
type Quoter interface {
	CurrentPrice(ctx context.Context, ticker string) decimal.Decimal
}

type cachedQuote struct {
	price   decimal.Decimal
	fetched time.Time
}

// Client is the brapi.dev implementation of Quoter, with a short-lived
// in-memory cache so dashboard rendering does not hammer the provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	ttl        time.Duration

	mu    sync.RWMutex
	cache map[string]cachedQuote
}

// NewClient creates a brapi client. baseURL is the quote endpoint root
// (without trailing slash); token may be empty for the provider's free tier.
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		ttl:        60 * time.Second,
		cache:      make(map[string]cachedQuote),
	}
}

// CurrentPrice returns the current market price for a ticker, or zero when
// the provider cannot supply one. The zero sentinel is also cached, so a
// failing ticker does not retry on every dashboard row within the TTL.
func (c *Client) CurrentPrice(ctx context.Context, ticker string) decimal.Decimal {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return decimal.Zero
	}

	c.mu.RLock()
	if cached, ok := c.cache[ticker]; ok && time.Since(cached.fetched) < c.ttl {
		c.mu.RUnlock()
		return cached.price
	}
	c.mu.RUnlock()

	price, err := c.fetchPrice(ctx, ticker)
	if err != nil {
		log.Printf("quote lookup failed for %s: %v", ticker, err)
		price = decimal.Zero
	}

	c.mu.Lock()
	c.cache[ticker] = cachedQuote{price: price, fetched: time.Now()}
	c.mu.Unlock()

	return price
}

func (c *Client) fetchPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build quote request: %w", err)
	}

	if c.token != "" {
		q := req.URL.Query()
		q.Set("token", c.token)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("quote provider returned status %d", resp.StatusCode)
	}

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode quote response: %w", err)
	}

	if len(parsed.Results) == 0 {
		return decimal.Zero, fmt.Errorf("no quote results for %s", ticker)
	}

	raw := parsed.Results[0].RegularMarketPrice
	if raw == "" {
		return decimal.Zero, fmt.Errorf("quote result for %s has no price", ticker)
	}

	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse quote price: %w", err)
	}

	return price, nil
}
