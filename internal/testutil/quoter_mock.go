package testutil

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// MockQuoter is a stub quote provider for testing. It returns predefined
// prices per ticker instead of calling the real API; unknown tickers get
// the zero sentinel, matching the real client's degraded behavior.
// Safe for concurrent use, as dashboards fetch quotes in parallel.
type MockQuoter struct {
	mu sync.Mutex
	// Prices maps ticker to the price to return.
	Prices map[string]decimal.Decimal
	// QueryCount tracks how many times CurrentPrice was called.
	QueryCount int
}

// NewMockQuoter creates a MockQuoter with the given ticker/price pairs.
// Prices are given as decimal strings.
func NewMockQuoter(prices map[string]string) *MockQuoter {
	parsed := make(map[string]decimal.Decimal, len(prices))
	for ticker, price := range prices {
		parsed[ticker] = decimal.RequireFromString(price)
	}
	return &MockQuoter{Prices: parsed}
}

// CurrentPrice returns the configured price for ticker, or zero when absent.
func (m *MockQuoter) CurrentPrice(_ context.Context, ticker string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++
	return m.Prices[ticker]
}
