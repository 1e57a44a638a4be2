package brapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/edersonsgoncalves/acoes-backend/internal/brapi"
)

// TestClient_CurrentPrice tests the quote gateway against a stub provider.
//
// WHY: The gateway sits on every dashboard row; it must return exact
// decimal prices on success and degrade to the zero sentinel, never an
// error, on any provider failure.
func TestClient_CurrentPrice(t *testing.T) {
	t.Run("parses a price without a float round trip", func(t *testing.T) {
		// Setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"results":[{"symbol":"PETR4","regularMarketPrice":37.82}]}`)) //nolint:errcheck
		}))
		defer server.Close()
		client := brapi.NewClient(server.URL, "")

		// Execute
		price := client.CurrentPrice(context.Background(), "PETR4")

		// Assert
		if !price.Equal(decimal.RequireFromString("37.82")) {
			t.Errorf("Expected price 37.82, got %s", price)
		}
	})

	t.Run("sends the token as a query parameter", func(t *testing.T) {
		var gotToken string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.URL.Query().Get("token")
			w.Write([]byte(`{"results":[{"symbol":"PETR4","regularMarketPrice":10}]}`)) //nolint:errcheck
		}))
		defer server.Close()
		client := brapi.NewClient(server.URL, "secret-token")

		client.CurrentPrice(context.Background(), "PETR4")

		if gotToken != "secret-token" {
			t.Errorf("Expected token query parameter, got %q", gotToken)
		}
	})

	t.Run("HTTP error degrades to zero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer server.Close()
		client := brapi.NewClient(server.URL, "")

		price := client.CurrentPrice(context.Background(), "PETR4")

		if !price.IsZero() {
			t.Errorf("Expected zero sentinel, got %s", price)
		}
	})

	t.Run("malformed body degrades to zero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[`)) //nolint:errcheck
		}))
		defer server.Close()
		client := brapi.NewClient(server.URL, "")

		price := client.CurrentPrice(context.Background(), "PETR4")

		if !price.IsZero() {
			t.Errorf("Expected zero sentinel, got %s", price)
		}
	})

	t.Run("empty results degrade to zero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[],"message":"not found"}`)) //nolint:errcheck
		}))
		defer server.Close()
		client := brapi.NewClient(server.URL, "")

		price := client.CurrentPrice(context.Background(), "GHOST3")

		if !price.IsZero() {
			t.Errorf("Expected zero sentinel, got %s", price)
		}
	})

	t.Run("unreachable provider degrades to zero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused from here on
		client := brapi.NewClient(server.URL, "")

		price := client.CurrentPrice(context.Background(), "PETR4")

		if !price.IsZero() {
			t.Errorf("Expected zero sentinel, got %s", price)
		}
	})

	t.Run("empty ticker short-circuits to zero", func(t *testing.T) {
		client := brapi.NewClient("http://127.0.0.1:0", "")

		price := client.CurrentPrice(context.Background(), "  ")

		if !price.IsZero() {
			t.Errorf("Expected zero sentinel, got %s", price)
		}
	})
}

// TestClient_Cache tests the short-lived quote cache.
//
// WHY: A dashboard render fires one lookup per held asset; repeated renders
// within the TTL must reuse the cached price, and failures must be cached
// too so a dead ticker is not retried for every row.
func TestClient_Cache(t *testing.T) {
	t.Run("second read within TTL does not hit the provider", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(`{"results":[{"symbol":"PETR4","regularMarketPrice":37.82}]}`)) //nolint:errcheck
		}))
		defer server.Close()
		client := brapi.NewClient(server.URL, "")

		first := client.CurrentPrice(context.Background(), "PETR4")
		second := client.CurrentPrice(context.Background(), "petr4 ") // normalized to the same key

		if calls.Load() != 1 {
			t.Errorf("Expected 1 provider call, got %d", calls.Load())
		}
		if !first.Equal(second) {
			t.Errorf("Cached price differs: %s vs %s", first, second)
		}
	})

	t.Run("failure sentinel is cached", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()
		client := brapi.NewClient(server.URL, "")

		client.CurrentPrice(context.Background(), "PETR4")
		client.CurrentPrice(context.Background(), "PETR4")

		if calls.Load() != 1 {
			t.Errorf("Expected 1 provider call, got %d", calls.Load())
		}
	})
}
