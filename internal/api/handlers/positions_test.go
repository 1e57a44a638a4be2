package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/edersonsgoncalves/acoes-backend/internal/model"
	"github.com/edersonsgoncalves/acoes-backend/internal/testutil"
)

func setupPositionHandler(t *testing.T, prices map[string]string) (*PositionHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	positionSvc := testutil.NewTestPositionService(t, db)
	dashboardSvc := testutil.NewTestDashboardService(t, db, testutil.NewMockQuoter(prices))
	return NewPositionHandler(positionSvc, dashboardSvc), db
}

func TestPositionHandler_PositionsPerPortfolio(t *testing.T) {
	t.Run("lists stored positions with asset details", func(t *testing.T) {
		handler, db := setupPositionHandler(t, nil)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().WithTicker("PETR4").Build(t, db)
		testutil.InsertPosition(t, db, model.Position{
			PortfolioID:  portfolio.ID,
			AssetID:      asset.ID,
			Custody:      decimal.NewFromInt(100),
			AveragePrice: decimal.NewFromInt(10),
		})

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/position/"+portfolio.ID,
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.PositionsPerPortfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var positions []model.PositionResponse
		if err := json.NewDecoder(w.Body).Decode(&positions); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(positions))
		}
		if positions[0].Ticker != "PETR4" {
			t.Errorf("Expected ticker PETR4, got %q", positions[0].Ticker)
		}
	})

	t.Run("empty portfolio lists no positions", func(t *testing.T) {
		handler, db := setupPositionHandler(t, nil)
		portfolio := testutil.NewPortfolio().Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/position/"+portfolio.ID,
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.PositionsPerPortfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var positions []model.PositionResponse
		if err := json.NewDecoder(w.Body).Decode(&positions); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(positions) != 0 {
			t.Errorf("Expected no positions, got %d", len(positions))
		}
	})
}

func TestPositionHandler_Dashboard(t *testing.T) {
	t.Run("returns the valued dashboard", func(t *testing.T) {
		handler, db := setupPositionHandler(t, map[string]string{"PETR4": "12.50"})
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().WithTicker("PETR4").Build(t, db)
		testutil.InsertPosition(t, db, model.Position{
			PortfolioID:  portfolio.ID,
			AssetID:      asset.ID,
			Custody:      decimal.NewFromInt(100),
			AveragePrice: decimal.NewFromInt(10),
		})

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/dashboard/"+portfolio.ID,
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.Dashboard(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var dashboard model.Dashboard
		if err := json.NewDecoder(w.Body).Decode(&dashboard); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if dashboard.PortfolioID != portfolio.ID {
			t.Errorf("Expected portfolio %s, got %s", portfolio.ID, dashboard.PortfolioID)
		}
		if !dashboard.TotalMarketValue.Equal(decimal.RequireFromString("1250")) {
			t.Errorf("Expected total market value 1250, got %s", dashboard.TotalMarketValue)
		}
	})

	t.Run("returns 404 for an unknown portfolio", func(t *testing.T) {
		handler, _ := setupPositionHandler(t, nil)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/dashboard/"+id,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.Dashboard(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
