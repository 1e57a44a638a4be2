package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edersonsgoncalves/acoes-backend/internal/model"
	"github.com/edersonsgoncalves/acoes-backend/internal/testutil"
)

func setupPortfolioHandler(t *testing.T) (*PortfolioHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db)
	return NewPortfolioHandler(svc), db
}

func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	t.Run("creates a portfolio and returns 201", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)

		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/portfolio", nil,
			map[string]any{"name": "Aposentadoria"})
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created model.Portfolio
		if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if created.Name != "Aposentadoria" {
			t.Errorf("Expected name Aposentadoria, got %q", created.Name)
		}
	})

	t.Run("returns 409 on duplicate name", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		testutil.NewPortfolio().WithName("Dividendos").Build(t, db)

		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/portfolio", nil,
			map[string]any{"name": "Dividendos"})
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 on empty name", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)

		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/portfolio", nil,
			map[string]any{"name": "  "})
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_GetPortfolio(t *testing.T) {
	t.Run("returns an existing portfolio", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+portfolio.ID,
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for an unknown portfolio", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+id,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_DeletePortfolio(t *testing.T) {
	t.Run("returns 409 while operations reference the portfolio", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		testutil.NewOperation(portfolio.ID, asset.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/portfolio/"+portfolio.ID,
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.DeletePortfolio(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 204 for an empty portfolio", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/portfolio/"+portfolio.ID,
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.DeletePortfolio(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
	})
}
