package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edersonsgoncalves/acoes-backend/internal/model"
	"github.com/edersonsgoncalves/acoes-backend/internal/testutil"
)

func setupOperationHandler(t *testing.T) (*OperationHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestOperationService(t, db)
	return NewOperationHandler(svc), db
}

func TestOperationHandler_CreateOperation(t *testing.T) {
	t.Run("creates an operation and returns 201", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)

		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/operation", nil, map[string]any{
			"date":        "2024-01-10",
			"type":        "buy",
			"assetId":     asset.ID,
			"portfolioId": portfolio.ID,
			"quantity":    "100",
			"unitPrice":   "10",
			"costs":       "5",
		})
		w := httptest.NewRecorder()

		handler.CreateOperation(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created model.Operation
		if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if created.Total.String() != "1005" {
			t.Errorf("Expected total 1005, got %s", created.Total)
		}
		if created.Status != model.StatusSettled {
			t.Errorf("Expected settled status, got %s", created.Status)
		}
	})

	t.Run("returns 400 on malformed JSON", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/operation", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.CreateOperation(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 on negative quantity", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)

		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/operation", nil, map[string]any{
			"date":        "2024-01-10",
			"type":        "buy",
			"assetId":     asset.ID,
			"portfolioId": portfolio.ID,
			"quantity":    "-5",
			"unitPrice":   "10",
			"costs":       "0",
		})
		w := httptest.NewRecorder()

		handler.CreateOperation(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)

		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/operation", nil, map[string]any{
			"date":        "2024-01-10",
			"type":        "short_sell",
			"assetId":     asset.ID,
			"portfolioId": portfolio.ID,
			"quantity":    "10",
			"unitPrice":   "10",
			"costs":       "0",
		})
		w := httptest.NewRecorder()

		handler.CreateOperation(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 when the asset does not exist", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)

		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/operation", nil, map[string]any{
			"date":        "2024-01-10",
			"type":        "buy",
			"assetId":     testutil.MakeID(),
			"portfolioId": portfolio.ID,
			"quantity":    "10",
			"unitPrice":   "10",
			"costs":       "0",
		})
		w := httptest.NewRecorder()

		handler.CreateOperation(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestOperationHandler_GetOperation(t *testing.T) {
	t.Run("returns an existing operation", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		op := testutil.NewOperation(portfolio.ID, asset.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/operation/"+op.ID,
			map[string]string{"uuid": op.ID})
		w := httptest.NewRecorder()

		handler.GetOperation(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got model.Operation
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if got.ID != op.ID {
			t.Errorf("Expected operation %s, got %s", op.ID, got.ID)
		}
	})

	t.Run("returns 404 for an unknown operation", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/operation/"+id,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetOperation(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestOperationHandler_UpdateOperation(t *testing.T) {
	t.Run("updates fields and returns the recomputed operation", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		op := testutil.NewOperation(portfolio.ID, asset.ID).
			WithDate("2024-01-10").WithQuantity("100").WithUnitPrice("10").Build(t, db)

		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPut, "/api/operation/"+op.ID,
			map[string]string{"uuid": op.ID}, map[string]any{"quantity": "50"})
		w := httptest.NewRecorder()

		handler.UpdateOperation(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var updated model.Operation
		if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if updated.Total.String() != "500" {
			t.Errorf("Expected recomputed total 500, got %s", updated.Total)
		}
	})

	t.Run("returns 404 for an unknown operation", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)
		id := testutil.MakeID()

		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPut, "/api/operation/"+id,
			map[string]string{"uuid": id}, map[string]any{"quantity": "50"})
		w := httptest.NewRecorder()

		handler.UpdateOperation(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestOperationHandler_DeleteOperation(t *testing.T) {
	t.Run("deletes an operation and returns 204", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		op := testutil.NewOperation(portfolio.ID, asset.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/operation/"+op.ID,
			map[string]string{"uuid": op.ID})
		w := httptest.NewRecorder()

		handler.DeleteOperation(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for an unknown operation", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/operation/"+id,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.DeleteOperation(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
