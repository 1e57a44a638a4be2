package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edersonsgoncalves/acoes-backend/internal/api/response"
	"github.com/edersonsgoncalves/acoes-backend/internal/apperrors"
	"github.com/edersonsgoncalves/acoes-backend/internal/service"
)

// PositionHandler handles HTTP requests for position endpoints.
// Positions are a projection of the operation history; this handler
// only reads them, mutations happen through the operation endpoints.
type PositionHandler struct {
	positionService  *service.PositionService
	dashboardService *service.DashboardService
}

// NewPositionHandler creates a new PositionHandler with the provided service dependencies.
func NewPositionHandler(positionService *service.PositionService, dashboardService *service.DashboardService) *PositionHandler {
	return &PositionHandler{
		positionService:  positionService,
		dashboardService: dashboardService,
	}
}

// PositionsPerPortfolio handles GET requests to list the positions of a portfolio.
// Pairs whose custody dropped to zero are listed with zeroed values.
//
// Endpoint: GET /api/position/{uuid}
// Response: 200 OK with array of PositionResponse
func (h *PositionHandler) PositionsPerPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	positions, err := h.positionService.GetPositionsPerPortfolio(portfolioID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Dashboard handles GET requests for the consolidated view of a portfolio:
// each held asset with its custody, average price, invested amount, current
// quote, market value and gain/loss. Assets without an available quote are
// flagged and excluded from the totals.
//
// Endpoint: GET /api/dashboard/{uuid}
// Response: 200 OK with Dashboard
// Error: 404 Not Found if the portfolio does not exist
func (h *PositionHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildDashboard.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}
