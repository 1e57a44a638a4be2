package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edersonsgoncalves/acoes-backend/internal/api/request"
	"github.com/edersonsgoncalves/acoes-backend/internal/api/response"
	"github.com/edersonsgoncalves/acoes-backend/internal/apperrors"
	"github.com/edersonsgoncalves/acoes-backend/internal/service"
	"github.com/edersonsgoncalves/acoes-backend/internal/validation"
)

// OperationHandler handles HTTP requests for operation endpoints.
// Every mutation flows through the OperationService, which keeps the
// affected positions consistent with the operation history.
type OperationHandler struct {
	operationService *service.OperationService
}

// NewOperationHandler creates a new OperationHandler with the provided service dependency.
func NewOperationHandler(operationService *service.OperationService) *OperationHandler {
	return &OperationHandler{
		operationService: operationService,
	}
}

// AllOperations handles GET requests to list operations across all portfolios.
//
// Endpoint: GET /api/operation
// Response: 200 OK with array of OperationResponse
func (h *OperationHandler) AllOperations(w http.ResponseWriter, _ *http.Request) {
	operations, err := h.operationService.GetOperationsPerPortfolio("")
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOperations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, operations)
}

// OperationsPerPortfolio handles GET requests to list the operations of one portfolio.
//
// Endpoint: GET /api/operation/portfolio/{uuid}
// Response: 200 OK with array of OperationResponse
func (h *OperationHandler) OperationsPerPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	operations, err := h.operationService.GetOperationsPerPortfolio(portfolioID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOperations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, operations)
}

// GetOperation handles GET requests to retrieve a single operation by ID.
//
// Endpoint: GET /api/operation/{uuid}
// Response: 200 OK with Operation
// Error: 404 Not Found if the operation does not exist
func (h *OperationHandler) GetOperation(w http.ResponseWriter, r *http.Request) {
	operationID := chi.URLParam(r, "uuid")

	operation, err := h.operationService.GetOperation(operationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOperationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrOperationNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOperations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, operation)
}

// CreateOperation handles POST requests to record a new operation.
// The total and status are derived server-side, and the affected
// position is updated in the same transaction.
//
// Endpoint: POST /api/operation
// Request Body: CreateOperationRequest (date, type, assetId, portfolioId, quantity, unitPrice, costs)
// Response: 201 Created with Operation
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the asset or portfolio does not exist
func (h *OperationHandler) CreateOperation(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateOperationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateOperation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	operation, err := h.operationService.CreateOperation(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAssetNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), "")
		case errors.Is(err, apperrors.ErrPortfolioNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create operation", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, operation)
}

// UpdateOperation handles PUT requests to edit an existing operation.
// Every affected position is recomputed from the full history in the
// same transaction; the operation's identity never changes.
//
// Endpoint: PUT /api/operation/{uuid}
// Request Body: UpdateOperationRequest (all fields optional)
// Response: 200 OK with updated Operation
// Error: 404 Not Found if the operation, or a moved-to asset or portfolio, does not exist
func (h *OperationHandler) UpdateOperation(w http.ResponseWriter, r *http.Request) {
	operationID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateOperationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateOperation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	operation, err := h.operationService.UpdateOperation(r.Context(), operationID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrOperationNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrOperationNotFound.Error(), "")
		case errors.Is(err, apperrors.ErrAssetNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), "")
		case errors.Is(err, apperrors.ErrPortfolioNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update operation", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, operation)
}

// DeleteOperation handles DELETE requests to remove an operation.
// The affected position is recomputed from the remaining history in
// the same transaction.
//
// Endpoint: DELETE /api/operation/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the operation does not exist
func (h *OperationHandler) DeleteOperation(w http.ResponseWriter, r *http.Request) {
	operationID := chi.URLParam(r, "uuid")

	if err := h.operationService.DeleteOperation(r.Context(), operationID); err != nil {
		if errors.Is(err, apperrors.ErrOperationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrOperationNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete operation", err.Error())
		return
	}

	response.RespondNoContent(w)
}
