package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/edersonsgoncalves/acoes-backend/internal/api/request"
	"github.com/edersonsgoncalves/acoes-backend/internal/api/response"
	"github.com/edersonsgoncalves/acoes-backend/internal/apperrors"
	"github.com/edersonsgoncalves/acoes-backend/internal/service"
	"github.com/edersonsgoncalves/acoes-backend/internal/validation"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
	maxPerPage     = 100
)

// AssetHandler handles HTTP requests for asset endpoints.
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler with the provided service dependency.
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Assets handles GET requests to list assets, paginated and ordered by name.
//
// Endpoint: GET /api/asset?page=1&per_page=20
// Response: 200 OK with AssetPage
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	page := parsePositiveInt(r.URL.Query().Get("page"), defaultPage)
	perPage := parsePositiveInt(r.URL.Query().Get("per_page"), defaultPerPage)
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	assets, err := h.assetService.GetAssets(page, perPage)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetAsset handles GET requests to retrieve a single asset by ID.
//
// Endpoint: GET /api/asset/{uuid}
// Response: 200 OK with Asset
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	asset, err := h.assetService.GetAsset(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateAsset handles POST requests to register a new asset.
//
// Endpoint: POST /api/asset
// Request Body: CreateAssetRequest (ticker, name, segment, type)
// Response: 201 Created with Asset
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the ticker is already registered
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	asset, err := h.assetService.CreateAsset(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			response.RespondError(w, http.StatusConflict, "ticker already registered", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset handles PUT requests to update an existing asset.
//
// Endpoint: PUT /api/asset/{uuid}
// Request Body: UpdateAssetRequest (all fields optional)
// Response: 200 OK with updated Asset
// Error: 404 Not Found if the asset does not exist
// Error: 409 Conflict if the new ticker collides with another asset
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	asset, err := h.assetService.UpdateAsset(r.Context(), assetID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAssetNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), "")
		case errors.Is(err, apperrors.ErrDuplicateEntry):
			response.RespondError(w, http.StatusConflict, "ticker already registered", "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update asset", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// DeleteAsset handles DELETE requests to remove an asset.
//
// Endpoint: DELETE /api/asset/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the asset does not exist
// Error: 409 Conflict if operations still reference the asset
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	if err := h.assetService.DeleteAsset(r.Context(), assetID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAssetNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), "")
		case errors.Is(err, apperrors.ErrAssetInUse):
			response.RespondError(w, http.StatusConflict, apperrors.ErrAssetInUse.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to delete asset", err.Error())
		}
		return
	}

	response.RespondNoContent(w)
}

// OperationTypes handles GET requests for the catalogue of operation types.
//
// Endpoint: GET /api/operation-type
// Response: 200 OK with array of OperationTypeInfo
func (h *AssetHandler) OperationTypes(w http.ResponseWriter, _ *http.Request) {
	types, err := h.assetService.GetOperationTypes()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve operation types", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, types)
}

// LookupTicker handles GET requests to look up ticker details from the
// external search provider. Provider failures degrade to found=false.
//
// Endpoint: GET /api/asset/lookup/{ticker}
// Response: 200 OK with TickerInfo
// Error: 400 Bad Request if the ticker path segment is empty
func (h *AssetHandler) LookupTicker(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		response.RespondError(w, http.StatusBadRequest, "ticker is required", "")
		return
	}

	response.RespondJSON(w, http.StatusOK, h.assetService.LookupTicker(r.Context(), ticker))
}

// parsePositiveInt parses a query parameter as a positive integer,
// falling back to def when missing or malformed.
func parsePositiveInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// validationDetails unwraps a validation.Error into its field map so the
// client receives structured per-field messages.
func validationDetails(err error) interface{} {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return vErr.Fields
	}
	return err.Error()
}
