package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edersonsgoncalves/acoes-backend/internal/api/request"
	"github.com/edersonsgoncalves/acoes-backend/internal/api/response"
	"github.com/edersonsgoncalves/acoes-backend/internal/apperrors"
	"github.com/edersonsgoncalves/acoes-backend/internal/service"
)

// SettingHandler handles HTTP requests for application settings, such as
// external provider tokens. Encrypted values are redacted on read.
type SettingHandler struct {
	settingService *service.SettingService
}

// NewSettingHandler creates a new SettingHandler with the provided service dependency.
func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
	}
}

// GetSetting handles GET requests to read a setting by key.
// Values stored encrypted come back redacted.
//
// Endpoint: GET /api/setting/{key}
// Response: 200 OK with SettingValue
// Error: 404 Not Found if the key does not exist
func (h *SettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	setting, err := h.settingService.GetSetting(key)
	if err != nil {
		if errors.Is(err, apperrors.ErrSettingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSettingNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve setting", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, setting)
}

// PutSetting handles PUT requests to create or replace a setting.
//
// Endpoint: PUT /api/setting/{key}
// Request Body: PutSettingRequest (value, encrypt)
// Response: 204 No Content
// Error: 400 Bad Request if the key or value is empty, or encryption is
// requested without an encryption key configured
func (h *SettingHandler) PutSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if strings.TrimSpace(key) == "" {
		response.RespondError(w, http.StatusBadRequest, "setting key is required", "")
		return
	}

	req, err := parseJSON[request.PutSettingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Value) == "" {
		response.RespondError(w, http.StatusBadRequest, "setting value is required", "")
		return
	}

	if err := h.settingService.PutSetting(r.Context(), key, req.Value, req.Encrypt); err != nil {
		if errors.Is(err, service.ErrEncryptionUnavailable) {
			response.RespondError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to store setting", err.Error())
		return
	}

	response.RespondNoContent(w)
}
