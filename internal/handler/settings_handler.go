package handler

import (
	"net/http"

	"crunchy-cruise/internal/model"
	"crunchy-cruise/internal/service"

	"github.com/rs/zerolog"
)

// SettingsHandler serves the ordering switch.
type SettingsHandler struct {
	service service.SettingsService
	logger  zerolog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(service service.SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  logger.With().Str("handler", "settings").Logger(),
	}
}

// GetOrdering handles GET /api/settings/ordering requests.
func (h *SettingsHandler) GetOrdering(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.service.OrderingEnabled(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read ordering status")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "Failed to fetch ordering status", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.OrderingSettings{OrderingEnabled: &enabled})
}

// SetOrdering handles POST /api/settings/ordering requests.
func (h *SettingsHandler) SetOrdering(w http.ResponseWriter, r *http.Request) {
	var req model.OrderingSettings
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if req.OrderingEnabled == nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "orderingEnabled must be a boolean", h.logger)
		return
	}

	if err := h.service.SetOrderingEnabled(r.Context(), *req.OrderingEnabled); err != nil {
		h.logger.Error().Err(err).Msg("failed to update ordering status")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "Failed to update ordering status", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
