package handler

import (
	"net/http"
	"time"

	"crunchy-cruise/internal/media"
	"crunchy-cruise/internal/model"

	"github.com/rs/zerolog"
)

// maxUploadBytes caps product image uploads.
const maxUploadBytes = 10 << 20

// UploadHandler stores product images.
type UploadHandler struct {
	store  media.Store
	now    func() time.Time
	logger zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(store media.Store, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		store:  store,
		now:    time.Now,
		logger: logger.With().Str("handler", "upload").Logger(),
	}
}

type uploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// Upload handles POST /api/upload requests with a multipart "file" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "invalid multipart form", h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "No file uploaded", h.logger)
		return
	}
	defer file.Close()

	name := media.UploadName(h.now(), header.Filename)
	path, err := h.store.Save(r.Context(), name, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", name).Msg("failed to store upload")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "Failed to store file", h.logger)
		return
	}

	h.logger.Info().Str("filename", path).Int64("size", header.Size).Msg("file uploaded")
	writeJSON(w, http.StatusOK, uploadResponse{Message: "File uploaded successfully", Filename: path})
}
