package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"crunchy-cruise/internal/middleware"
	"crunchy-cruise/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// maxSessionKeyLength matches the cart_sessions.session_key column.
const maxSessionKeyLength = 64

var validate = validator.New()

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	requestID := middleware.RequestIDFromContext(r.Context())
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: requestID,
	})
}

// writeServiceError maps err onto an HTTP status. Domain errors carry their
// own code and message; anything else is reported as an internal error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected service error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}
	writeError(w, r, statusFor(domainErr.Code), domainErr.Code, domainErr.Message, logger)
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON, model.ErrCodeMissingField, model.ErrCodeValidation,
		model.ErrCodeNameTooShort, model.ErrCodePhoneTooShort, model.ErrCodeInvalidEmail,
		model.ErrCodeInvalidInput, model.ErrCodeInvalidStatus:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeProductNotFound, model.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidTransition, model.ErrCodeEmptyCart,
		model.ErrCodeDeliveryNotConfirmed, model.ErrCodeProductUnavailable, model.ErrCodePaymentAlreadyUsed:
		return http.StatusConflict
	case model.ErrCodeOrderingDisabled, model.ErrCodePaymentNotVerified, model.ErrCodeGeocodingFailed:
		return http.StatusUnprocessableEntity
	case model.ErrCodeChargeComputationFailed, model.ErrCodeOrderSubmissionFailed:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a JSON body into v and runs struct validation on it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewDomainError(model.ErrCodeInvalidJSON, "request body is required")
		}
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return model.NewDomainError(model.ErrCodeValidation, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid request"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// sessionKey returns the caller's cart session key, issuing a new one when
// the request has none. The key is always echoed in the response header.
func sessionKey(w http.ResponseWriter, r *http.Request) string {
	key := strings.TrimSpace(r.Header.Get(middleware.HeaderCartSession))
	if key == "" || len(key) > maxSessionKeyLength {
		key = uuid.NewString()
	}
	w.Header().Set(middleware.HeaderCartSession, key)
	return key
}

// parseID reads a uuid path value.
func parseID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, model.NewDomainError(model.ErrCodeInvalidInput, "invalid "+name+" format")
	}
	return id, nil
}
