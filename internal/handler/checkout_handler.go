package handler

import (
	"errors"
	"net/http"

	"crunchy-cruise/internal/checkout"
	"crunchy-cruise/internal/delivery"
	"crunchy-cruise/internal/model"
	"crunchy-cruise/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles order submission and the pricing endpoints.
type CheckoutHandler struct {
	cart       service.CartService
	payments   checkout.PaymentVerifier
	calculator delivery.Calculator
	origin     model.Coordinates
	logger     zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler. payments may be nil when
// payment verification is not configured.
func NewCheckoutHandler(
	cart service.CartService,
	payments checkout.PaymentVerifier,
	calculator delivery.Calculator,
	origin model.Coordinates,
	logger zerolog.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		cart:       cart,
		payments:   payments,
		calculator: calculator,
		origin:     origin,
		logger:     logger.With().Str("handler", "checkout").Logger(),
	}
}

// Checkout handles POST /api/checkout requests.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	key := sessionKey(w, r)
	var req model.CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	resp, err := h.cart.Checkout(r.Context(), key, req.Customer)
	h.respond(w, r, resp, err)
}

// CheckoutPaid handles POST /api/checkout/paid requests.
func (h *CheckoutHandler) CheckoutPaid(w http.ResponseWriter, r *http.Request) {
	key := sessionKey(w, r)
	var req model.CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	resp, err := h.cart.CheckoutPaid(r.Context(), key, &req)
	h.respond(w, r, resp, err)
}

func (h *CheckoutHandler) respond(w http.ResponseWriter, r *http.Request, resp *model.CheckoutResponse, err error) {
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if resp.Outcome == model.OutcomeOrderingDisabled {
		writeServiceError(w, r, model.ErrOrderingDisabled, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

type verifyPaymentRequest struct {
	Reference string `json:"reference" validate:"required"`
}

// VerifyPayment handles POST /api/verify-payment requests.
func (h *CheckoutHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, model.ErrMissingReference, h.logger)
		return
	}
	if h.payments == nil {
		writeError(w, r, http.StatusServiceUnavailable, model.ErrCodeInternalError, "payment verification is not configured", h.logger)
		return
	}

	result, err := h.payments.Verify(r.Context(), req.Reference)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, model.ErrMissingReference) {
			status = http.StatusBadRequest
		}
		h.logger.Error().Err(err).Str("reference", req.Reference).Msg("payment verification failed")
		writeError(w, r, status, model.ErrCodePaymentNotVerified, "Payment verification failed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type distanceRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type distanceResponse struct {
	Distance       float64           `json:"distance"`
	DeliveryCharge int64             `json:"deliveryCharge"`
	StoreLocation  model.Coordinates `json:"storeLocation"`
}

// CalculateDistance handles POST /api/calculate-distance requests.
func (h *CheckoutHandler) CalculateDistance(w http.ResponseWriter, r *http.Request) {
	var req distanceRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Lat == nil || req.Lng == nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "Latitude and longitude are required", h.logger)
		return
	}

	quote, err := h.calculator.Quote(r.Context(), &model.Coordinates{Lat: *req.Lat, Lng: *req.Lng})
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			writeServiceError(w, r, err, h.logger)
			return
		}
		h.logger.Error().Err(err).Msg("failed to calculate distance")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeChargeComputationFailed, "Failed to calculate distance", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, distanceResponse{
		Distance:       delivery.RoundDistance(quote.DistanceKm),
		DeliveryCharge: quote.DeliveryChargeMinor,
		StoreLocation:  h.origin,
	})
}
