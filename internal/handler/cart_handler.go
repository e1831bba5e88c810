package handler

import (
	"net/http"

	"crunchy-cruise/internal/model"
	"crunchy-cruise/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart and delivery selection requests. The cart is
// identified by the X-Cart-Session header.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), sessionKey(w, r))
	h.respond(w, r, view, err)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	key := sessionKey(w, r)
	var req model.AddItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	view, err := h.service.AddItem(r.Context(), key, &req)
	h.respond(w, r, view, err)
}

// SetQuantity handles PUT /api/cart/items/{name} requests.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	key := sessionKey(w, r)
	var req model.SetQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	view, err := h.service.SetQuantity(r.Context(), key, r.PathValue("name"), req.Quantity)
	h.respond(w, r, view, err)
}

// RemoveItem handles DELETE /api/cart/items/{name} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveItem(r.Context(), sessionKey(w, r), r.PathValue("name"))
	h.respond(w, r, view, err)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Clear(r.Context(), sessionKey(w, r))
	h.respond(w, r, view, err)
}

// Pickup handles POST /api/cart/delivery/pickup requests.
func (h *CartHandler) Pickup(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.TogglePickup(r.Context(), sessionKey(w, r))
	h.respond(w, r, view, err)
}

// Delivery handles POST /api/cart/delivery requests.
func (h *CartHandler) Delivery(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ToggleDelivery(r.Context(), sessionKey(w, r))
	h.respond(w, r, view, err)
}

// ResolveAddress handles POST /api/cart/delivery/address requests.
func (h *CartHandler) ResolveAddress(w http.ResponseWriter, r *http.Request) {
	key := sessionKey(w, r)
	var req model.AddressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	view, err := h.service.ResolveAddress(r.Context(), key, req.Address)
	h.respond(w, r, view, err)
}

// EditAddress handles PUT /api/cart/delivery/address requests.
func (h *CartHandler) EditAddress(w http.ResponseWriter, r *http.Request) {
	key := sessionKey(w, r)
	var req model.AddressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	view, err := h.service.EditAddress(r.Context(), key, req.Address)
	h.respond(w, r, view, err)
}

// Locate handles POST /api/cart/delivery/locate requests. A body without
// both coordinates means the device could not provide a location.
func (h *CartHandler) Locate(w http.ResponseWriter, r *http.Request) {
	key := sessionKey(w, r)
	var req model.LocateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	var at *model.Coordinates
	if req.Lat != nil && req.Lng != nil {
		at = &model.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
	}
	view, err := h.service.ResolveDeviceLocation(r.Context(), key, at)
	h.respond(w, r, view, err)
}

// Confirm handles POST /api/cart/delivery/confirm requests.
func (h *CartHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ConfirmLocation(r.Context(), sessionKey(w, r))
	h.respond(w, r, view, err)
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, view model.CartView, err error) {
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if view.Items == nil {
		view.Items = []model.LineItem{}
	}
	writeJSON(w, http.StatusOK, view)
}
