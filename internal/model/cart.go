package model

import "crunchy-cruise/internal/money"

// LineItem is one product entry in a cart.
type LineItem struct {
	ProductName    string `json:"name"`
	UnitPriceMinor int64  `json:"unitPrice"`
	PriceDisplay   string `json:"price,omitempty"`
	Quantity       int    `json:"quantity"`
	Image          string `json:"image,omitempty"`
}

// LineTotal returns unit price times quantity, saturating at the int64 bounds.
func (li LineItem) LineTotal() int64 {
	return money.SaturatingMul(li.UnitPriceMinor, int64(li.Quantity))
}

// CartView is the cart as returned to API clients.
type CartView struct {
	SessionKey string       `json:"sessionKey"`
	Items      []LineItem   `json:"items"`
	ItemCount  int          `json:"itemCount"`
	Subtotal   int64        `json:"subtotal"`
	Delivery   DeliveryInfo `json:"delivery"`
	Total      int64        `json:"total"`
}

// AddItemRequest adds a catalogue product to the cart.
type AddItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"max=10000"`
}

// SetQuantityRequest sets the absolute quantity of a cart line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"max=10000"`
}

// AddressRequest carries typed address text.
type AddressRequest struct {
	Address string `json:"address"`
}

// LocateRequest carries a device geolocation reading.
type LocateRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}
