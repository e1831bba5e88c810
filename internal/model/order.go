package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment stage of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusFulfilled      OrderStatus = "fulfilled"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

// Label returns the status in words, e.g. "out for delivery".
func (s OrderStatus) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// StoreLocation is the location recorded on kitchen-side tracking updates.
const StoreLocation = "Crunchy Cruise Kitchen"

// Customer holds checkout contact fields.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Order is the immutable snapshot submitted at checkout.
type Order struct {
	ID               uuid.UUID    `json:"id" db:"id"`
	CustomerName     string       `json:"customer" db:"customer_name"`
	Phone            string       `json:"phone" db:"customer_phone"`
	Email            *string      `json:"email,omitempty" db:"customer_email"`
	Items            []LineItem   `json:"items" db:"items"`
	Subtotal         int64        `json:"subtotal" db:"subtotal"`
	DeliveryCharge   int64        `json:"deliveryCharge" db:"delivery_charge"`
	Total            int64        `json:"total" db:"total_amount"`
	Delivery         DeliveryInfo `json:"delivery" db:"delivery_info"`
	Status           OrderStatus  `json:"status" db:"status"`
	PaymentReference *string      `json:"paymentReference,omitempty" db:"payment_reference"`
	CreatedAt        time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time    `json:"updatedAt" db:"updated_at"`
}

// TrackingUpdate is one entry in an order's status history.
type TrackingUpdate struct {
	ID        uuid.UUID   `json:"-" db:"id"`
	OrderID   uuid.UUID   `json:"-" db:"order_id"`
	Status    OrderStatus `json:"status" db:"status"`
	Message   string      `json:"message" db:"message"`
	Location  string      `json:"location" db:"location"`
	Timestamp time.Time   `json:"timestamp" db:"created_at"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order
	TrackingUpdates []TrackingUpdate `json:"trackingUpdates"`
}

// StatusUpdateRequest is the admin payload for moving an order forward.
type StatusUpdateRequest struct {
	Status   OrderStatus `json:"status"`
	Message  string      `json:"message"`
	Location string      `json:"location"`
}

// CheckoutRequest is the customer payload for submitting the cart.
type CheckoutRequest struct {
	Customer
	Reference string `json:"reference,omitempty"`
}

// CheckoutOutcome distinguishes a placed order from the ordering gate.
type CheckoutOutcome string

const (
	OutcomeOrderPlaced      CheckoutOutcome = "order_placed"
	OutcomeOrderingDisabled CheckoutOutcome = "ordering_disabled"
)

// CheckoutResponse is returned by the checkout endpoints.
type CheckoutResponse struct {
	Outcome  CheckoutOutcome `json:"outcome"`
	Order    *Order          `json:"order,omitempty"`
	Customer Customer        `json:"customer"`
	Cart     CartView        `json:"cart"`
}

// PaymentVerification is the result of checking a provider transaction reference.
type PaymentVerification struct {
	Reference   string `json:"reference"`
	Verified    bool   `json:"verified"`
	Status      string `json:"status"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency,omitempty"`
	Message     string `json:"message,omitempty"`
}

// OrderingSettings is the storefront ordering switch.
type OrderingSettings struct {
	OrderingEnabled *bool `json:"orderingEnabled"`
}
