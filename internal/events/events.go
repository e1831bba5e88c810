// Package events publishes order lifecycle events to downstream consumers
// such as the kitchen display and notification workers.
package events

import (
	"context"
	"time"

	"crunchy-cruise/internal/model"

	"github.com/google/uuid"
)

// Event types.
const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

// Event is the message body published for an order change.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Type       string            `json:"type"`
	OrderID    uuid.UUID         `json:"orderId"`
	Status     model.OrderStatus `json:"status"`
	Message    string            `json:"message,omitempty"`
	Total      int64             `json:"total"`
	IsDelivery bool              `json:"isDelivery"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Publisher delivers events. Publishing is best-effort from the caller's
// point of view; a failure never undoes the order change.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// OrderPlaced builds the event for a newly created order.
func OrderPlaced(o *model.Order) Event {
	return Event{
		ID:         uuid.New(),
		Type:       TypeOrderPlaced,
		OrderID:    o.ID,
		Status:     o.Status,
		Total:      o.Total,
		IsDelivery: o.Delivery.IsDelivery,
		OccurredAt: time.Now().UTC(),
	}
}

// StatusChanged builds the event for an admin status update.
func StatusChanged(o *model.Order, message string) Event {
	e := OrderPlaced(o)
	e.Type = TypeOrderStatusChanged
	e.Message = message
	return e
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (NopPublisher) Close() error                                   { return nil }
