package cart

import (
	"context"
	"fmt"
	"time"

	"crunchy-cruise/internal/delivery"
	"crunchy-cruise/internal/geocode"
	"crunchy-cruise/internal/model"
	"crunchy-cruise/internal/money"
)

// Snapshot is the persisted form of a cart session.
type Snapshot struct {
	Items     []model.LineItem   `json:"items"`
	Delivery  model.DeliveryInfo `json:"delivery"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Store persists cart sessions by key.
type Store interface {
	// Load returns the stored snapshot, or nil when the key is unknown.
	Load(ctx context.Context, key string) (*Snapshot, error)

	// Save replaces the snapshot stored under key.
	Save(ctx context.Context, key string, snap Snapshot) error
}

// Session is a cart together with its delivery selection. Every mutation is
// written through to the Store; when the write fails the mutation is undone
// so memory never diverges from what was stored.
//
// A Session is not safe for concurrent use.
type Session struct {
	key       string
	store     Store
	cart      *Cart
	selection *delivery.Selection
}

// Open loads the session for key, starting empty with pickup when nothing is
// stored yet.
func Open(ctx context.Context, store Store, key string) (*Session, error) {
	snap, err := store.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart session: %w", err)
	}
	if snap == nil {
		snap = &Snapshot{Delivery: model.DefaultDeliveryInfo()}
	}
	return &Session{
		key:       key,
		store:     store,
		cart:      New(snap.Items),
		selection: delivery.NewSelection(snap.Delivery),
	}, nil
}

// Key returns the session key.
func (s *Session) Key() string { return s.key }

// Items returns a copy of the line items.
func (s *Session) Items() []model.LineItem { return s.cart.Items() }

// IsEmpty reports whether the cart has no lines.
func (s *Session) IsEmpty() bool { return s.cart.IsEmpty() }

// Subtotal is the cart subtotal.
func (s *Session) Subtotal() int64 { return s.cart.Subtotal() }

// Delivery returns a copy of the delivery info.
func (s *Session) Delivery() model.DeliveryInfo { return s.selection.Info() }

// DeliveryCharge is the charge counted towards the total.
func (s *Session) DeliveryCharge() int64 { return s.selection.Charge() }

// Total is the subtotal plus the confirmed delivery charge.
func (s *Session) Total() int64 { return money.SaturatingAdd(s.Subtotal(), s.DeliveryCharge()) }

// View renders the session for API responses.
func (s *Session) View() model.CartView {
	return model.CartView{
		SessionKey: s.key,
		Items:      s.cart.Items(),
		ItemCount:  s.cart.ItemCount(),
		Subtotal:   s.Subtotal(),
		Delivery:   s.selection.Info(),
		Total:      s.Total(),
	}
}

// AddItem adds or merges a line.
func (s *Session) AddItem(ctx context.Context, productName string, unitPriceMinor int64, quantityDelta int, displayImage string) error {
	return s.mutate(ctx, func() error {
		s.cart.AddItem(productName, unitPriceMinor, quantityDelta, displayImage)
		return nil
	})
}

// AddProduct adds or merges a catalogue product.
func (s *Session) AddProduct(ctx context.Context, p model.Product, quantity int) error {
	return s.mutate(ctx, func() error {
		s.cart.AddProduct(p, quantity)
		return nil
	})
}

// RemoveItem deletes a line.
func (s *Session) RemoveItem(ctx context.Context, productName string) error {
	return s.mutate(ctx, func() error {
		s.cart.RemoveItem(productName)
		return nil
	})
}

// SetQuantity sets the absolute quantity of a line.
func (s *Session) SetQuantity(ctx context.Context, productName string, quantity int) error {
	return s.mutate(ctx, func() error {
		s.cart.SetQuantity(productName, quantity)
		return nil
	})
}

// Clear empties the cart and resets delivery to pickup.
func (s *Session) Clear(ctx context.Context) error {
	return s.mutate(ctx, func() error {
		s.Reset()
		return nil
	})
}

// Reset empties the cart and resets delivery in memory only. Callers that
// must not roll back use Reset followed by Persist.
func (s *Session) Reset() {
	s.cart.Clear()
	s.selection.TogglePickup()
}

// Persist writes the current state to the store.
func (s *Session) Persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.key, s.snapshot()); err != nil {
		return fmt.Errorf("failed to save cart session: %w", err)
	}
	return nil
}

// TogglePickup switches to pickup.
func (s *Session) TogglePickup(ctx context.Context) error {
	return s.mutate(ctx, func() error {
		s.selection.TogglePickup()
		return nil
	})
}

// ToggleDelivery switches to delivery.
func (s *Session) ToggleDelivery(ctx context.Context) error {
	return s.mutate(ctx, func() error {
		s.selection.ToggleDelivery()
		return nil
	})
}

// ResolveAddress geocodes typed address text.
func (s *Session) ResolveAddress(ctx context.Context, g geocode.Geocoder, address string) error {
	return s.mutate(ctx, func() error {
		return s.selection.ResolveAddress(ctx, g, address)
	})
}

// ResolveDeviceLocation accepts a device geolocation reading.
func (s *Session) ResolveDeviceLocation(ctx context.Context, g geocode.Geocoder, at *model.Coordinates) error {
	return s.mutate(ctx, func() error {
		return s.selection.ResolveDeviceLocation(ctx, g, at)
	})
}

// ConfirmLocation prices the detected location.
func (s *Session) ConfirmLocation(ctx context.Context, calc delivery.Calculator) (delivery.Quote, error) {
	var quote delivery.Quote
	err := s.mutate(ctx, func() error {
		var err error
		quote, err = s.selection.ConfirmLocation(ctx, calc)
		return err
	})
	return quote, err
}

// EditAddress replaces the address text and drops the resolved location.
func (s *Session) EditAddress(ctx context.Context, address string) error {
	return s.mutate(ctx, func() error {
		return s.selection.EditAddress(address)
	})
}

func (s *Session) mutate(ctx context.Context, fn func() error) error {
	items := s.cart.Items()
	info := s.selection.Info()

	restore := func() {
		s.cart = New(items)
		s.selection = delivery.NewSelection(info)
	}

	if err := fn(); err != nil {
		restore()
		return err
	}
	if err := s.Persist(ctx); err != nil {
		restore()
		return err
	}
	return nil
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Items:     s.cart.Items(),
		Delivery:  s.selection.Info(),
		UpdatedAt: time.Now().UTC(),
	}
}
