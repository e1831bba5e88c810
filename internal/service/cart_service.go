package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crunchy-cruise/internal/cart"
	"crunchy-cruise/internal/checkout"
	"crunchy-cruise/internal/delivery"
	"crunchy-cruise/internal/geocode"
	"crunchy-cruise/internal/model"

	"github.com/rs/zerolog"
)

// ErrMissingSessionKey is returned when a request carries no cart session key.
var ErrMissingSessionKey = model.NewDomainError(model.ErrCodeMissingField, "Cart session key is required")

// cartService implements CartService.
type cartService struct {
	store      cart.Store
	products   ProductService
	geocoder   geocode.Geocoder
	calculator delivery.Calculator
	flow       *checkout.Flow
	locks      *keyedMutex
	logger     zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	store cart.Store,
	products ProductService,
	geocoder geocode.Geocoder,
	calculator delivery.Calculator,
	flow *checkout.Flow,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		store:      store,
		products:   products,
		geocoder:   geocoder,
		calculator: calculator,
		flow:       flow,
		locks:      newKeyedMutex(),
		logger:     logger.With().Str("service", "cart").Logger(),
	}
}

// Get returns the cart for key.
func (s *cartService) Get(ctx context.Context, key string) (model.CartView, error) {
	return s.withSession(ctx, key, func(*cart.Session) error { return nil })
}

// AddItem adds a catalogue product, priced from its display price.
func (s *cartService) AddItem(ctx context.Context, key string, req *model.AddItemRequest) (model.CartView, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return model.CartView{}, model.ErrProductNotFound
	}

	product, err := s.products.GetByName(ctx, req.Name)
	if err != nil {
		return model.CartView{}, err
	}
	if !product.Available {
		return model.CartView{}, model.ErrProductUnavailable
	}

	return s.withSession(ctx, key, func(sess *cart.Session) error {
		return sess.AddProduct(ctx, *product, req.Quantity)
	})
}

// SetQuantity sets the quantity of an existing line.
func (s *cartService) SetQuantity(ctx context.Context, key, productName string, quantity int) (model.CartView, error) {
	return s.withSession(ctx, key, func(sess *cart.Session) error {
		return sess.SetQuantity(ctx, productName, quantity)
	})
}

// RemoveItem deletes a line.
func (s *cartService) RemoveItem(ctx context.Context, key, productName string) (model.CartView, error) {
	return s.withSession(ctx, key, func(sess *cart.Session) error {
		return sess.RemoveItem(ctx, productName)
	})
}

// Clear empties the cart and returns delivery to pickup.
func (s *cartService) Clear(ctx context.Context, key string) (model.CartView, error) {
	return s.withSession(ctx, key, func(sess *cart.Session) error {
		return sess.Clear(ctx)
	})
}

func (s *cartService) TogglePickup(ctx context.Context, key string) (model.CartView, error) {
	return s.withSession(ctx, key, func(sess *cart.Session) error {
		return sess.TogglePickup(ctx)
	})
}

func (s *cartService) ToggleDelivery(ctx context.Context, key string) (model.CartView, error) {
	return s.withSession(ctx, key, func(sess *cart.Session) error {
		return sess.ToggleDelivery(ctx)
	})
}

// ResolveAddress geocodes typed address text.
func (s *cartService) ResolveAddress(ctx context.Context, key, address string) (model.CartView, error) {
	return s.withSession(ctx, key, func(sess *cart.Session) error {
		if err := sess.ResolveAddress(ctx, s.geocoder, address); err != nil {
			s.logger.Warn().Err(err).Str("session", key).Msg("failed to resolve delivery address")
			return err
		}
		return nil
	})
}

// ResolveDeviceLocation accepts a device reading; nil means permission was denied.
func (s *cartService) ResolveDeviceLocation(ctx context.Context, key string, at *model.Coordinates) (model.CartView, error) {
	return s.withSession(ctx, key, func(sess *cart.Session) error {
		return sess.ResolveDeviceLocation(ctx, s.geocoder, at)
	})
}

// ConfirmLocation prices the detected location.
func (s *cartService) ConfirmLocation(ctx context.Context, key string) (model.CartView, error) {
	return s.withSession(ctx, key, func(sess *cart.Session) error {
		quote, err := sess.ConfirmLocation(ctx, s.calculator)
		if err != nil {
			s.logger.Warn().Err(err).Str("session", key).Msg("failed to confirm delivery location")
			return err
		}
		s.logger.Debug().
			Str("session", key).
			Float64("distance_km", quote.DistanceKm).
			Int64("delivery_charge", quote.DeliveryChargeMinor).
			Msg("delivery location confirmed")
		return nil
	})
}

// EditAddress replaces the address text and drops the resolved location.
func (s *cartService) EditAddress(ctx context.Context, key, address string) (model.CartView, error) {
	return s.withSession(ctx, key, func(sess *cart.Session) error {
		return sess.EditAddress(ctx, address)
	})
}

// Checkout submits the cart as an order.
func (s *cartService) Checkout(ctx context.Context, key string, customer model.Customer) (*model.CheckoutResponse, error) {
	return s.checkout(ctx, key, func(sess *cart.Session) (checkout.Result, error) {
		return s.flow.Submit(ctx, sess, customer)
	})
}

// CheckoutPaid submits the cart after verifying the payment reference.
func (s *cartService) CheckoutPaid(ctx context.Context, key string, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if req == nil {
		return nil, model.ErrMissingReference
	}
	return s.checkout(ctx, key, func(sess *cart.Session) (checkout.Result, error) {
		return s.flow.SubmitPaid(ctx, sess, req.Customer, req.Reference)
	})
}

func (s *cartService) checkout(ctx context.Context, key string, submit func(*cart.Session) (checkout.Result, error)) (*model.CheckoutResponse, error) {
	var resp *model.CheckoutResponse
	_, err := s.withSession(ctx, key, func(sess *cart.Session) error {
		res, err := submit(sess)
		if err != nil {
			return err
		}
		resp = &model.CheckoutResponse{
			Outcome:  res.Outcome,
			Order:    res.Order,
			Customer: res.Customer,
			Cart:     sess.View(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// withSession runs fn on the session for key while holding the key's lock.
// The returned view reflects the session after fn, whether or not fn failed.
func (s *cartService) withSession(ctx context.Context, key string, fn func(*cart.Session) error) (model.CartView, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return model.CartView{}, ErrMissingSessionKey
	}

	unlock := s.locks.Lock(key)
	defer unlock()

	sess, err := cart.Open(ctx, s.store, key)
	if err != nil {
		s.logger.Error().Err(err).Str("session", key).Msg("failed to open cart session")
		return model.CartView{}, fmt.Errorf("failed to open cart: %w", err)
	}

	if err := fn(sess); err != nil {
		var domainErr *model.DomainError
		if !errors.As(err, &domainErr) {
			s.logger.Error().Err(err).Str("session", key).Msg("cart operation failed")
		}
		return sess.View(), err
	}
	return sess.View(), nil
}
