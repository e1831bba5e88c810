package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crunchy-cruise/internal/cart"
	"crunchy-cruise/internal/model"
	"crunchy-cruise/internal/money"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FlagSource reports whether the storefront is accepting orders.
type FlagSource interface {
	OrderingEnabled(ctx context.Context) (bool, error)
}

// OrderCreator persists a submitted order and returns it as stored.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error)
}

// PaymentVerifier confirms a payment provider transaction reference.
type PaymentVerifier interface {
	Verify(ctx context.Context, reference string) (model.PaymentVerification, error)
}

// Result is the outcome of a submission. Customer is reset to empty after an
// order is placed and echoed back otherwise.
type Result struct {
	Outcome  model.CheckoutOutcome
	Order    *model.Order
	Customer model.Customer
}

// Flow runs the checkout handshake: ordering gate, validation, order
// creation, then clearing the cart session.
type Flow struct {
	flags    FlagSource
	orders   OrderCreator
	payments PaymentVerifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewFlow creates a checkout flow. payments may be nil when paid checkout is
// not offered.
func NewFlow(flags FlagSource, orders OrderCreator, payments PaymentVerifier, logger zerolog.Logger) *Flow {
	return &Flow{
		flags:    flags,
		orders:   orders,
		payments: payments,
		logger:   logger.With().Str("service", "checkout").Logger(),
		now:      time.Now,
	}
}

// Submit places an order for the session. A disabled storefront yields
// OutcomeOrderingDisabled with nothing else called. On any error the session
// is left exactly as it was.
func (f *Flow) Submit(ctx context.Context, s *cart.Session, customer model.Customer) (Result, error) {
	if res, ok, err := f.precheck(ctx, s, customer); !ok {
		return res, err
	}
	return f.place(ctx, s, customer, nil)
}

// SubmitPaid places an order after the payment reference has been verified
// with the provider for at least the order total.
func (f *Flow) SubmitPaid(ctx context.Context, s *cart.Session, customer model.Customer, reference string) (Result, error) {
	if res, ok, err := f.precheck(ctx, s, customer); !ok {
		return res, err
	}

	echo := Result{Customer: customer}
	if err := ValidateEmail(customer.Email); err != nil {
		return echo, err
	}

	reference = strings.TrimSpace(reference)
	if reference == "" {
		return echo, model.ErrMissingReference
	}
	if f.payments == nil {
		return echo, model.ErrPaymentNotVerified.Wrap(fmt.Errorf("no payment verifier configured"))
	}

	verification, err := f.payments.Verify(ctx, reference)
	if err != nil {
		f.logger.Error().Err(err).Str("reference", reference).Msg("payment verification failed")
		return echo, model.ErrPaymentNotVerified.Wrap(err)
	}
	if !verification.Verified {
		f.logger.Warn().
			Str("reference", reference).
			Str("status", verification.Status).
			Msg("payment not successful")
		return echo, model.ErrPaymentNotVerified
	}
	if total := s.Total(); verification.AmountMinor < total {
		f.logger.Warn().
			Str("reference", reference).
			Int64("paid", verification.AmountMinor).
			Int64("total", total).
			Msg("payment amount below order total")
		return echo, model.ErrPaymentNotVerified.Wrap(fmt.Errorf("paid %d, expected %d", verification.AmountMinor, total))
	}

	return f.place(ctx, s, customer, &reference)
}

// precheck runs the gate and the checks shared by both submissions. ok is
// false when the caller must return res and err as they are.
func (f *Flow) precheck(ctx context.Context, s *cart.Session, customer model.Customer) (res Result, ok bool, err error) {
	res = Result{Customer: customer}

	enabled, err := f.flags.OrderingEnabled(ctx)
	if err != nil {
		f.logger.Error().Err(err).Msg("failed to read ordering flag")
		return res, false, fmt.Errorf("failed to read ordering flag: %w", err)
	}
	if !enabled {
		f.logger.Info().Str("session", s.Key()).Msg("checkout rejected, ordering disabled")
		res.Outcome = model.OutcomeOrderingDisabled
		return res, false, nil
	}

	if err := ValidateCustomer(customer.Name, customer.Phone); err != nil {
		return res, false, err
	}
	if s.IsEmpty() {
		return res, false, model.ErrEmptyCart
	}
	if info := s.Delivery(); info.IsDelivery && info.State != model.DeliveryStateConfirmed {
		return res, false, model.ErrDeliveryNotConfirmed
	}
	return res, true, nil
}

func (f *Flow) place(ctx context.Context, s *cart.Session, customer model.Customer, reference *string) (Result, error) {
	order := f.snapshot(s, customer, reference)

	created, err := f.orders.CreateOrder(ctx, order)
	if errors.Is(err, model.ErrPaymentAlreadyUsed) {
		f.logger.Warn().Str("session", s.Key()).Str("reference", *reference).Msg("payment reference replayed")
		return Result{Customer: customer}, model.ErrPaymentAlreadyUsed
	}
	if err != nil {
		f.logger.Error().Err(err).Str("session", s.Key()).Msg("order submission failed")
		return Result{Customer: customer}, model.ErrOrderSubmissionFailed.Wrap(err)
	}
	if created == nil {
		created = order
	}

	s.Reset()
	if err := s.Persist(ctx); err != nil {
		f.logger.Error().
			Err(err).
			Str("session", s.Key()).
			Str("order_id", created.ID.String()).
			Msg("order placed but cart session could not be cleared")
	}

	f.logger.Info().
		Str("order_id", created.ID.String()).
		Int64("total", created.Total).
		Bool("delivery", created.Delivery.IsDelivery).
		Msg("order placed")

	return Result{Outcome: model.OutcomeOrderPlaced, Order: created}, nil
}

func (f *Flow) snapshot(s *cart.Session, customer model.Customer, reference *string) *model.Order {
	now := f.now().UTC()
	order := &model.Order{
		ID:               uuid.New(),
		CustomerName:     strings.TrimSpace(customer.Name),
		Phone:            strings.TrimSpace(customer.Phone),
		Items:            s.Items(),
		Subtotal:         s.Subtotal(),
		DeliveryCharge:   s.DeliveryCharge(),
		Delivery:         s.Delivery(),
		Status:           model.OrderStatusPending,
		PaymentReference: reference,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	order.Total = money.SaturatingAdd(order.Subtotal, order.DeliveryCharge)
	if email := strings.TrimSpace(customer.Email); email != "" {
		order.Email = &email
	}
	return order
}
