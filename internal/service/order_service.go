package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crunchy-cruise/internal/events"
	"crunchy-cruise/internal/model"
	"crunchy-cruise/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReceivedMessage is the first tracking update recorded for every order.
const ReceivedMessage = "Order received and being processed"

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewOrderService creates a new order service. A nil publisher disables
// order events.
func NewOrderService(
	orderRepo repository.OrderRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &orderService{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder stores the order and its first tracking update in one transaction.
func (s *orderService) CreateOrder(ctx context.Context, order *model.Order) (_ *model.Order, err error) {
	if order == nil {
		return nil, fmt.Errorf("order is nil")
	}
	if len(order.Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	now := time.Now().UTC()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	received := []model.TrackingUpdate{{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Status:    order.Status,
		Message:   ReceivedMessage,
		Location:  model.StoreLocation,
		Timestamp: now,
	}}
	if err = s.orderRepo.CreateTrackingUpdates(ctx, tx, received); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create tracking update")
		return nil, fmt.Errorf("failed to create tracking update: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Int64("total", order.Total).
		Bool("delivery", order.Delivery.IsDelivery).
		Msg("order created successfully")

	s.publish(ctx, events.OrderPlaced(order))
	return order, nil
}

// GetByID retrieves an order with its tracking history.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, updates, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}
	if updates == nil {
		updates = []model.TrackingUpdate{}
	}

	return &model.OrderResponse{Order: *order, TrackingUpdates: updates}, nil
}

// Track accepts the reference shown to the customer, which is the order id.
func (s *orderService) Track(ctx context.Context, reference string) (*model.OrderResponse, error) {
	id, err := uuid.Parse(strings.TrimSpace(reference))
	if err != nil {
		return nil, model.ErrOrderNotFound
	}
	return s.GetByID(ctx, id)
}

// List returns orders newest first.
func (s *orderService) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.orderRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to req.Status and appends a tracking update.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.StatusUpdateRequest) (_ *model.OrderResponse, err error) {
	if req == nil || !req.Status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = fmt.Sprintf("Your order %s is now %s", id, req.Status.Label())
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = model.StoreLocation
	}

	now := time.Now().UTC()
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.UpdateStatus(ctx, tx, id, req.Status, now); err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	update := []model.TrackingUpdate{{
		ID:        uuid.New(),
		OrderID:   id,
		Status:    req.Status,
		Message:   message,
		Location:  location,
		Timestamp: now,
	}}
	if err = s.orderRepo.CreateTrackingUpdates(ctx, tx, update); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to create tracking update")
		return nil, fmt.Errorf("failed to create tracking update: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(req.Status)).
		Msg("order status updated")

	resp, getErr := s.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	s.publish(ctx, events.StatusChanged(&resp.Order, message))
	return resp, nil
}

// Delete removes an order.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	return nil
}

// publish never fails the caller; the order is already stored.
func (s *orderService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", event.OrderID.String()).
			Str("event_type", event.Type).
			Msg("failed to publish order event")
	}
}
