package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crunchy-cruise/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

const orderColumns = `id, customer_name, customer_email, customer_phone, items, subtotal, delivery_charge,
	total_amount, delivery_info, status, payment_reference, created_at, updated_at`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction. Items are
// stored as the current versioned document.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	items, err := json.Marshal(model.NewOrderItemsDocument(order))
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}
	deliveryInfo, err := json.Marshal(order.Delivery)
	if err != nil {
		return fmt.Errorf("failed to encode delivery info: %w", err)
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = tx.Exec(ctx, query,
		order.ID,
		order.CustomerName,
		order.Email,
		order.Phone,
		items,
		order.Subtotal,
		order.DeliveryCharge,
		order.Total,
		deliveryInfo,
		order.Status,
		order.PaymentReference,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "idx_orders_payment_reference" {
			r.logger.Warn().
				Str("order_id", order.ID.String()).
				Msg("payment reference already used")
			return model.ErrPaymentAlreadyUsed
		}
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// CreateTrackingUpdates inserts tracking updates within the provided transaction.
func (r *orderRepository) CreateTrackingUpdates(ctx context.Context, tx pgx.Tx, updates []model.TrackingUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_tracking (id, order_id, status, message, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(query, u.ID, u.OrderID, u.Status, u.Message, u.Location, u.Timestamp)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(updates); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", updates[i].OrderID.String()).
				Str("status", string(updates[i].Status)).
				Msg("failed to create tracking update")
			return fmt.Errorf("failed to create tracking update: %w", err)
		}
	}

	return nil
}

// UpdateStatus sets the order status within the provided transaction.
func (r *orderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus, at time.Time) error {
	tag, err := tx.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// GetByID retrieves an order by its ID along with its tracking history.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.TrackingUpdate, error) {
	order, err := r.scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	trackingQuery := `
		SELECT id, order_id, status, message, location, created_at
		FROM order_tracking
		WHERE order_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, trackingQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query tracking updates")
		return nil, nil, fmt.Errorf("failed to query tracking updates: %w", err)
	}
	defer rows.Close()

	updates := []model.TrackingUpdate{}
	for rows.Next() {
		var u model.TrackingUpdate
		if err := rows.Scan(&u.ID, &u.OrderID, &u.Status, &u.Message, &u.Location, &u.Timestamp); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan tracking row")
			return nil, nil, fmt.Errorf("failed to scan tracking update: %w", err)
		}
		updates = append(updates, u)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating tracking rows")
		return nil, nil, fmt.Errorf("error iterating tracking updates: %w", err)
	}

	return order, updates, nil
}

// List returns orders newest first.
func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Int("offset", offset).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// Delete removes an order; tracking rows cascade.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// scanOrder reads one order row and normalises the stored items document.
func (r *orderRepository) scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o            model.Order
		items        []byte
		deliveryInfo []byte
	)
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.Email,
		&o.Phone,
		&items,
		&o.Subtotal,
		&o.DeliveryCharge,
		&o.Total,
		&deliveryInfo,
		&o.Status,
		&o.PaymentReference,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc, err := model.NormalizeOrderItems(items)
	if err != nil {
		r.logger.Warn().Err(err).Str("order_id", o.ID.String()).Msg("unreadable order items")
		return nil, fmt.Errorf("order %s: %w", o.ID, err)
	}
	o.Items = doc.Items
	if o.Subtotal == 0 {
		o.Subtotal = doc.Subtotal
	}
	if o.DeliveryCharge == 0 {
		o.DeliveryCharge = doc.DeliveryCharge
	}

	switch {
	case len(deliveryInfo) > 0 && string(deliveryInfo) != "null":
		if err := json.Unmarshal(deliveryInfo, &o.Delivery); err != nil {
			return nil, fmt.Errorf("order %s: failed to decode delivery info: %w", o.ID, err)
		}
	case doc.Delivery != nil:
		o.Delivery = *doc.Delivery
	default:
		o.Delivery = model.DefaultDeliveryInfo()
	}

	return &o, nil
}
