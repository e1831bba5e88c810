package repository

import (
	"context"
	"time"

	"crunchy-cruise/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List returns products ordered by name. Unavailable products are
	// included only when includeUnavailable is set.
	List(ctx context.Context, includeUnavailable bool) ([]model.Product, error)

	// GetByID returns nil when the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByName returns nil when the product does not exist.
	GetByName(ctx context.Context, name string) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update replaces the editable fields. Returns model.ErrProductNotFound
	// when no row matches.
	Update(ctx context.Context, p *model.Product) error

	// UpsertByName inserts p or updates the product with the same name. On
	// return p holds the stored id and timestamps.
	UpsertByName(ctx context.Context, p *model.Product) error

	// Delete removes a product. Returns model.ErrProductNotFound when no
	// row matches.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateTrackingUpdates inserts tracking updates within the provided transaction.
	CreateTrackingUpdates(ctx context.Context, tx pgx.Tx, updates []model.TrackingUpdate) error

	// UpdateStatus sets the order status within the provided transaction.
	// Returns model.ErrOrderNotFound when no row matches.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus, at time.Time) error

	// GetByID retrieves an order with its tracking history, oldest first.
	// Returns nil when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.TrackingUpdate, error)

	// List returns orders newest first.
	List(ctx context.Context, limit, offset int) ([]model.Order, error)

	// Delete removes an order and its tracking history.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsRepository stores storefront settings.
type SettingsRepository interface {
	// OrderingEnabled returns the ordering flag, creating the default
	// (enabled) row on first read.
	OrderingEnabled(ctx context.Context) (bool, error)

	// SetOrderingEnabled updates the ordering flag.
	SetOrderingEnabled(ctx context.Context, enabled bool) error
}
