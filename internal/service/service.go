package service

import (
	"context"

	"crunchy-cruise/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List returns products by name; unavailable ones only when includeUnavailable is set.
	List(ctx context.Context, includeUnavailable bool) ([]model.Product, error)

	// GetByName returns model.ErrProductNotFound when absent.
	GetByName(ctx context.Context, name string) (*model.Product, error)

	// Create adds a product; availability defaults to true.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update replaces a product's fields.
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// UpsertByName creates or replaces the product with req.Name.
	UpsertByName(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder stores a checkout snapshot with its first tracking update.
	CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error)

	// GetByID returns the order with its tracking history.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// Track looks up an order by the reference given to the customer.
	Track(ctx context.Context, reference string) (*model.OrderResponse, error)

	// List returns orders newest first.
	List(ctx context.Context, limit, offset int) ([]model.Order, error)

	// UpdateStatus moves an order to a new status and records a tracking update.
	UpdateStatus(ctx context.Context, id uuid.UUID, req *model.StatusUpdateRequest) (*model.OrderResponse, error)

	// Delete removes an order.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsService exposes the storefront ordering switch.
type SettingsService interface {
	OrderingEnabled(ctx context.Context) (bool, error)
	SetOrderingEnabled(ctx context.Context, enabled bool) error
}

// CartService runs cart session operations. Every method takes the cart
// session key and returns the resulting cart.
type CartService interface {
	Get(ctx context.Context, key string) (model.CartView, error)
	AddItem(ctx context.Context, key string, req *model.AddItemRequest) (model.CartView, error)
	SetQuantity(ctx context.Context, key, productName string, quantity int) (model.CartView, error)
	RemoveItem(ctx context.Context, key, productName string) (model.CartView, error)
	Clear(ctx context.Context, key string) (model.CartView, error)

	TogglePickup(ctx context.Context, key string) (model.CartView, error)
	ToggleDelivery(ctx context.Context, key string) (model.CartView, error)
	ResolveAddress(ctx context.Context, key, address string) (model.CartView, error)
	ResolveDeviceLocation(ctx context.Context, key string, at *model.Coordinates) (model.CartView, error)
	ConfirmLocation(ctx context.Context, key string) (model.CartView, error)
	EditAddress(ctx context.Context, key, address string) (model.CartView, error)

	// Checkout submits the cart as an order.
	Checkout(ctx context.Context, key string, customer model.Customer) (*model.CheckoutResponse, error)

	// CheckoutPaid verifies the payment reference before submitting.
	CheckoutPaid(ctx context.Context, key string, req *model.CheckoutRequest) (*model.CheckoutResponse, error)
}
