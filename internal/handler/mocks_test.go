package handler

import (
	"context"

	"crunchy-cruise/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, includeUnavailable bool) ([]model.Product, error) {
	args := m.Called(ctx, includeUnavailable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByName(ctx context.Context, name string) (*model.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) UpsertByName(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) Track(ctx context.Context, reference string) (*model.OrderResponse, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.StatusUpdateRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockSettingsService is a mock implementation of SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) OrderingEnabled(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettingsService) SetOrderingEnabled(ctx context.Context, enabled bool) error {
	return m.Called(ctx, enabled).Error(0)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) view(args mock.Arguments) (model.CartView, error) {
	v, _ := args.Get(0).(model.CartView)
	return v, args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, key string) (model.CartView, error) {
	return m.view(m.Called(ctx, key))
}

func (m *MockCartService) AddItem(ctx context.Context, key string, req *model.AddItemRequest) (model.CartView, error) {
	return m.view(m.Called(ctx, key, req))
}

func (m *MockCartService) SetQuantity(ctx context.Context, key, productName string, quantity int) (model.CartView, error) {
	return m.view(m.Called(ctx, key, productName, quantity))
}

func (m *MockCartService) RemoveItem(ctx context.Context, key, productName string) (model.CartView, error) {
	return m.view(m.Called(ctx, key, productName))
}

func (m *MockCartService) Clear(ctx context.Context, key string) (model.CartView, error) {
	return m.view(m.Called(ctx, key))
}

func (m *MockCartService) TogglePickup(ctx context.Context, key string) (model.CartView, error) {
	return m.view(m.Called(ctx, key))
}

func (m *MockCartService) ToggleDelivery(ctx context.Context, key string) (model.CartView, error) {
	return m.view(m.Called(ctx, key))
}

func (m *MockCartService) ResolveAddress(ctx context.Context, key, address string) (model.CartView, error) {
	return m.view(m.Called(ctx, key, address))
}

func (m *MockCartService) ResolveDeviceLocation(ctx context.Context, key string, at *model.Coordinates) (model.CartView, error) {
	return m.view(m.Called(ctx, key, at))
}

func (m *MockCartService) ConfirmLocation(ctx context.Context, key string) (model.CartView, error) {
	return m.view(m.Called(ctx, key))
}

func (m *MockCartService) EditAddress(ctx context.Context, key, address string) (model.CartView, error) {
	return m.view(m.Called(ctx, key, address))
}

func (m *MockCartService) Checkout(ctx context.Context, key string, customer model.Customer) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, key, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

func (m *MockCartService) CheckoutPaid(ctx context.Context, key string, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, key, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

// MockPaymentVerifier is a mock implementation of PaymentVerifier.
type MockPaymentVerifier struct {
	mock.Mock
}

func (m *MockPaymentVerifier) Verify(ctx context.Context, reference string) (model.PaymentVerification, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).(model.PaymentVerification), args.Error(1)
}
