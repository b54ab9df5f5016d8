package commands_test

import (
	"context"
	"testing"
	"time"

	"foodhub/internal/core/application/usecases/commands"
	"foodhub/internal/core/domain/model/cart"
	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/menu"
	"foodhub/internal/core/domain/model/order"
	"foodhub/internal/core/domain/model/restaurant"
	"foodhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) AddOrIncrement(ctx context.Context, line *cart.CartLine) (*cart.CartLine, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartLine), args.Error(1)
}

func (m *MockCartRepository) Get(ctx context.Context, customerID, lineID kernel.UUID) (*cart.CartLine, error) {
	args := m.Called(ctx, customerID, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartLine), args.Error(1)
}

func (m *MockCartRepository) Update(ctx context.Context, line *cart.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCartRepository) Remove(ctx context.Context, customerID, lineID kernel.UUID) error {
	args := m.Called(ctx, customerID, lineID)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, customerID kernel.UUID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*cart.CartLine, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.CartLine), args.Error(1)
}

func (m *MockCartRepository) Count(ctx context.Context, customerID kernel.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AssignDeliveryPerson(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetMenuItem(ctx context.Context, menuItemID kernel.UUID) (*menu.MenuItem, error) {
	args := m.Called(ctx, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockCatalogRepository) GetMenuItems(
	ctx context.Context, menuItemIDs []kernel.UUID,
) (map[kernel.UUID]*menu.MenuItem, error) {
	args := m.Called(ctx, menuItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]*menu.MenuItem), args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Get(ctx context.Context, restaurantID kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

// MockUoW satisfies every unit of work interface in this package so a
// single mock type serves all handler tests.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

type MockShoppingUoWFactory struct{ mock.Mock }

func (m *MockShoppingUoWFactory) Create() commands.ShoppingUoW {
	args := m.Called()
	return args.Get(0).(commands.ShoppingUoW)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	args := m.Called()
	return args.Get(0).(commands.CartUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCartCountCache struct{ mock.Mock }

func (m *MockCartCountCache) Get(ctx context.Context, customerID kernel.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartCountCache) Set(ctx context.Context, customerID kernel.UUID, count int64) error {
	args := m.Called(ctx, customerID, count)
	return args.Error(0)
}

func (m *MockCartCountCache) Invalidate(ctx context.Context, customerID kernel.UUID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderPlaced(ctx context.Context, event ports.OrderPlacedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// Shared fixtures.

func openRestaurant(t *testing.T, ownerID kernel.UUID) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), ownerID, "Blue Bistro", "italian", true, true)
	if err != nil {
		t.Fatalf("restaurant fixture: %v", err)
	}
	return r
}

func availableItem(t *testing.T, restaurantID kernel.UUID, price float64) *menu.MenuItem {
	t.Helper()
	item, err := menu.NewMenuItem(kernel.NewUUID(), restaurantID, "Margherita", "mains", price, nil, true)
	if err != nil {
		t.Fatalf("menu item fixture: %v", err)
	}
	return item
}

func cartLineFixture(
	t *testing.T, customerID, menuItemID kernel.UUID, quantity int,
) *cart.CartLine {
	t.Helper()
	line, err := cart.NewCartLine(
		kernel.NewUUID(), customerID, menuItemID, quantity, "", time.Now().UTC())
	if err != nil {
		t.Fatalf("cart line fixture: %v", err)
	}
	return line
}

func pendingOrderFixture(
	t *testing.T, customerID, restaurantID kernel.UUID,
) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 2, 100, "")
	if err != nil {
		t.Fatalf("order item fixture: %v", err)
	}
	o, err := order.NewOrder(order.NewOrderParams{
		ID:           kernel.NewUUID(),
		OrderNumber:  order.GenerateOrderNumber(time.Now().UTC()),
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Charges:      order.Charges{TotalAmount: 210, TaxAmount: 10},
		PaymentMethod: "card",
		Delivery: order.DeliveryDetails{
			Name: "Ada Test", Phone: "555-0100", Address: "12 Hill Rd",
		},
		Items:                 []order.Item{item},
		CreatedAt:             time.Now().UTC(),
		EstimatedDeliveryTime: time.Now().UTC().Add(45 * time.Minute),
	})
	if err != nil {
		t.Fatalf("order fixture: %v", err)
	}
	return o
}
