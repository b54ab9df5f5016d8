package commands_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"foodhub/internal/core/application/usecases/commands"
	"foodhub/internal/core/domain/model/cart"
	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/menu"
	"foodhub/internal/core/domain/model/order"
	"foodhub/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func checkoutDelivery() order.DeliveryDetails {
	return order.DeliveryDetails{Name: "Ada Test", Phone: "555-0100", Address: "12 Hill Rd"}
}

func placeOrderHandler(
	factory commands.CheckoutUoWFactory,
	publisher *MockEventPublisher,
	cache *MockCartCountCache,
) commands.PlaceOrderCommandHandler {
	splitter := services.NewCheckoutSplitter(services.PricingPolicy{
		TaxRate:          0.05,
		DeliveryEstimate: 45 * time.Minute,
	})
	return commands.NewPlaceOrderCommandHandler(
		factory, splitter, publisher, cache, slog.Default())
}

func TestPlaceOrderCommandHandler_Handle_SplitsPerRestaurant(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, _ := commands.NewPlaceOrderCommand(customerID, "card", checkoutDelivery())

	restA := openRestaurant(t, kernel.NewUUID())
	restB := openRestaurant(t, kernel.NewUUID())
	itemA := availableItem(t, restA.ID(), 100)
	itemB := availableItem(t, restB.ID(), 50)

	lines := []*cart.CartLine{
		cartLineFixture(t, customerID, itemA.ID(), 2),
		cartLineFixture(t, customerID, itemB.ID(), 1),
	}
	catalog := map[kernel.UUID]*menu.MenuItem{itemA.ID(): itemA, itemB.ID(): itemB}

	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepository)
	catalogRepo := new(MockCatalogRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(lines, nil).Once(),
		uow.On("CatalogRepository").Return(catalogRepo).Once(),
		catalogRepo.On("GetMenuItems", mock.Anything, mock.Anything).Return(catalog, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Twice(),
		cartRepo.On("Clear", mock.Anything, customerID).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()
	cache := new(MockCartCountCache)
	cache.On("Invalidate", ctx, customerID).Return(nil).Once()
	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(nil).Twice()

	h := placeOrderHandler(factory, publisher, cache)
	orders, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, restA.ID(), orders[0].RestaurantID())
	assert.Equal(t, restB.ID(), orders[1].RestaurantID())
	assert.InEpsilon(t, 210.0, orders[0].Charges().TotalAmount, 1e-9)
	assert.InEpsilon(t, 52.5, orders[1].Charges().TotalAmount, 1e-9)
	for _, o := range orders {
		assert.Equal(t, order.StatusPending, o.Status())
	}

	uow.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_EmptyCart(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, _ := commands.NewPlaceOrderCommand(customerID, "card", checkoutDelivery())

	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", mock.Anything, customerID).
			Return([]*cart.CartLine{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := placeOrderHandler(factory, new(MockEventPublisher), new(MockCartCountCache))
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrEmptyCart)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_RetriesDuplicateOrderNumber(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, _ := commands.NewPlaceOrderCommand(customerID, "card", checkoutDelivery())

	rest := openRestaurant(t, kernel.NewUUID())
	item := availableItem(t, rest.ID(), 100)
	lines := []*cart.CartLine{cartLineFixture(t, customerID, item.ID(), 1)}
	catalog := map[kernel.UUID]*menu.MenuItem{item.ID(): item}

	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepository)
	catalogRepo := new(MockCatalogRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(lines, nil).Once(),
		uow.On("CatalogRepository").Return(catalogRepo).Once(),
		catalogRepo.On("GetMenuItems", mock.Anything, mock.Anything).Return(catalog, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(order.ErrDuplicateOrderNumber).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(nil).Once(),
		cartRepo.On("Clear", mock.Anything, customerID).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()
	cache := new(MockCartCountCache)
	cache.On("Invalidate", ctx, customerID).Return(nil).Once()
	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(nil).Once()

	h := placeOrderHandler(factory, publisher, cache)
	orders, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	orderRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_GivesUpAfterRepeatedCollisions(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, _ := commands.NewPlaceOrderCommand(customerID, "card", checkoutDelivery())

	rest := openRestaurant(t, kernel.NewUUID())
	item := availableItem(t, rest.ID(), 100)
	lines := []*cart.CartLine{cartLineFixture(t, customerID, item.ID(), 1)}
	catalog := map[kernel.UUID]*menu.MenuItem{item.ID(): item}

	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepository)
	catalogRepo := new(MockCatalogRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo).Once()
	cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(lines, nil).Once()
	uow.On("CatalogRepository").Return(catalogRepo).Once()
	catalogRepo.On("GetMenuItems", mock.Anything, mock.Anything).Return(catalog, nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Return(order.ErrDuplicateOrderNumber).Times(3)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := placeOrderHandler(factory, new(MockEventPublisher), new(MockCartCountCache))
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrDuplicateOrderNumber)
	orderRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_PublishFailureDoesNotFailCheckout(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, _ := commands.NewPlaceOrderCommand(customerID, "card", checkoutDelivery())

	rest := openRestaurant(t, kernel.NewUUID())
	item := availableItem(t, rest.ID(), 100)
	lines := []*cart.CartLine{cartLineFixture(t, customerID, item.ID(), 1)}
	catalog := map[kernel.UUID]*menu.MenuItem{item.ID(): item}

	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepository)
	catalogRepo := new(MockCatalogRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo).Once()
	cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(lines, nil).Once()
	uow.On("CatalogRepository").Return(catalogRepo).Once()
	catalogRepo.On("GetMenuItems", mock.Anything, mock.Anything).Return(catalog, nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	cartRepo.On("Clear", mock.Anything, customerID).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()
	cache := new(MockCartCountCache)
	cache.On("Invalidate", ctx, customerID).Return(nil).Once()
	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderPlaced", mock.Anything, mock.Anything).
		Return(errors.New("broker down")).Once()

	h := placeOrderHandler(factory, publisher, cache)
	orders, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}
