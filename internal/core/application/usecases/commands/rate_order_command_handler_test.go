package commands_test

import (
	"testing"
	"time"

	"foodhub/internal/core/application/usecases/commands"
	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deliveredOrderFixture(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	ownerID := kernel.NewUUID()
	rest := openRestaurant(t, ownerID)
	o := pendingOrderFixture(t, customerID, rest.ID())
	owner, _ := order.NewActor(ownerID, order.RoleRestaurantOwner)
	courier, _ := order.NewActor(kernel.NewUUID(), order.RoleDeliveryPerson)
	now := time.Now().UTC()
	require.NoError(t, o.TransitionTo(order.StatusConfirmed, owner, rest, now))
	require.NoError(t, o.TransitionTo(order.StatusPreparing, owner, rest, now))
	require.NoError(t, o.TransitionTo(order.StatusReadyForPickup, owner, rest, now))
	require.NoError(t, o.TransitionTo(order.StatusOutForDelivery, courier, nil, now))
	require.NoError(t, o.TransitionTo(order.StatusDelivered, courier, nil, now))
	return o
}

func TestRateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	o := deliveredOrderFixture(t, customerID)
	customer, _ := order.NewActor(customerID, order.RoleCustomer)
	cmd, _ := commands.NewRateOrderCommand(o.ID(), customer, 5, "great pizza")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRateOrderCommandHandler(factory)
	rated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, rated.Rating())
	assert.Equal(t, 5, *rated.Rating())
	assert.Equal(t, "great pizza", rated.Review())
	orderRepo.AssertExpectations(t)
}

func TestRateOrderCommandHandler_Handle_OtherCustomerDenied(t *testing.T) {
	ctx := t.Context()
	o := deliveredOrderFixture(t, kernel.NewUUID())
	stranger, _ := order.NewActor(kernel.NewUUID(), order.RoleCustomer)
	cmd, _ := commands.NewRateOrderCommand(o.ID(), stranger, 4, "")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrAccessDenied)
}
