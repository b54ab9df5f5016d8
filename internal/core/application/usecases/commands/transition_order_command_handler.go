package commands

import (
	"context"
	"log/slog"
	"time"

	"foodhub/internal/core/domain/model/order"
	"foodhub/internal/core/domain/model/restaurant"
	"foodhub/internal/core/ports"
)

// TransitionOrderCommandHandler drives order lifecycle steps.
//
// The aggregate decides legality and authority. The handler's jobs are
// loading the order, loading the restaurant when an owner is acting so
// ownership can be checked, and choosing the persistence path: claiming
// an order for delivery goes through a conditional update so that of two
// racing couriers exactly one wins.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for lifecycle transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.OrderEventPublisher, logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the transition and returns the updated order.
func (h *TransitionOrderCommandHandler) Handle(
	ctx context.Context, cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	var rest *restaurant.Restaurant
	if cmd.Actor().Role == order.RoleRestaurantOwner {
		rest, err = uow.RestaurantRepository().Get(ctx, o.RestaurantID())
		if err != nil {
			return nil, err
		}
	}

	oldStatus := o.Status()
	if err = o.TransitionTo(cmd.Target(), cmd.Actor(), rest, time.Now().UTC()); err != nil {
		return nil, err
	}

	if cmd.Target() == order.StatusOutForDelivery {
		err = orderRepo.AssignDeliveryPerson(ctx, o)
	} else {
		err = orderRepo.Update(ctx, o)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishStatusChanged(ctx, o, oldStatus, cmd.Actor())

	return o, nil
}

func (h *TransitionOrderCommandHandler) publishStatusChanged(
	ctx context.Context, o *order.Order, oldStatus order.Status, actor order.Actor,
) {
	event := ports.OrderStatusChangedEvent{
		OrderID:     o.ID().String(),
		OrderNumber: o.OrderNumber(),
		OldStatus:   oldStatus.String(),
		NewStatus:   o.Status().String(),
		ActorID:     actor.ID.String(),
		ActorRole:   string(actor.Role),
		ChangedAt:   time.Now().UTC(),
	}
	if err := h.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		h.logger.Warn("failed to publish order status changed event",
			"order_id", event.OrderID, "error", err)
	}
}
