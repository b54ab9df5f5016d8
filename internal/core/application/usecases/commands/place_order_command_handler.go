package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/order"
	"foodhub/internal/core/domain/services"
	"foodhub/internal/core/ports"
)

// Order numbers carry four random digits, so same-day collisions are
// possible. A collision regenerates the number and retries the insert.
const maxOrderNumberAttempts = 3

// PlaceOrderCommandHandler executes checkout. It reads the cart, splits
// the lines into one pending order per restaurant, persists all of them,
// and clears the cart, all inside one transaction. Order placed events are
// published after the commit; a publish failure never undoes the checkout.
type PlaceOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	splitter   services.CheckoutSplitter
	publisher  ports.OrderEventPublisher
	cartCounts ports.CartCountCache
	logger     *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for checkout operations.
func NewPlaceOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	splitter services.CheckoutSplitter,
	publisher ports.OrderEventPublisher,
	cartCounts ports.CartCountCache,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		splitter:   splitter,
		publisher:  publisher,
		cartCounts: cartCounts,
		logger:     logger,
	}
}

// Handle processes the checkout command.
// Returns ErrEmptyCart when there is nothing to check out. On success the
// customer's cart is empty and every returned order is pending.
func (h *PlaceOrderCommandHandler) Handle(
	ctx context.Context, cmd PlaceOrderCommand,
) ([]*order.Order, error) {
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

	cartRepo := uow.CartRepository()
	lines, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	menuItemIDs := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		menuItemIDs = append(menuItemIDs, line.MenuItemID())
	}

	catalog, err := uow.CatalogRepository().GetMenuItems(ctx, menuItemIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orders, err := h.splitter.Split(services.CheckoutInput{
		CustomerID:    cmd.CustomerID(),
		Lines:         lines,
		Catalog:       catalog,
		PaymentMethod: cmd.PaymentMethod(),
		Delivery:      cmd.Delivery(),
		Now:           now,
	})
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	for _, o := range orders {
		if err = h.addWithNumberRetry(ctx, orderRepo, o, now); err != nil {
			return nil, err
		}
	}

	if err = cartRepo.Clear(ctx, cmd.CustomerID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err := h.cartCounts.Invalidate(ctx, cmd.CustomerID()); err != nil {
		h.logger.Warn("failed to invalidate cart count cache",
			"customer_id", cmd.CustomerID(), "error", err)
	}
	h.publishPlacedEvents(ctx, orders, now)

	return orders, nil
}

func (h *PlaceOrderCommandHandler) addWithNumberRetry(
	ctx context.Context, repo ports.OrderRepository, o *order.Order, now time.Time,
) error {
	for attempt := 1; ; attempt++ {
		err := repo.Add(ctx, o)
		if err == nil {
			return nil
		}
		if !errors.Is(err, order.ErrDuplicateOrderNumber) || attempt >= maxOrderNumberAttempts {
			return err
		}
		if err = o.RefreshOrderNumber(now); err != nil {
			return err
		}
	}
}

func (h *PlaceOrderCommandHandler) publishPlacedEvents(
	ctx context.Context, orders []*order.Order, placedAt time.Time,
) {
	checkoutID := kernel.NewUUID().String()
	for _, o := range orders {
		event := ports.OrderPlacedEvent{
			OrderID:      o.ID().String(),
			OrderNumber:  o.OrderNumber(),
			CheckoutID:   checkoutID,
			CustomerID:   o.CustomerID().String(),
			RestaurantID: o.RestaurantID().String(),
			TotalAmount:  o.Charges().TotalAmount,
			ItemCount:    o.TotalItems(),
			PlacedAt:     placedAt,
		}
		if err := h.publisher.PublishOrderPlaced(ctx, event); err != nil {
			h.logger.Warn("failed to publish order placed event",
				"order_id", event.OrderID, "error", err)
		}
	}
}
