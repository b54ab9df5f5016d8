package commands

import (
	"context"
	"log/slog"
	"time"

	"foodhub/internal/core/domain/model/cart"
	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/menu"
	"foodhub/internal/core/ports"
)

// AddCartItemResult reports the outcome of an add: the line the item ended
// up on (new or merged) and the cart's line count after the add.
type AddCartItemResult struct {
	Line      *cart.CartLine
	CartCount int64
}

// AddCartItemCommandHandler adds menu items to carts.
// The item must be available and its restaurant must currently accept
// orders. The merge with an existing line happens in the store as an
// atomic upsert, so two concurrent adds of the same item never create
// duplicate lines.
type AddCartItemCommandHandler struct {
	uowFactory ShoppingUoWFactory
	cartCounts ports.CartCountCache
	logger     *slog.Logger
}

// NewAddCartItemCommandHandler creates a handler for cart add operations.
func NewAddCartItemCommandHandler(
	uowFactory ShoppingUoWFactory, cartCounts ports.CartCountCache, logger *slog.Logger,
) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
		cartCounts: cartCounts,
		logger:     logger,
	}
}

// Handle processes the add command. Returns menu.ErrNotOrderable when the
// item is unavailable or its restaurant is inactive or unverified.
func (h *AddCartItemCommandHandler) Handle(
	ctx context.Context, cmd AddCartItemCommand,
) (AddCartItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return AddCartItemResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AddCartItemResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := uow.CatalogRepository().GetMenuItem(ctx, cmd.MenuItemID())
	if err != nil {
		return AddCartItemResult{}, err
	}

	rest, err := uow.RestaurantRepository().Get(ctx, item.RestaurantID())
	if err != nil {
		return AddCartItemResult{}, err
	}

	if !item.IsOrderable(rest) {
		return AddCartItemResult{}, menu.ErrNotOrderable
	}

	line, err := cart.NewCartLine(
		kernel.NewUUID(), cmd.CustomerID(), cmd.MenuItemID(),
		cmd.Quantity(), cmd.Customization(), time.Now().UTC())
	if err != nil {
		return AddCartItemResult{}, err
	}

	cartRepo := uow.CartRepository()
	merged, err := cartRepo.AddOrIncrement(ctx, line)
	if err != nil {
		return AddCartItemResult{}, err
	}

	count, err := cartRepo.Count(ctx, cmd.CustomerID())
	if err != nil {
		return AddCartItemResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AddCartItemResult{}, err
	}

	if err := h.cartCounts.Invalidate(ctx, cmd.CustomerID()); err != nil {
		h.logger.Warn("failed to invalidate cart count cache",
			"customer_id", cmd.CustomerID(), "error", err)
	}

	return AddCartItemResult{Line: merged, CartCount: count}, nil
}
