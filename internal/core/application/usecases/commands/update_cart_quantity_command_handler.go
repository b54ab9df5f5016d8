package commands

import (
	"context"
	"log/slog"
	"time"

	"foodhub/internal/core/domain/model/cart"
	"foodhub/internal/core/ports"
)

// UpdateCartQuantityCommandHandler changes an existing line's quantity.
// Lines are looked up scoped to the owning customer, so one customer can
// never touch another customer's lines.
type UpdateCartQuantityCommandHandler struct {
	uowFactory CartUoWFactory
	cartCounts ports.CartCountCache
	logger     *slog.Logger
}

// NewUpdateCartQuantityCommandHandler creates a handler for quantity updates.
func NewUpdateCartQuantityCommandHandler(
	uowFactory CartUoWFactory, cartCounts ports.CartCountCache, logger *slog.Logger,
) UpdateCartQuantityCommandHandler {
	return UpdateCartQuantityCommandHandler{
		uowFactory: uowFactory,
		cartCounts: cartCounts,
		logger:     logger,
	}
}

// Handle processes the update. Returns the updated line, or nil when the
// non-positive quantity removed it.
func (h *UpdateCartQuantityCommandHandler) Handle(
	ctx context.Context, cmd UpdateCartQuantityCommand,
) (*cart.CartLine, error) {
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
	line, err := cartRepo.Get(ctx, cmd.CustomerID(), cmd.LineID())
	if err != nil {
		return nil, err
	}

	if cmd.Quantity() <= 0 {
		if err = cartRepo.Remove(ctx, cmd.CustomerID(), cmd.LineID()); err != nil {
			return nil, err
		}
		line = nil
	} else {
		if err = line.SetQuantity(cmd.Quantity(), time.Now().UTC()); err != nil {
			return nil, err
		}
		if err = cartRepo.Update(ctx, line); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err := h.cartCounts.Invalidate(ctx, cmd.CustomerID()); err != nil {
		h.logger.Warn("failed to invalidate cart count cache",
			"customer_id", cmd.CustomerID(), "error", err)
	}

	return line, nil
}
