package commands

import (
	"context"
	"log/slog"

	"foodhub/internal/core/ports"
)

// ClearCartCommandHandler empties a customer's cart.
type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
	cartCounts ports.CartCountCache
	logger     *slog.Logger
}

// NewClearCartCommandHandler creates a handler for cart clearing.
func NewClearCartCommandHandler(
	uowFactory CartUoWFactory, cartCounts ports.CartCountCache, logger *slog.Logger,
) ClearCartCommandHandler {
	return ClearCartCommandHandler{
		uowFactory: uowFactory,
		cartCounts: cartCounts,
		logger:     logger,
	}
}

// Handle processes the clear.
func (h *ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CartRepository().Clear(ctx, cmd.CustomerID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if err := h.cartCounts.Invalidate(ctx, cmd.CustomerID()); err != nil {
		h.logger.Warn("failed to invalidate cart count cache",
			"customer_id", cmd.CustomerID(), "error", err)
	}

	return nil
}
