package commands

import (
	"context"
	"log/slog"

	"foodhub/internal/core/ports"
)

// RemoveCartLineCommandHandler removes a line from a customer's cart.
type RemoveCartLineCommandHandler struct {
	uowFactory CartUoWFactory
	cartCounts ports.CartCountCache
	logger     *slog.Logger
}

// NewRemoveCartLineCommandHandler creates a handler for line removal.
func NewRemoveCartLineCommandHandler(
	uowFactory CartUoWFactory, cartCounts ports.CartCountCache, logger *slog.Logger,
) RemoveCartLineCommandHandler {
	return RemoveCartLineCommandHandler{
		uowFactory: uowFactory,
		cartCounts: cartCounts,
		logger:     logger,
	}
}

// Handle processes the removal. Removing an absent line is an error.
func (h *RemoveCartLineCommandHandler) Handle(ctx context.Context, cmd RemoveCartLineCommand) error {
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

	if err := uow.CartRepository().Remove(ctx, cmd.CustomerID(), cmd.LineID()); err != nil {
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
