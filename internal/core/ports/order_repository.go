package ports

import (
	"context"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for the Order aggregate.
type OrderRepository interface {
	// Add inserts a new order with its line items. A clash on the
	// human-readable order number is reported as
	// order.ErrDuplicateOrderNumber so the caller can regenerate and
	// retry within the same transaction.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists lifecycle changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items.
	Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error)

	// AssignDeliveryPerson claims the order for the courier with a
	// conditional update: the row is touched only while the order is
	// still ready for pickup and unassigned. When another courier won
	// the race the call returns order.ErrOrderAlreadyAssigned.
	AssignDeliveryPerson(ctx context.Context, aggregate *order.Order) error
}
