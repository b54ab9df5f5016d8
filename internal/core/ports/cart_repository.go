// Package ports defines the contracts between the application core and its
// infrastructure adapters: repositories, the unit of work, the event
// publisher, and caches.
package ports

import (
	"context"

	"foodhub/internal/core/domain/model/cart"
	"foodhub/internal/core/domain/model/kernel"
)

// CartRepository is the persistence contract for cart lines.
type CartRepository interface {
	// AddOrIncrement inserts the line, or - when a line with the same
	// (customer, menu item, customization) already exists - atomically
	// increments that line's quantity by the new line's quantity. The
	// merge is a store-level upsert so concurrent adds cannot both
	// insert. Returns the resulting line.
	AddOrIncrement(ctx context.Context, line *cart.CartLine) (*cart.CartLine, error)

	// Get retrieves a line by id, scoped to the owning customer. A line
	// belonging to another customer is reported as not found.
	Get(ctx context.Context, customerID, lineID kernel.UUID) (*cart.CartLine, error)

	// Update persists a modified line (quantity changes).
	Update(ctx context.Context, line *cart.CartLine) error

	// Remove deletes a line scoped to the owning customer. Removing an
	// absent line returns an ObjectNotFoundError.
	Remove(ctx context.Context, customerID, lineID kernel.UUID) error

	// Clear deletes every line of the customer's cart. Clearing an empty
	// cart succeeds silently.
	Clear(ctx context.Context, customerID kernel.UUID) error

	// GetByCustomer returns the customer's lines ordered by creation time.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*cart.CartLine, error)

	// Count returns the number of lines in the customer's cart.
	Count(ctx context.Context, customerID kernel.UUID) (int64, error)
}
