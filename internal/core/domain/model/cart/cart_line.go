// Package cart contains the CartLine entity: one pending selection of a
// menu item awaiting checkout. Lines are keyed by (customer, menu item,
// customization); re-adding the same combination merges into the existing
// line instead of duplicating it. The merge itself is enforced by a
// uniqueness constraint at the persistence layer so concurrent adds cannot
// both insert.
package cart

import (
	"errors"
	"time"

	"foodhub/internal/core/domain/model/kernel"
)

var (
	// ErrCartLineIsNotConstructed is returned when a CartLine was not
	// created through NewCartLine.
	ErrCartLineIsNotConstructed = errors.New("CartLine must be created via NewCartLine constructor")

	// ErrInvalidQuantity is returned when a quantity is zero or negative
	// where a positive quantity is required.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)

// CartLine is one customer selection: a menu item, a positive quantity and
// free-text customization. Lines live from add-to-cart until they are
// removed, the cart is cleared, or checkout consumes them.
type CartLine struct {
	id            kernel.UUID
	customerID    kernel.UUID
	menuItemID    kernel.UUID
	quantity      int
	customization string
	createdAt     time.Time
	updatedAt     time.Time

	guard kernel.ConstructorGuard
}

// NewCartLine creates a cart line with quantity validation.
func NewCartLine(
	id kernel.UUID,
	customerID kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	customization string,
	now time.Time,
) (*CartLine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if err := menuItemID.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	return &CartLine{
		id:            id,
		customerID:    customerID,
		menuItemID:    menuItemID,
		quantity:      quantity,
		customization: customization,
		createdAt:     now,
		updatedAt:     now,
		guard:         kernel.NewConstructorGuard(),
	}, nil
}

// RestoreCartLine reconstructs a cart line from persistence without
// re-running creation-time validation beyond the structural checks.
func RestoreCartLine(
	id kernel.UUID,
	customerID kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	customization string,
	createdAt time.Time,
	updatedAt time.Time,
) (*CartLine, error) {
	line, err := NewCartLine(id, customerID, menuItemID, quantity, customization, createdAt)
	if err != nil {
		return nil, err
	}
	line.updatedAt = updatedAt
	return line, nil
}

// Validate ensures the line was created via NewCartLine.
func (l *CartLine) Validate() error {
	if l == nil {
		return ErrCartLineIsNotConstructed
	}
	return l.guard.Validate(ErrCartLineIsNotConstructed)
}

// ID returns the line identifier.
func (l *CartLine) ID() kernel.UUID {
	return l.id
}

// CustomerID returns the identifier of the cart's owner.
func (l *CartLine) CustomerID() kernel.UUID {
	return l.customerID
}

// MenuItemID returns the selected menu item's identifier.
func (l *CartLine) MenuItemID() kernel.UUID {
	return l.menuItemID
}

// Quantity returns the selected quantity.
func (l *CartLine) Quantity() int {
	return l.quantity
}

// Customization returns the free-text customization for the line.
func (l *CartLine) Customization() string {
	return l.customization
}

// CreatedAt returns when the line was first added.
func (l *CartLine) CreatedAt() time.Time {
	return l.createdAt
}

// UpdatedAt returns when the line was last modified.
func (l *CartLine) UpdatedAt() time.Time {
	return l.updatedAt
}

// SetQuantity replaces the line's quantity. Quantities of zero or less are
// rejected; callers treat them as removal instead.
func (l *CartLine) SetQuantity(quantity int, now time.Time) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	l.quantity = quantity
	l.updatedAt = now
	return nil
}

// TotalPrice returns unitPrice x quantity rounded to money precision.
// The unit price is supplied by the caller because effective pricing lives
// with the menu item, not the cart line.
func (l *CartLine) TotalPrice(unitPrice float64) float64 {
	return kernel.RoundMoney(unitPrice * float64(l.quantity))
}
