// Package menu contains the MenuItem entity and the catalog pricing rules.
// The order core treats menu items as read-mostly catalog records: menu
// management is external, but effective pricing and orderability are
// decided here because checkout depends on them.
package menu

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/restaurant"
	"foodhub/internal/pkg/errs"
)

var (
	// ErrMenuItemIsNotConstructed is returned when a MenuItem was not
	// created through NewMenuItem.
	ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem constructor")

	// ErrNotOrderable is returned when an item cannot be added to a cart:
	// the item is unavailable, or its restaurant is inactive or unverified.
	ErrNotOrderable = errors.New("menu item is not orderable")
)

// MenuItem is a catalog record with availability and pricing. The price a
// customer pays is the effective price at the moment the order is created;
// later changes to the catalog never affect placed orders, because order
// items copy the price.
type MenuItem struct {
	id              kernel.UUID
	restaurantID    kernel.UUID
	name            string
	category        string
	basePrice       float64
	discountedPrice *float64
	isAvailable     bool

	guard kernel.ConstructorGuard
}

// NewMenuItem creates a menu item. Base price must be positive; a
// discounted price, when present, must be positive as well (a discounted
// price at or above the base price is stored but never applied).
func NewMenuItem(
	id kernel.UUID,
	restaurantID kernel.UUID,
	name string,
	category string,
	basePrice float64,
	discountedPrice *float64,
	isAvailable bool,
) (*MenuItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if basePrice <= 0 {
		return nil, errs.NewValueIsInvalidError("basePrice")
	}
	if discountedPrice != nil && *discountedPrice <= 0 {
		return nil, errs.NewValueIsInvalidError("discountedPrice")
	}

	return &MenuItem{
		id:              id,
		restaurantID:    restaurantID,
		name:            name,
		category:        category,
		basePrice:       basePrice,
		discountedPrice: discountedPrice,
		isAvailable:     isAvailable,
		guard:           kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created via NewMenuItem.
func (m *MenuItem) Validate() error {
	if m == nil {
		return ErrMenuItemIsNotConstructed
	}
	return m.guard.Validate(ErrMenuItemIsNotConstructed)
}

// ID returns the menu item identifier.
func (m *MenuItem) ID() kernel.UUID {
	return m.id
}

// RestaurantID returns the identifier of the owning restaurant.
func (m *MenuItem) RestaurantID() kernel.UUID {
	return m.restaurantID
}

// Name returns the item's display name.
func (m *MenuItem) Name() string {
	return m.name
}

// Category returns the item's catalog category.
func (m *MenuItem) Category() string {
	return m.category
}

// BasePrice returns the undiscounted price.
func (m *MenuItem) BasePrice() float64 {
	return m.basePrice
}

// DiscountedPrice returns the discounted price, or nil when the item is
// not discounted.
func (m *MenuItem) DiscountedPrice() *float64 {
	return m.discountedPrice
}

// IsAvailable reports whether the item is currently offered.
func (m *MenuItem) IsAvailable() bool {
	return m.isAvailable
}

// EffectivePrice returns the price a customer pays right now: the
// discounted price if one is set and lower than the base price, else the
// base price.
func (m *MenuItem) EffectivePrice() float64 {
	if m.discountedPrice != nil && *m.discountedPrice < m.basePrice {
		return *m.discountedPrice
	}
	return m.basePrice
}

// IsOrderable reports whether the item may be added to a cart: the item
// must be available and its restaurant must accept orders.
func (m *MenuItem) IsOrderable(r *restaurant.Restaurant) bool {
	return m.isAvailable && r != nil && r.AcceptsOrders()
}
