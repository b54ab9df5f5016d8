// Package restaurant holds the read-side restaurant entity the order core
// needs: enough to decide whether a restaurant currently accepts orders and
// who owns it. Restaurant management itself (profiles, menus, opening
// hours) lives outside this core.
package restaurant

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/pkg/errs"
)

// ErrRestaurantIsNotConstructed is returned when a Restaurant was not
// created through NewRestaurant.
var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant is the catalog view of a restaurant. Orders reference it by
// id; the lifecycle engine consults OwnerID for transition authority and
// AcceptsOrders for orderability checks.
type Restaurant struct {
	id         kernel.UUID
	ownerID    kernel.UUID
	name       string
	cuisine    string
	isActive   bool
	isVerified bool

	guard kernel.ConstructorGuard
}

// NewRestaurant creates a restaurant entity. Name and cuisine are required;
// both flags default to whatever the platform recorded for the restaurant.
func NewRestaurant(
	id kernel.UUID,
	ownerID kernel.UUID,
	name string,
	cuisine string,
	isActive bool,
	isVerified bool,
) (*Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if cuisine == "" {
		return nil, errs.NewValueIsRequiredError("cuisine")
	}

	return &Restaurant{
		id:         id,
		ownerID:    ownerID,
		name:       name,
		cuisine:    cuisine,
		isActive:   isActive,
		isVerified: isVerified,
		guard:      kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the restaurant was created via NewRestaurant.
func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

// ID returns the restaurant identifier.
func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

// OwnerID returns the identifier of the owning user.
func (r *Restaurant) OwnerID() kernel.UUID {
	return r.ownerID
}

// Name returns the restaurant's display name.
func (r *Restaurant) Name() string {
	return r.name
}

// Cuisine returns the restaurant's cuisine label.
func (r *Restaurant) Cuisine() string {
	return r.cuisine
}

// IsActive reports whether the restaurant is currently active.
func (r *Restaurant) IsActive() bool {
	return r.isActive
}

// IsVerified reports whether the platform has verified the restaurant.
func (r *Restaurant) IsVerified() bool {
	return r.isVerified
}

// AcceptsOrders reports whether menu items of this restaurant may be
// ordered: the restaurant must be both active and verified.
func (r *Restaurant) AcceptsOrders() bool {
	return r.isActive && r.isVerified
}

// IsOwnedBy reports whether the given user owns this restaurant.
func (r *Restaurant) IsOwnedBy(userID kernel.UUID) bool {
	return r.ownerID.IsEqual(userID)
}
