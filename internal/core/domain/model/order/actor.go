package order

import (
	"fmt"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/pkg/errs"
)

// Role identifies which kind of user is driving an operation. The role is
// supplied by the authenticated caller; the lifecycle engine only decides
// whether that role may drive a given transition.
type Role string

const (
	// RoleCustomer places orders, owns carts, and may cancel or rate own
	// orders.
	RoleCustomer Role = "customer"

	// RoleRestaurantOwner drives the kitchen-side transitions of orders
	// belonging to the owner's restaurant.
	RoleRestaurantOwner Role = "restaurant_owner"

	// RoleDeliveryPerson claims pickup-ready orders and completes
	// deliveries.
	RoleDeliveryPerson Role = "delivery_person"

	// RoleAdmin may cancel orders on behalf of the platform.
	RoleAdmin Role = "admin"
)

// RoleFromString parses a role supplied by the caller.
func RoleFromString(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleRestaurantOwner, RoleDeliveryPerson, RoleAdmin:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%q is not a valid actor role", s))
	}
}

// Actor is the authenticated identity performing an operation. It is
// always passed explicitly into the core; the core never reads identity
// from ambient state.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor creates an actor after validating its parts.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if _, err := RoleFromString(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}
