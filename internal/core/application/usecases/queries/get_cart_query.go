// Package queries contains read-only operations against the database.
// Query handlers bypass the domain model and read with raw SQL for
// efficiency; they never modify state.
package queries

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves a customer's cart grouped by restaurant, the way
// checkout will split it.
//
// Example:
//
//	query, err := NewGetCartQuery(customerID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetCartQueryHandler(db)
//	cart, err := handler.Handle(ctx, query)
type GetCartQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetCartQuery creates a query for the customer's cart contents.
func NewGetCartQuery(customerID kernel.UUID) (GetCartQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCartQuery{}, err
	}

	return GetCartQuery{
		customerID: customerID,
		guard:      kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// CustomerID returns the cart owner's id.
func (q GetCartQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetCartQueryLine is one cart line joined with its menu item. UnitPrice
// is the item's current effective price; TotalPrice is price times quantity.
type GetCartQueryLine struct {
	ID            kernel.UUID
	MenuItemID    kernel.UUID
	MenuItemName  string
	Quantity      int
	Customization string
	UnitPrice     float64
	TotalPrice    float64
}

// GetCartQueryRestaurantGroup is the slice of the cart belonging to one
// restaurant, with the subtotal checkout would charge for it before tax.
type GetCartQueryRestaurantGroup struct {
	RestaurantID   kernel.UUID
	RestaurantName string
	Lines          []GetCartQueryLine
	Subtotal       float64
}

// GetCartQueryResponse is the whole cart.
type GetCartQueryResponse struct {
	Groups     []GetCartQueryRestaurantGroup
	GrandTotal float64
	LineCount  int
}
