package queries

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
)

var ErrGetCartCountQueryIsNotConstructed = errors.New(
	"GetCartCountQuery must be created via NewGetCartCountQuery constructor",
)

// GetCartCountQuery retrieves the number of lines in a customer's cart.
// Serves the cart badge, so it is by far the hottest read and is backed
// by a cache.
type GetCartCountQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetCartCountQuery creates a cart count query.
func NewGetCartCountQuery(customerID kernel.UUID) (GetCartCountQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCartCountQuery{}, err
	}

	return GetCartCountQuery{
		customerID: customerID,
		guard:      kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartCountQuery) Validate() error {
	return q.guard.Validate(ErrGetCartCountQueryIsNotConstructed)
}

// CustomerID returns the cart owner's id.
func (q GetCartCountQuery) CustomerID() kernel.UUID {
	return q.customerID
}
