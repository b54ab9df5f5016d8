package queries

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
)

var ErrGetCustomerStatsQueryIsNotConstructed = errors.New(
	"GetCustomerStatsQuery must be created via NewGetCustomerStatsQuery constructor",
)

// GetCustomerStatsQuery retrieves a customer's ordering profile.
type GetCustomerStatsQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetCustomerStatsQuery creates a customer stats query.
func NewGetCustomerStatsQuery(customerID kernel.UUID) (GetCustomerStatsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerStatsQuery{}, err
	}

	return GetCustomerStatsQuery{
		customerID: customerID,
		guard:      kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerStatsQueryIsNotConstructed)
}

// CustomerID returns the customer being summarized.
func (q GetCustomerStatsQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetCustomerStatsQueryResponse is the customer profile summary.
// TotalSpent counts delivered orders only. FavoriteCuisine is the cuisine
// the customer ordered from most often; ties break alphabetically, and it
// is empty when the customer has no orders.
type GetCustomerStatsQueryResponse struct {
	TotalOrders     int64
	TotalSpent      float64
	FavoriteCuisine string
}
