package queries

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
)

var ErrGetRestaurantStatsQueryIsNotConstructed = errors.New(
	"GetRestaurantStatsQuery must be created via NewGetRestaurantStatsQuery constructor",
)

// GetRestaurantStatsQuery retrieves a restaurant's dashboard numbers.
type GetRestaurantStatsQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetRestaurantStatsQuery creates a restaurant stats query.
func NewGetRestaurantStatsQuery(restaurantID kernel.UUID) (GetRestaurantStatsQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetRestaurantStatsQuery{}, err
	}

	return GetRestaurantStatsQuery{
		restaurantID: restaurantID,
		guard:        kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRestaurantStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantStatsQueryIsNotConstructed)
}

// RestaurantID returns the restaurant being summarized.
func (q GetRestaurantStatsQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// GetRestaurantStatsQueryResponse is the restaurant dashboard summary.
// Revenue counts delivered orders only; pending counts the in-flight
// kitchen statuses (pending, confirmed, preparing). AverageRating is zero
// when no order has been rated yet.
type GetRestaurantStatsQueryResponse struct {
	TotalOrders   int64
	PendingOrders int64
	TotalRevenue  float64
	AverageRating float64
	RatedOrders   int64
}
