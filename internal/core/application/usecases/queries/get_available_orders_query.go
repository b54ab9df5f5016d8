package queries

import (
	"errors"
	"time"

	"foodhub/internal/core/domain/model/kernel"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery lists orders a courier can claim: ready for
// pickup and not yet assigned to anyone.
type GetAvailableOrdersQuery struct {
	guard kernel.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for claimable orders.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: kernel.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// GetAvailableOrdersQueryResponse is one claimable order with the details
// a courier needs to decide whether to take it.
type GetAvailableOrdersQueryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	RestaurantName  string
	DeliveryAddress string
	DeliveryCity    string
	TotalAmount     float64
	ReadySince      time.Time
}
