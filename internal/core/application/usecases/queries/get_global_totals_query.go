package queries

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
)

var ErrGetGlobalTotalsQueryIsNotConstructed = errors.New(
	"GetGlobalTotalsQuery must be created via NewGetGlobalTotalsQuery constructor",
)

// GetGlobalTotalsQuery retrieves all-time platform totals.
type GetGlobalTotalsQuery struct {
	guard kernel.ConstructorGuard
}

// NewGetGlobalTotalsQuery creates a platform totals query.
func NewGetGlobalTotalsQuery() GetGlobalTotalsQuery {
	return GetGlobalTotalsQuery{guard: kernel.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetGlobalTotalsQuery) Validate() error {
	return q.guard.Validate(ErrGetGlobalTotalsQueryIsNotConstructed)
}

// GetGlobalTotalsQueryResponse is the all-time platform summary. Revenue
// counts delivered orders only; InFlightOrders counts pending, confirmed,
// and preparing.
type GetGlobalTotalsQueryResponse struct {
	TotalOrders     int64
	DeliveredOrders int64
	InFlightOrders  int64
	TotalRevenue    float64
	CustomersServed int64
}
