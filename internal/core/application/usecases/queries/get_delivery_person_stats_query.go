package queries

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
)

var ErrGetDeliveryPersonStatsQueryIsNotConstructed = errors.New(
	"GetDeliveryPersonStatsQuery must be created via NewGetDeliveryPersonStatsQuery constructor",
)

// GetDeliveryPersonStatsQuery retrieves a courier's work summary.
type GetDeliveryPersonStatsQuery struct { //nolint:recvcheck //using for validation
	deliveryPersonID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetDeliveryPersonStatsQuery creates a courier stats query.
func NewGetDeliveryPersonStatsQuery(deliveryPersonID kernel.UUID) (GetDeliveryPersonStatsQuery, error) {
	if err := deliveryPersonID.Validate(); err != nil {
		return GetDeliveryPersonStatsQuery{}, err
	}

	return GetDeliveryPersonStatsQuery{
		deliveryPersonID: deliveryPersonID,
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryPersonStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryPersonStatsQueryIsNotConstructed)
}

// DeliveryPersonID returns the courier being summarized.
func (q GetDeliveryPersonStatsQuery) DeliveryPersonID() kernel.UUID {
	return q.deliveryPersonID
}

// GetDeliveryPersonStatsQueryResponse is the courier's summary.
// Earnings are a commission on the totals of delivered orders. SuccessRate
// is delivered divided by all assigned orders as a percentage, zero when
// the courier has no assignments.
type GetDeliveryPersonStatsQueryResponse struct {
	TotalAssigned    int64
	TotalDelivered   int64
	ActiveDeliveries int64
	TotalEarnings    float64
	SuccessRate      float64
}
