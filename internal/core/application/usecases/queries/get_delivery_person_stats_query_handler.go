package queries

import (
	"context"

	"foodhub/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// Couriers earn a flat commission on each delivered order's total.
const deliveryCommissionRate = 0.10

// GetDeliveryPersonStatsQueryHandler aggregates a courier's assignments.
type GetDeliveryPersonStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryPersonStatsQueryHandler creates a handler for courier stats.
func NewGetDeliveryPersonStatsQueryHandler(db *gorm.DB) GetDeliveryPersonStatsQueryHandler {
	return GetDeliveryPersonStatsQueryHandler{db: db}
}

// Handle executes the aggregation over the courier's assigned orders.
func (h GetDeliveryPersonStatsQueryHandler) Handle(
	ctx context.Context, query GetDeliveryPersonStatsQuery,
) (GetDeliveryPersonStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryPersonStatsQueryResponse{}, err
	}

	var (
		response       GetDeliveryPersonStatsQueryResponse
		deliveredTotal float64
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_assigned,
			COUNT(*) FILTER (WHERE status = 'delivered') AS total_delivered,
			COUNT(*) FILTER (WHERE status = 'out_for_delivery') AS active_deliveries,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'delivered'), 0) AS delivered_total
		FROM orders
		WHERE delivery_person_id = ?
	`, query.DeliveryPersonID().Bytes()).Row()

	if err := row.Scan(
		&response.TotalAssigned,
		&response.TotalDelivered,
		&response.ActiveDeliveries,
		&deliveredTotal,
	); err != nil {
		return GetDeliveryPersonStatsQueryResponse{}, err
	}

	response.TotalEarnings = kernel.RoundMoney(deliveredTotal * deliveryCommissionRate)
	if response.TotalAssigned > 0 {
		response.SuccessRate = kernel.RoundMoney(
			float64(response.TotalDelivered) / float64(response.TotalAssigned) * 100)
	}

	return response, nil
}
