package queries

import (
	"context"

	"foodhub/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetGlobalTotalsQueryHandler aggregates platform-wide order totals.
type GetGlobalTotalsQueryHandler struct {
	db *gorm.DB
}

// NewGetGlobalTotalsQueryHandler creates a handler for platform totals.
func NewGetGlobalTotalsQueryHandler(db *gorm.DB) GetGlobalTotalsQueryHandler {
	return GetGlobalTotalsQueryHandler{db: db}
}

// Handle executes the aggregation.
func (h GetGlobalTotalsQueryHandler) Handle(
	ctx context.Context, query GetGlobalTotalsQuery,
) (GetGlobalTotalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetGlobalTotalsQueryResponse{}, err
	}

	var response GetGlobalTotalsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COUNT(*) FILTER (WHERE status = 'delivered') AS delivered_orders,
			COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed', 'preparing')) AS in_flight_orders,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'delivered'), 0) AS total_revenue,
			COUNT(DISTINCT customer_id) AS customers_served
		FROM orders
	`).Row()

	if err := row.Scan(
		&response.TotalOrders,
		&response.DeliveredOrders,
		&response.InFlightOrders,
		&response.TotalRevenue,
		&response.CustomersServed,
	); err != nil {
		return GetGlobalTotalsQueryResponse{}, err
	}

	response.TotalRevenue = kernel.RoundMoney(response.TotalRevenue)

	return response, nil
}
