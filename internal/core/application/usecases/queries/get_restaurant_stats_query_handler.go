package queries

import (
	"context"

	"foodhub/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetRestaurantStatsQueryHandler aggregates a restaurant's orders.
type GetRestaurantStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetRestaurantStatsQueryHandler creates a handler for restaurant stats.
func NewGetRestaurantStatsQueryHandler(db *gorm.DB) GetRestaurantStatsQueryHandler {
	return GetRestaurantStatsQueryHandler{db: db}
}

// Handle executes the aggregation in a single pass over the orders table.
func (h GetRestaurantStatsQueryHandler) Handle(
	ctx context.Context, query GetRestaurantStatsQuery,
) (GetRestaurantStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRestaurantStatsQueryResponse{}, err
	}

	var response GetRestaurantStatsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed', 'preparing')) AS pending_orders,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'delivered'), 0) AS total_revenue,
			COALESCE(AVG(rating) FILTER (WHERE rating IS NOT NULL), 0) AS average_rating,
			COUNT(*) FILTER (WHERE rating IS NOT NULL) AS rated_orders
		FROM orders
		WHERE restaurant_id = ?
	`, query.RestaurantID().Bytes()).Row()

	if err := row.Scan(
		&response.TotalOrders,
		&response.PendingOrders,
		&response.TotalRevenue,
		&response.AverageRating,
		&response.RatedOrders,
	); err != nil {
		return GetRestaurantStatsQueryResponse{}, err
	}

	response.TotalRevenue = kernel.RoundMoney(response.TotalRevenue)

	return response, nil
}
