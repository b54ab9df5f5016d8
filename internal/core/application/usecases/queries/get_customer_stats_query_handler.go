package queries

import (
	"context"
	"database/sql"
	"errors"

	"foodhub/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetCustomerStatsQueryHandler aggregates a customer's order history.
type GetCustomerStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerStatsQueryHandler creates a handler for customer stats.
func NewGetCustomerStatsQueryHandler(db *gorm.DB) GetCustomerStatsQueryHandler {
	return GetCustomerStatsQueryHandler{db: db}
}

// Handle executes the aggregation. The favorite cuisine ranks cuisines by
// order count with an alphabetical tie-break, so the result is stable
// across runs.
func (h GetCustomerStatsQueryHandler) Handle(
	ctx context.Context, query GetCustomerStatsQuery,
) (GetCustomerStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCustomerStatsQueryResponse{}, err
	}

	var response GetCustomerStatsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'delivered'), 0) AS total_spent
		FROM orders
		WHERE customer_id = ?
	`, query.CustomerID().Bytes()).Row()

	if err := row.Scan(&response.TotalOrders, &response.TotalSpent); err != nil {
		return GetCustomerStatsQueryResponse{}, err
	}
	response.TotalSpent = kernel.RoundMoney(response.TotalSpent)

	row = h.db.WithContext(ctx).Raw(`
		SELECT r.cuisine
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.customer_id = ?
		GROUP BY r.cuisine
		ORDER BY COUNT(*) DESC, r.cuisine ASC
		LIMIT 1
	`, query.CustomerID().Bytes()).Row()

	if err := row.Scan(&response.FavoriteCuisine); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return response, nil
		}
		return GetCustomerStatsQueryResponse{}, err
	}

	return response, nil
}
