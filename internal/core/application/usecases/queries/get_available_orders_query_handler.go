package queries

import (
	"context"

	"foodhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler lists unassigned pickup-ready orders.
// Oldest ready first, so orders do not starve while couriers cherry-pick.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for the courier feed.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the feed query.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context, query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	available := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			r.name,
			o.delivery_address,
			o.delivery_city,
			o.total_amount,
			o.pickup_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.status = 'ready_for_pickup' AND o.delivery_person_id IS NULL
		ORDER BY o.pickup_at, o.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   uuid.UUID
			resp GetAvailableOrdersQueryResponse
		)

		if err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.RestaurantName,
			&resp.DeliveryAddress,
			&resp.DeliveryCity,
			&resp.TotalAmount,
			&resp.ReadySince,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		available = append(available, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return available, nil
}
