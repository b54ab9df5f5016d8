package queries

import (
	"context"

	"foodhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCartQueryHandler reads cart contents joined with the catalog.
// Lines are grouped by restaurant in the order the restaurants first
// appeared in the cart, matching how checkout partitions them.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart content queries.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle executes the cart query. Prices reflect the catalog's current
// effective price, so a discount applied after the add shows up here.
func (h GetCartQueryHandler) Handle(
	ctx context.Context, query GetCartQuery,
) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			cl.id,
			cl.menu_item_id,
			mi.name,
			cl.quantity,
			cl.customization,
			CASE
				WHEN mi.discounted_price IS NOT NULL AND mi.discounted_price < mi.base_price
				THEN mi.discounted_price
				ELSE mi.base_price
			END AS unit_price,
			mi.restaurant_id,
			r.name AS restaurant_name
		FROM cart_lines cl
		JOIN menu_items mi ON mi.id = cl.menu_item_id
		JOIN restaurants r ON r.id = mi.restaurant_id
		WHERE cl.customer_id = ?
		ORDER BY cl.created_at, cl.id
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	var response GetCartQueryResponse
	groupIndex := make(map[kernel.UUID]int)

	for rows.Next() {
		var (
			id, menuItemID, restaurantID uuid.UUID
			name, restaurantName         string
			quantity                     int
			customization                string
			unitPrice                    float64
		)

		if err = rows.Scan(
			&id, &menuItemID, &name, &quantity, &customization,
			&unitPrice, &restaurantID, &restaurantName,
		); err != nil {
			return GetCartQueryResponse{}, err
		}

		lineID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}
		itemID, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}
		restID, idErr := kernel.UUIDFromBytes(restaurantID[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}

		line := GetCartQueryLine{
			ID:            lineID,
			MenuItemID:    itemID,
			MenuItemName:  name,
			Quantity:      quantity,
			Customization: customization,
			UnitPrice:     unitPrice,
			TotalPrice:    kernel.RoundMoney(unitPrice * float64(quantity)),
		}

		idx, seen := groupIndex[restID]
		if !seen {
			idx = len(response.Groups)
			groupIndex[restID] = idx
			response.Groups = append(response.Groups, GetCartQueryRestaurantGroup{
				RestaurantID:   restID,
				RestaurantName: restaurantName,
			})
		}

		response.Groups[idx].Lines = append(response.Groups[idx].Lines, line)
		response.Groups[idx].Subtotal = kernel.RoundMoney(
			response.Groups[idx].Subtotal + line.TotalPrice)
		response.GrandTotal = kernel.RoundMoney(response.GrandTotal + line.TotalPrice)
		response.LineCount++
	}

	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	return response, nil
}
