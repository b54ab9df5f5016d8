package ports

import (
	"context"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/menu"
	"foodhub/internal/core/domain/model/restaurant"
)

// CatalogRepository reads menu items for pricing and orderability checks.
// The catalog is owned by another context; this side only reads it.
type CatalogRepository interface {
	// GetMenuItem retrieves a single menu item.
	GetMenuItem(ctx context.Context, menuItemID kernel.UUID) (*menu.MenuItem, error)

	// GetMenuItems resolves a batch of ids into a map keyed by item id.
	// Ids that do not exist are simply absent from the result.
	GetMenuItems(ctx context.Context, menuItemIDs []kernel.UUID) (map[kernel.UUID]*menu.MenuItem, error)
}

// RestaurantRepository reads restaurant records for orderability and
// ownership checks.
type RestaurantRepository interface {
	Get(ctx context.Context, restaurantID kernel.UUID) (*restaurant.Restaurant, error)
}
