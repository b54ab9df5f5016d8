// Package menurepo reads the menu item catalog. This context treats the
// catalog as read-only reference data; writes belong to the catalog
// management context.
package menurepo

import (
	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

// MenuItemDTO represents the database structure of catalog items.
type MenuItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID    uuid.UUID `gorm:"type:uuid;index"`
	Name            string
	Category        string
	BasePrice       float64
	DiscountedPrice *float64
	IsAvailable     bool
}

// TableName overrides GORM's default naming to use "menu_items".
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func toDomain(dto MenuItemDTO) (*menu.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	return menu.NewMenuItem(
		id, restaurantID, dto.Name, dto.Category,
		dto.BasePrice, dto.DiscountedPrice, dto.IsAvailable)
}
