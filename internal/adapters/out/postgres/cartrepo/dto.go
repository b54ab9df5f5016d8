// Package cartrepo persists cart lines. The table carries a composite
// unique index over (customer, menu item, customization) so that adding
// the same item twice merges at the database level instead of racing.
package cartrepo

import (
	"time"

	"foodhub/internal/core/domain/model/cart"
	"foodhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartLineDTO represents the database structure for cart lines.
type CartLineDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_cart_customer_item_customization"`
	MenuItemID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_customer_item_customization"`
	Quantity      int
	Customization string `gorm:"uniqueIndex:idx_cart_customer_item_customization"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default naming to use "cart_lines".
func (CartLineDTO) TableName() string {
	return "cart_lines"
}

func fromDomain(line *cart.CartLine) CartLineDTO {
	return CartLineDTO{
		ID:            line.ID().Bytes(),
		CustomerID:    line.CustomerID().Bytes(),
		MenuItemID:    line.MenuItemID().Bytes(),
		Quantity:      line.Quantity(),
		Customization: line.Customization(),
		CreatedAt:     line.CreatedAt(),
		UpdatedAt:     line.UpdatedAt(),
	}
}

func toDomain(dto CartLineDTO) (*cart.CartLine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}

	return cart.RestoreCartLine(
		id, customerID, menuItemID, dto.Quantity, dto.Customization,
		dto.CreatedAt, dto.UpdatedAt)
}
