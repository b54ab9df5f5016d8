// Package restaurantrepo reads restaurant records for orderability and
// ownership checks.
package restaurantrepo

import (
	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure of restaurants.
type RestaurantDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID `gorm:"type:uuid;index"`
	Name       string
	Cuisine    string
	IsActive   bool
	IsVerified bool
}

// TableName overrides GORM's default naming to use "restaurants".
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return restaurant.NewRestaurant(
		id, ownerID, dto.Name, dto.Cuisine, dto.IsActive, dto.IsVerified)
}
