// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. Orders and their line items are written together;
// line items are immutable once the order exists.
package orderrepo

import (
	"time"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The order number carries a unique index; checkout retries
// with a fresh number when an insert trips it. The partial courier feed
// queries lean on the status and delivery person indexes.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber      string     `gorm:"uniqueIndex"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID     uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryPersonID *uuid.UUID `gorm:"type:uuid;index"`

	TotalAmount    float64
	DeliveryFee    float64
	TaxAmount      float64
	DiscountAmount float64

	Status        string `gorm:"index"`
	PaymentMethod string
	PaymentStatus string

	DeliveryName         string
	DeliveryEmail        string
	DeliveryPhone        string
	DeliveryAddress      string
	DeliveryCity         string
	DeliveryPincode      string
	DeliveryInstructions string

	Rating *int
	Review string

	CreatedAt             time.Time
	EstimatedDeliveryTime time.Time
	ActualDeliveryTime    *time.Time
	ConfirmedAt           *time.Time
	PreparedAt            *time.Time
	PickupAt              *time.Time
	DeliveredAt           *time.Time
	CancelledAt           *time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one line item of a persisted order. The unit
// price is the effective price copied at checkout time.
type OrderItemDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID    uuid.UUID `gorm:"type:uuid"`
	Quantity      int
	UnitPrice     float64
	Customization string
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var deliveryPersonID *uuid.UUID
	if id := o.DeliveryPersonID(); id != nil {
		raw := id.Bytes()
		deliveryPersonID = &raw
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:            item.ID().Bytes(),
			OrderID:       o.ID().Bytes(),
			MenuItemID:    item.MenuItemID().Bytes(),
			Quantity:      item.Quantity(),
			UnitPrice:     item.UnitPrice(),
			Customization: item.Customization(),
		})
	}

	delivery := o.Delivery()
	charges := o.Charges()

	return OrderDTO{
		ID:               o.ID().Bytes(),
		OrderNumber:      o.OrderNumber(),
		CustomerID:       o.CustomerID().Bytes(),
		RestaurantID:     o.RestaurantID().Bytes(),
		DeliveryPersonID: deliveryPersonID,

		TotalAmount:    charges.TotalAmount,
		DeliveryFee:    charges.DeliveryFee,
		TaxAmount:      charges.TaxAmount,
		DiscountAmount: charges.DiscountAmount,

		Status:        o.Status().String(),
		PaymentMethod: o.PaymentMethod(),
		PaymentStatus: o.PaymentStatus(),

		DeliveryName:         delivery.Name,
		DeliveryEmail:        delivery.Email,
		DeliveryPhone:        delivery.Phone,
		DeliveryAddress:      delivery.Address,
		DeliveryCity:         delivery.City,
		DeliveryPincode:      delivery.Pincode,
		DeliveryInstructions: delivery.Instructions,

		Rating: o.Rating(),
		Review: o.Review(),

		CreatedAt:             o.CreatedAt(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		ActualDeliveryTime:    o.ActualDeliveryTime(),
		ConfirmedAt:           o.ConfirmedAt(),
		PreparedAt:            o.PreparedAt(),
		PickupAt:              o.PickupAt(),
		DeliveredAt:           o.DeliveredAt(),
		CancelledAt:           o.CancelledAt(),

		Items: items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var deliveryPersonID *kernel.UUID
	if dto.DeliveryPersonID != nil {
		dpID, dpErr := kernel.UUIDFromBytes((*dto.DeliveryPersonID)[:])
		if dpErr != nil {
			return nil, dpErr
		}
		deliveryPersonID = &dpID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		menuItemID, itemErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(
			itemID, menuItemID, itemDTO.Quantity, itemDTO.UnitPrice, itemDTO.Customization)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		NewOrderParams: order.NewOrderParams{
			ID:           id,
			OrderNumber:  dto.OrderNumber,
			CustomerID:   customerID,
			RestaurantID: restaurantID,
			Charges: order.Charges{
				TotalAmount:    dto.TotalAmount,
				DeliveryFee:    dto.DeliveryFee,
				TaxAmount:      dto.TaxAmount,
				DiscountAmount: dto.DiscountAmount,
			},
			PaymentMethod: dto.PaymentMethod,
			Delivery: order.DeliveryDetails{
				Name:         dto.DeliveryName,
				Email:        dto.DeliveryEmail,
				Phone:        dto.DeliveryPhone,
				Address:      dto.DeliveryAddress,
				City:         dto.DeliveryCity,
				Pincode:      dto.DeliveryPincode,
				Instructions: dto.DeliveryInstructions,
			},
			Items:                 items,
			CreatedAt:             dto.CreatedAt,
			EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		},
		DeliveryPersonID:   deliveryPersonID,
		Status:             status,
		PaymentStatus:      dto.PaymentStatus,
		Rating:             dto.Rating,
		Review:             dto.Review,
		ActualDeliveryTime: dto.ActualDeliveryTime,
		ConfirmedAt:        dto.ConfirmedAt,
		PreparedAt:         dto.PreparedAt,
		PickupAt:           dto.PickupAt,
		DeliveredAt:        dto.DeliveredAt,
		CancelledAt:        dto.CancelledAt,
	})
}
