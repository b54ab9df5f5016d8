package ports

import (
	"context"
	"time"
)

// OrderPlacedEvent is emitted once per created order after the checkout
// transaction commits. A multi-restaurant checkout emits one event per
// order, all sharing the same CheckoutID.
type OrderPlacedEvent struct {
	OrderID      string    `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	CheckoutID   string    `json:"checkout_id"`
	CustomerID   string    `json:"customer_id"`
	RestaurantID string    `json:"restaurant_id"`
	TotalAmount  float64   `json:"total_amount"`
	ItemCount    int       `json:"item_count"`
	PlacedAt     time.Time `json:"placed_at"`
}

// OrderStatusChangedEvent is emitted after a lifecycle transition commits.
type OrderStatusChangedEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	ActorID     string    `json:"actor_id"`
	ActorRole   string    `json:"actor_role"`
	ChangedAt   time.Time `json:"changed_at"`
}

// OrderEventPublisher delivers order events to downstream consumers
// (notifications, analytics). Publishing happens after commit; a publish
// failure must not fail the command that produced the event.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}
