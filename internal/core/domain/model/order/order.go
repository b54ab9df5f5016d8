package order

import (
	"errors"
	"time"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/restaurant"
	"foodhub/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAccessDenied is returned when the acting party lacks authority to
	// drive the requested transition or mutation.
	ErrAccessDenied = errors.New("actor is not allowed to perform this operation on the order")

	// ErrOrderAlreadyAssigned is returned when a delivery person attempts
	// to claim an order that already has one. The persistence layer raises
	// the same error when a conditional assignment update matches no rows,
	// which is how concurrent claims are serialized.
	ErrOrderAlreadyAssigned = errors.New("order is already assigned to a delivery person")

	// ErrOrderNotRateable is returned when rating an order that is not
	// delivered or was already rated.
	ErrOrderNotRateable = errors.New("order cannot be rated")

	// ErrDuplicateOrderNumber is returned by the persistence layer when an
	// insert collides with an existing order number. Callers regenerate
	// the number and retry.
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)

// PaymentStatus values recorded on an order. Payments are recorded, never
// processed.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// DeliveryDetails is the contact and address block captured at checkout.
type DeliveryDetails struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	City         string
	Pincode      string
	Instructions string
}

// Validate checks the fields the platform requires for every delivery.
func (d DeliveryDetails) Validate() error {
	if d.Name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if d.Phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	if d.Address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	return nil
}

// Charges is the monetary breakdown of an order, computed once at checkout.
type Charges struct {
	TotalAmount    float64
	DeliveryFee    float64
	TaxAmount      float64
	DiscountAmount float64
}

// Item is one order line: a menu item reference with the quantity and the
// unit price captured at order-creation time. Items are created once and
// never mutated; later catalog price changes do not affect them.
type Item struct {
	id            kernel.UUID
	menuItemID    kernel.UUID
	quantity      int
	unitPrice     float64
	customization string
}

// NewItem creates an order item, copying the supplied unit price.
func NewItem(id, menuItemID kernel.UUID, quantity int, unitPrice float64, customization string) (Item, error) {
	if err := id.Validate(); err != nil {
		return Item{}, err
	}
	if err := menuItemID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidError("quantity")
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidError("unitPrice")
	}
	return Item{
		id:            id,
		menuItemID:    menuItemID,
		quantity:      quantity,
		unitPrice:     unitPrice,
		customization: customization,
	}, nil
}

// ID returns the item identifier.
func (i Item) ID() kernel.UUID { return i.id }

// MenuItemID returns the referenced menu item's identifier.
func (i Item) MenuItemID() kernel.UUID { return i.menuItemID }

// Quantity returns the ordered quantity.
func (i Item) Quantity() int { return i.quantity }

// UnitPrice returns the price captured at order time.
func (i Item) UnitPrice() float64 { return i.unitPrice }

// Customization returns the free-text customization for the item.
func (i Item) Customization() string { return i.customization }

// TotalPrice returns unitPrice x quantity rounded to money precision.
func (i Item) TotalPrice() float64 {
	return kernel.RoundMoney(i.unitPrice * float64(i.quantity))
}

// Order is the aggregate root of the order lifecycle. Exactly one
// restaurant per order: a multi-restaurant cart fans out into several
// orders at checkout. The order is owned by the customer who placed it and
// referenced by the restaurant and, once assigned, the delivery person.
type Order struct {
	id               kernel.UUID
	orderNumber      string
	customerID       kernel.UUID
	restaurantID     kernel.UUID
	deliveryPersonID *kernel.UUID

	charges       Charges
	status        Status
	paymentMethod string
	paymentStatus string
	delivery      DeliveryDetails
	items         []Item

	rating *int
	review string

	createdAt             time.Time
	estimatedDeliveryTime time.Time
	actualDeliveryTime    *time.Time
	confirmedAt           *time.Time
	preparedAt            *time.Time
	pickupAt              *time.Time
	deliveredAt           *time.Time
	cancelledAt           *time.Time

	guard kernel.ConstructorGuard
}

// NewOrderParams carries everything checkout computed for one
// restaurant-scoped order.
type NewOrderParams struct {
	ID                    kernel.UUID
	OrderNumber           string
	CustomerID            kernel.UUID
	RestaurantID          kernel.UUID
	Charges               Charges
	PaymentMethod         string
	Delivery              DeliveryDetails
	Items                 []Item
	CreatedAt             time.Time
	EstimatedDeliveryTime time.Time
}

// NewOrder creates an order in pending status with pending payment.
func NewOrder(p NewOrderParams) (*Order, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, err
	}
	if err := p.CustomerID.Validate(); err != nil {
		return nil, err
	}
	if err := p.RestaurantID.Validate(); err != nil {
		return nil, err
	}
	if !ValidateOrderNumber(p.OrderNumber) {
		return nil, errs.NewValueIsInvalidError("orderNumber")
	}
	if p.PaymentMethod == "" {
		return nil, errs.NewValueIsRequiredError("paymentMethod")
	}
	if err := p.Delivery.Validate(); err != nil {
		return nil, err
	}
	if len(p.Items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	return &Order{
		id:                    p.ID,
		orderNumber:           p.OrderNumber,
		customerID:            p.CustomerID,
		restaurantID:          p.RestaurantID,
		charges:               p.Charges,
		status:                StatusPending,
		paymentMethod:         p.PaymentMethod,
		paymentStatus:         PaymentStatusPending,
		delivery:              p.Delivery,
		items:                 p.Items,
		createdAt:             p.CreatedAt,
		estimatedDeliveryTime: p.EstimatedDeliveryTime,
		guard:                 kernel.NewConstructorGuard(),
	}, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	NewOrderParams
	DeliveryPersonID   *kernel.UUID
	Status             Status
	PaymentStatus      string
	Rating             *int
	Review             string
	ActualDeliveryTime *time.Time
	ConfirmedAt        *time.Time
	PreparedAt         *time.Time
	PickupAt           *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
}

// RestoreOrder reconstructs an order from persistence. The stored status
// must be a defined lifecycle state.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o, err := NewOrder(p.NewOrderParams)
	if err != nil {
		return nil, err
	}
	if err = p.Status.Validate(); err != nil {
		return nil, err
	}
	if p.DeliveryPersonID != nil {
		if err = p.DeliveryPersonID.Validate(); err != nil {
			return nil, err
		}
	}

	o.deliveryPersonID = p.DeliveryPersonID
	o.status = p.Status
	if p.PaymentStatus != "" {
		o.paymentStatus = p.PaymentStatus
	}
	o.rating = p.Rating
	o.review = p.Review
	o.actualDeliveryTime = p.ActualDeliveryTime
	o.confirmedAt = p.ConfirmedAt
	o.preparedAt = p.PreparedAt
	o.pickupAt = p.PickupAt
	o.deliveredAt = p.DeliveredAt
	o.cancelledAt = p.CancelledAt
	return o, nil
}

// Validate ensures the order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// RestaurantID returns the identifier of the fulfilling restaurant.
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }

// DeliveryPersonID returns the assigned delivery person, or nil before
// assignment.
func (o *Order) DeliveryPersonID() *kernel.UUID { return o.deliveryPersonID }

// Charges returns the monetary breakdown of the order.
func (o *Order) Charges() Charges { return o.charges }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentMethod returns the recorded payment method.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// PaymentStatus returns the recorded payment status.
func (o *Order) PaymentStatus() string { return o.paymentStatus }

// Delivery returns the delivery contact block.
func (o *Order) Delivery() DeliveryDetails { return o.delivery }

// Items returns the order's line items.
func (o *Order) Items() []Item { return o.items }

// Rating returns the customer rating, or nil when unrated.
func (o *Order) Rating() *int { return o.rating }

// Review returns the customer review text.
func (o *Order) Review() string { return o.review }

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// EstimatedDeliveryTime returns the delivery estimate computed at checkout.
func (o *Order) EstimatedDeliveryTime() time.Time { return o.estimatedDeliveryTime }

// ActualDeliveryTime returns the completion time, or nil until delivered.
func (o *Order) ActualDeliveryTime() *time.Time { return o.actualDeliveryTime }

// ConfirmedAt returns when the restaurant confirmed, or nil.
func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }

// PreparedAt returns when preparation started, or nil.
func (o *Order) PreparedAt() *time.Time { return o.preparedAt }

// PickupAt returns when the order was picked up, or nil.
func (o *Order) PickupAt() *time.Time { return o.pickupAt }

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// RefreshOrderNumber replaces the generated order number with a fresh one.
// Used before first persistence when the store reports a number collision;
// an order that already left pending status keeps its number forever.
func (o *Order) RefreshOrderNumber(now time.Time) error {
	if o.status != StatusPending {
		return errs.NewValueIsInvalidError("orderNumber")
	}
	o.orderNumber = GenerateOrderNumber(now)
	return nil
}

// TotalItems returns the summed quantity across line items.
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.items {
		total += item.quantity
	}
	return total
}

// CanBeCancelled reports whether the order is still early enough in the
// lifecycle to cancel.
func (o *Order) CanBeCancelled() bool {
	return o.status == StatusPending || o.status == StatusConfirmed
}

// CanBeRated reports whether the customer may rate the order.
func (o *Order) CanBeRated() bool {
	return o.status == StatusDelivered && o.rating == nil
}

// TransitionTo drives the lifecycle edge from the current status to target
// on behalf of actor. rest must be the order's restaurant when the target
// is an owner-driven status and may be nil otherwise.
//
// Errors: InvalidTransitionError when (current, target) is not an edge of
// the state machine, ErrAccessDenied when the actor may not drive it, and
// ErrOrderAlreadyAssigned when claiming an already-claimed order.
func (o *Order) TransitionTo(target Status, actor Actor, rest *restaurant.Restaurant, now time.Time) error {
	if !o.status.CanTransitionTo(target) {
		return NewInvalidTransitionError(o.status, target)
	}

	switch target {
	case StatusConfirmed:
		return o.confirm(actor, rest, now)
	case StatusPreparing:
		return o.startPreparing(actor, rest, now)
	case StatusReadyForPickup:
		return o.markReadyForPickup(actor, rest, now)
	case StatusOutForDelivery:
		return o.acceptForDelivery(actor, now)
	case StatusDelivered:
		return o.markDelivered(actor, now)
	case StatusCancelled:
		return o.cancel(actor, now)
	default:
		return NewInvalidTransitionError(o.status, target)
	}
}

// authorizeOwner verifies that actor is the restaurant owner of this
// order's restaurant.
func (o *Order) authorizeOwner(actor Actor, rest *restaurant.Restaurant) error {
	if actor.Role != RoleRestaurantOwner {
		return ErrAccessDenied
	}
	if rest == nil || !rest.ID().IsEqual(o.restaurantID) || !rest.IsOwnedBy(actor.ID) {
		return ErrAccessDenied
	}
	return nil
}

func (o *Order) confirm(actor Actor, rest *restaurant.Restaurant, now time.Time) error {
	if err := o.authorizeOwner(actor, rest); err != nil {
		return err
	}
	o.status = StatusConfirmed
	o.confirmedAt = &now
	return nil
}

func (o *Order) startPreparing(actor Actor, rest *restaurant.Restaurant, now time.Time) error {
	if err := o.authorizeOwner(actor, rest); err != nil {
		return err
	}
	o.status = StatusPreparing
	o.preparedAt = &now
	return nil
}

func (o *Order) markReadyForPickup(actor Actor, rest *restaurant.Restaurant, now time.Time) error {
	if err := o.authorizeOwner(actor, rest); err != nil {
		return err
	}
	o.status = StatusReadyForPickup
	o.pickupAt = &now
	return nil
}

// acceptForDelivery self-assigns the order to the acting delivery person.
// Assignment is exclusive: the in-memory check here is backed by a
// conditional update at the persistence layer so that concurrent claims
// resolve to exactly one winner.
func (o *Order) acceptForDelivery(actor Actor, now time.Time) error {
	if actor.Role != RoleDeliveryPerson {
		return ErrAccessDenied
	}
	if o.deliveryPersonID != nil {
		return ErrOrderAlreadyAssigned
	}
	id := actor.ID
	o.deliveryPersonID = &id
	o.status = StatusOutForDelivery
	o.pickupAt = &now
	return nil
}

func (o *Order) markDelivered(actor Actor, now time.Time) error {
	if actor.Role != RoleDeliveryPerson {
		return ErrAccessDenied
	}
	if o.deliveryPersonID == nil || !o.deliveryPersonID.IsEqual(actor.ID) {
		return ErrAccessDenied
	}
	o.status = StatusDelivered
	o.deliveredAt = &now
	o.actualDeliveryTime = &now
	return nil
}

func (o *Order) cancel(actor Actor, now time.Time) error {
	switch actor.Role {
	case RoleCustomer:
		if !o.customerID.IsEqual(actor.ID) {
			return ErrAccessDenied
		}
	case RoleAdmin:
		// admins may cancel any cancellable order
	default:
		return ErrAccessDenied
	}
	o.status = StatusCancelled
	o.cancelledAt = &now
	return nil
}

// Rate records the customer's rating and review on a delivered order.
// Only the owning customer may rate, exactly once, with a 1-5 rating.
func (o *Order) Rate(actor Actor, rating int, review string) error {
	if actor.Role != RoleCustomer || !o.customerID.IsEqual(actor.ID) {
		return ErrAccessDenied
	}
	if !o.CanBeRated() {
		return ErrOrderNotRateable
	}
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}
	o.rating = &rating
	o.review = review
	return nil
}
