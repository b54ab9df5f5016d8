// Package services contains stateless domain services that coordinate
// several aggregates. The checkout splitter is the core of order placement:
// it fans a multi-restaurant cart out into one priced order per restaurant.
package services

import (
	"time"

	"foodhub/internal/core/domain/model/cart"
	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/menu"
	"foodhub/internal/core/domain/model/order"
	"foodhub/internal/pkg/errs"
)

// PricingPolicy carries the deployment's checkout pricing configuration.
type PricingPolicy struct {
	// TaxRate is the fraction of the subtotal charged as tax (0.05 = 5%).
	TaxRate float64

	// DeliveryFee is the flat per-order delivery fee.
	DeliveryFee float64

	// DeliveryEstimate is added to the checkout time to produce the
	// estimated delivery timestamp.
	DeliveryEstimate time.Duration
}

// CheckoutSplitter converts a customer's cart lines into restaurant-scoped
// orders. It is a pure domain service: it reads the supplied lines and
// catalog snapshot and produces new Order aggregates, leaving persistence
// and atomicity to the caller's unit of work.
//
// Splitting rules:
//   - Lines are partitioned by the menu item's restaurant, preserving line
//     order within each group and group encounter order across groups.
//   - Per order: subtotal = sum of effective price x quantity; tax =
//     subtotal x tax rate; total = subtotal + tax + delivery fee. All
//     derived amounts are rounded to money precision.
//   - Each order item copies the menu item's current effective price, so
//     later catalog price changes never affect placed orders.
type CheckoutSplitter struct {
	policy PricingPolicy
}

// NewCheckoutSplitter creates a splitter with the given pricing policy.
func NewCheckoutSplitter(policy PricingPolicy) CheckoutSplitter {
	return CheckoutSplitter{policy: policy}
}

// CheckoutInput is everything Split needs to price and build the orders.
type CheckoutInput struct {
	CustomerID    kernel.UUID
	Lines         []*cart.CartLine
	Catalog       map[kernel.UUID]*menu.MenuItem
	PaymentMethod string
	Delivery      order.DeliveryDetails
	Now           time.Time
}

// Split builds one pending Order per distinct restaurant represented in
// the cart. The catalog map must contain every menu item referenced by the
// lines; a missing item fails the whole split.
//
// Split never persists anything: the caller creates all returned orders
// plus the cart clear inside a single transaction, so either every order
// exists or none does.
func (s CheckoutSplitter) Split(input CheckoutInput) ([]*order.Order, error) {
	if err := input.CustomerID.Validate(); err != nil {
		return nil, err
	}
	if len(input.Lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}
	if err := input.Delivery.Validate(); err != nil {
		return nil, err
	}

	groups, groupOrder, err := s.partitionByRestaurant(input.Lines, input.Catalog)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(groupOrder))
	for _, restaurantID := range groupOrder {
		lines := groups[restaurantID]

		items := make([]order.Item, 0, len(lines))
		subtotal := 0.0
		for _, line := range lines {
			item := input.Catalog[line.MenuItemID()]
			unitPrice := item.EffectivePrice()
			subtotal += unitPrice * float64(line.Quantity())

			orderItem, itemErr := order.NewItem(
				kernel.NewUUID(), item.ID(), line.Quantity(), unitPrice, line.Customization())
			if itemErr != nil {
				return nil, itemErr
			}
			items = append(items, orderItem)
		}

		subtotal = kernel.RoundMoney(subtotal)
		tax := kernel.RoundMoney(subtotal * s.policy.TaxRate)
		total := kernel.RoundMoney(subtotal + tax + s.policy.DeliveryFee)

		o, orderErr := order.NewOrder(order.NewOrderParams{
			ID:           kernel.NewUUID(),
			OrderNumber:  order.GenerateOrderNumber(input.Now),
			CustomerID:   input.CustomerID,
			RestaurantID: restaurantID,
			Charges: order.Charges{
				TotalAmount: total,
				DeliveryFee: s.policy.DeliveryFee,
				TaxAmount:   tax,
			},
			PaymentMethod:         input.PaymentMethod,
			Delivery:              input.Delivery,
			Items:                 items,
			CreatedAt:             input.Now,
			EstimatedDeliveryTime: input.Now.Add(s.policy.DeliveryEstimate),
		})
		if orderErr != nil {
			return nil, orderErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// partitionByRestaurant groups lines by the owning restaurant of each
// line's menu item, keeping deterministic ordering.
func (s CheckoutSplitter) partitionByRestaurant(
	lines []*cart.CartLine,
	catalog map[kernel.UUID]*menu.MenuItem,
) (map[kernel.UUID][]*cart.CartLine, []kernel.UUID, error) {
	groups := make(map[kernel.UUID][]*cart.CartLine)
	groupOrder := make([]kernel.UUID, 0)

	for _, line := range lines {
		item, ok := catalog[line.MenuItemID()]
		if !ok {
			return nil, nil, errs.NewObjectNotFoundError("menuItem", line.MenuItemID().String())
		}

		restaurantID := item.RestaurantID()
		if _, seen := groups[restaurantID]; !seen {
			groupOrder = append(groupOrder, restaurantID)
		}
		groups[restaurantID] = append(groups[restaurantID], line)
	}

	return groups, groupOrder, nil
}
