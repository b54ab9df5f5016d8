package commands

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/order"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand records a customer's rating and review of a delivered
// order. Only the ordering customer may rate, and only once; the aggregate
// enforces both rules.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	rating  int
	review  string

	guard kernel.ConstructorGuard
}

// NewRateOrderCommand creates a rating command. Rating bounds are checked
// by the aggregate when the command is applied.
func NewRateOrderCommand(
	orderID kernel.UUID, actor order.Actor, rating int, review string,
) (RateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RateOrderCommand{}, err
	}

	validated, err := order.NewActor(actor.ID, actor.Role)
	if err != nil {
		return RateOrderCommand{}, err
	}

	return RateOrderCommand{
		orderID: orderID,
		actor:   validated,
		rating:  rating,
		review:  review,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order being rated.
func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the identity submitting the rating.
func (c RateOrderCommand) Actor() order.Actor {
	return c.actor
}

// Rating returns the submitted star rating.
func (c RateOrderCommand) Rating() int {
	return c.rating
}

// Review returns the optional review text.
func (c RateOrderCommand) Review() string {
	return c.review
}
