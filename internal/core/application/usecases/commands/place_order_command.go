package commands

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/order"
	"foodhub/internal/pkg/errs"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)

	// ErrEmptyCart is returned when checkout is attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// PlaceOrderCommand represents a checkout request. The customer's whole
// cart is converted into one order per restaurant; all orders are created
// and the cart is cleared in a single transaction.
//
// Example:
//
//	delivery := order.DeliveryDetails{Name: "Ada", Phone: "555-0100", Address: "12 Hill Rd"}
//	cmd, err := NewPlaceOrderCommand(customerID, "card", delivery)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout input: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, splitter, publisher, cartCounts, logger)
//	orders, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.UUID
	paymentMethod string
	delivery      order.DeliveryDetails

	guard kernel.ConstructorGuard
}

// NewPlaceOrderCommand creates a checkout command.
// Validates the customer id, the payment method, and the delivery details.
func NewPlaceOrderCommand(
	customerID kernel.UUID, paymentMethod string, delivery order.DeliveryDetails,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setDelivery(delivery),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// CustomerID returns the checking-out customer's id.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// PaymentMethod returns the chosen payment method.
func (c PlaceOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// Delivery returns the delivery contact details, shared by every order
// created from this checkout.
func (c PlaceOrderCommand) Delivery() order.DeliveryDetails {
	return c.delivery
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}

	c.paymentMethod = paymentMethod
	return nil
}

func (c *PlaceOrderCommand) setDelivery(delivery order.DeliveryDetails) error {
	if err := delivery.Validate(); err != nil {
		return err
	}

	c.delivery = delivery
	return nil
}
