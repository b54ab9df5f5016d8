package commands

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
)

var ErrUpdateCartQuantityCommandIsNotConstructed = errors.New(
	"UpdateCartQuantityCommand must be created via NewUpdateCartQuantityCommand constructor",
)

// UpdateCartQuantityCommand sets the quantity of an existing cart line.
// A quantity of zero or less removes the line.
type UpdateCartQuantityCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	lineID     kernel.UUID
	quantity   int

	guard kernel.ConstructorGuard
}

// NewUpdateCartQuantityCommand creates a command to change a line's quantity.
func NewUpdateCartQuantityCommand(
	customerID, lineID kernel.UUID, quantity int,
) (UpdateCartQuantityCommand, error) {
	cmd := UpdateCartQuantityCommand{
		quantity: quantity,
		guard:    kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setLineID(lineID),
	); err != nil {
		return UpdateCartQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCartQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartQuantityCommandIsNotConstructed)
}

// CustomerID returns the cart owner's id.
func (c UpdateCartQuantityCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// LineID returns the id of the cart line being changed.
func (c UpdateCartQuantityCommand) LineID() kernel.UUID {
	return c.lineID
}

// Quantity returns the requested quantity. Non-positive means remove.
func (c UpdateCartQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateCartQuantityCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *UpdateCartQuantityCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}
