package commands

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
)

var ErrRemoveCartLineCommandIsNotConstructed = errors.New(
	"RemoveCartLineCommand must be created via NewRemoveCartLineCommand constructor",
)

// RemoveCartLineCommand deletes a single line from the customer's cart.
type RemoveCartLineCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	lineID     kernel.UUID

	guard kernel.ConstructorGuard
}

// NewRemoveCartLineCommand creates a command to remove a cart line.
func NewRemoveCartLineCommand(customerID, lineID kernel.UUID) (RemoveCartLineCommand, error) {
	if err := customerID.Validate(); err != nil {
		return RemoveCartLineCommand{}, err
	}
	if err := lineID.Validate(); err != nil {
		return RemoveCartLineCommand{}, err
	}

	return RemoveCartLineCommand{
		customerID: customerID,
		lineID:     lineID,
		guard:      kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartLineCommandIsNotConstructed)
}

// CustomerID returns the cart owner's id.
func (c RemoveCartLineCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// LineID returns the id of the line being removed.
func (c RemoveCartLineCommand) LineID() kernel.UUID {
	return c.lineID
}
