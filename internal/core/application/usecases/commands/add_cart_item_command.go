package commands

import (
	"errors"

	"foodhub/internal/core/domain/model/cart"
	"foodhub/internal/core/domain/model/kernel"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand represents a request to put a menu item into a
// customer's cart. Adding the same item with the same customization again
// merges into the existing line instead of creating a duplicate.
//
// Example:
//
//	cmd, err := NewAddCartItemCommand(customerID, menuItemID, 2, "no onions")
//	if err != nil {
//	    return fmt.Errorf("invalid cart input: %w", err)
//	}
//
//	handler := NewAddCartItemCommandHandler(uowFactory, cartCounts, logger)
//	result, err := handler.Handle(ctx, cmd)
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.UUID
	menuItemID    kernel.UUID
	quantity      int
	customization string

	guard kernel.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add a menu item to the cart.
// Validates that both ids are valid and quantity is positive.
func NewAddCartItemCommand(
	customerID, menuItemID kernel.UUID, quantity int, customization string,
) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		customization: customization,
		guard:         kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setMenuItemID(menuItemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CustomerID returns the cart owner's id.
func (c AddCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// MenuItemID returns the id of the menu item being added.
func (c AddCartItemCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

// Quantity returns how many units to add.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

// Customization returns the free-text preparation notes. Lines merge only
// when the customization matches exactly.
func (c AddCartItemCommand) Customization() string {
	return c.customization
}

func (c *AddCartItemCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *AddCartItemCommand) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}

	c.menuItemID = menuItemID
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return cart.ErrInvalidQuantity
	}

	c.quantity = quantity
	return nil
}
