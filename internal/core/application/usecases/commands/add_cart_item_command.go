package commands

import (
	"errors"

	"pichuka/internal/core/domain/model/cart"
	"pichuka/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrCustomerIsRequired = errors.New("customer is required")
)

// AddCartItemCommand represents a request to put one dish into a customer's
// cart. The cart is created on the first add; a dish already in the cart has
// its quantity incremented instead of gaining a second line.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customer string
	item     cart.Item

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add an item to the customer's cart.
func NewAddCartItemCommand(customer string, item cart.Item) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setItem(item),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// Customer returns the owning customer identity.
func (c AddCartItemCommand) Customer() string {
	return c.customer
}

// Item returns the item to add.
func (c AddCartItemCommand) Item() cart.Item {
	return c.item
}

func (c *AddCartItemCommand) setCustomer(customer string) error {
	if customer == "" {
		return ErrCustomerIsRequired
	}

	c.customer = customer
	return nil
}

func (c *AddCartItemCommand) setItem(item cart.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	c.item = item
	return nil
}
