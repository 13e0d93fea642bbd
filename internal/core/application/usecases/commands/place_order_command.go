package commands

import (
	"errors"

	"pichuka/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a checkout request: convert the customer's
// cart into an order and drain the cart.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customer string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place an order for the customer's
// current cart contents.
func NewPlaceOrderCommand(customer string) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCustomer(customer); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// Customer returns the checking-out customer identity.
func (c PlaceOrderCommand) Customer() string {
	return c.customer
}

func (c *PlaceOrderCommand) setCustomer(customer string) error {
	if customer == "" {
		return ErrCustomerIsRequired
	}

	c.customer = customer
	return nil
}
