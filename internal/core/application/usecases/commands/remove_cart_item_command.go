package commands

import (
	"errors"
	"fmt"

	"pichuka/internal/pkg/errs"
	"pichuka/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

// RemoveCartItemCommand represents a request to drop one dish from a
// customer's cart. Removing a dish that is not in the cart succeeds silently.
type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	customer string
	dishID   int

	guard guard.ConstructorGuard
}

// NewRemoveCartItemCommand creates a command to remove a dish from the cart.
func NewRemoveCartItemCommand(customer string, dishID int) (RemoveCartItemCommand, error) {
	cmd := RemoveCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setDishID(dishID),
	); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

// Customer returns the owning customer identity.
func (c RemoveCartItemCommand) Customer() string {
	return c.customer
}

// DishID returns the dish to remove.
func (c RemoveCartItemCommand) DishID() int {
	return c.dishID
}

func (c *RemoveCartItemCommand) setCustomer(customer string) error {
	if customer == "" {
		return ErrCustomerIsRequired
	}

	c.customer = customer
	return nil
}

func (c *RemoveCartItemCommand) setDishID(dishID int) error {
	if dishID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dishId", fmt.Errorf("%d is not a valid dish id", dishID))
	}

	c.dishID = dishID
	return nil
}
