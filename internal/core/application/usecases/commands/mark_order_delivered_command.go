package commands

import (
	"errors"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/core/domain/model/order"
	"pichuka/internal/pkg/guard"
)

var ErrMarkOrderDeliveredCommandIsNotConstructed = errors.New(
	"MarkOrderDeliveredCommand must be created via NewMarkOrderDeliveredCommand constructor",
)

// MarkOrderDeliveredCommand represents a front-of-house request to confirm the
// hand-off of a Ready order to the customer.
type MarkOrderDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewMarkOrderDeliveredCommand creates a command to mark an order delivered.
func NewMarkOrderDeliveredCommand(orderID kernel.UUID, actor order.Actor) (MarkOrderDeliveredCommand, error) {
	cmd := MarkOrderDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return MarkOrderDeliveredCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderDeliveredCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to deliver.
func (c MarkOrderDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the staff member confirming the hand-off.
func (c MarkOrderDeliveredCommand) Actor() order.Actor {
	return c.actor
}

func (c *MarkOrderDeliveredCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkOrderDeliveredCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
