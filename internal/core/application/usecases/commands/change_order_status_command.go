package commands

import (
	"errors"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/core/domain/model/order"
	"pichuka/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request by a staff member to move an
// order to a new lifecycle status. Delivery is excluded: marking an order
// delivered goes through MarkOrderDeliveredCommand, which also records who
// handed the order over.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   order.Actor
	notes   string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to move an order to target.
// Notes are optional free text attached to the order when non-empty.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID, target order.Status, actor order.Actor, notes string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to change.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// Actor returns the staff member requesting the change.
func (c ChangeOrderStatusCommand) Actor() order.Actor {
	return c.actor
}

// Notes returns the optional free-text notes.
func (c ChangeOrderStatusCommand) Notes() string {
	return c.notes
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
