package commands

import (
	"context"

	"pichuka/internal/core/domain/services"
	"pichuka/internal/core/ports"
)

// ChangeOrderStatusCommandHandler drives the order status state machine for
// every transition except delivery. Authorization against the transition
// policy happens here, with the order's current status as the source state;
// the aggregate then enforces the role-independent rules.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.TransitionPolicy
	clock      ports.Clock
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory, policy services.TransitionPolicy, clock ports.Clock,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

// Handle processes the status change command.
//
// The update is version-checked by the repository, so two staff members racing
// on the same order cannot both win: the loser's stale write fails with a
// version conflict instead of silently overwriting the history.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.Authorize(cmd.Actor(), aggregate.Status(), cmd.Target()); err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(cmd.Target(), cmd.Actor(), h.clock.Now()); err != nil {
		return err
	}
	aggregate.AttachNotes(cmd.Notes())

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
