package commands

import (
	"context"

	"pichuka/internal/core/domain/model/order"
	"pichuka/internal/core/domain/services"
	"pichuka/internal/core/ports"
)

// MarkOrderDeliveredCommandHandler confirms order hand-off. It is the only
// path to the Delivered status, which is what guarantees every delivered order
// carries a hand-off record.
//
// The precondition is checked before authorization, so the two failure modes
// stay distinct: a kitchen actor on a Ready order gets a forbidden-transition
// error, while any actor on a non-Ready order gets ErrOrderNotReady.
type MarkOrderDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.TransitionPolicy
	clock      ports.Clock
}

// NewMarkOrderDeliveredCommandHandler creates a handler for delivery confirmation.
func NewMarkOrderDeliveredCommandHandler(
	uowFactory OrderUoWFactory, policy services.TransitionPolicy, clock ports.Clock,
) MarkOrderDeliveredCommandHandler {
	return MarkOrderDeliveredCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

// Handle processes the delivery confirmation command.
func (h *MarkOrderDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkOrderDeliveredCommand) error {
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

	if err = aggregate.ValidateMarkDelivered(); err != nil {
		return err
	}
	if err = h.policy.Authorize(cmd.Actor(), aggregate.Status(), order.Delivered); err != nil {
		return err
	}

	if err = aggregate.MarkDelivered(cmd.Actor(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
