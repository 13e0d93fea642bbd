package commands

import (
	"context"

	"pichuka/internal/core/ports"
)

// RemoveCartItemCommandHandler handles removal of a dish from a customer's
// cart. A missing cart is reported as not found; a missing dish in an existing
// cart is simply a no-op.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	clock      ports.Clock
}

// NewRemoveCartItemCommandHandler creates a handler for cart removals.
func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory, clock ports.Clock) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the remove-from-cart command.
func (h *RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) error {
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

	cartRepo := uow.CartRepository()
	aggregate, err := cartRepo.GetByCustomer(ctx, cmd.Customer())
	if err != nil {
		return err
	}

	aggregate.RemoveItem(cmd.DishID(), h.clock.Now())

	if err = cartRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
