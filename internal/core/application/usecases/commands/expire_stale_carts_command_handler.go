package commands

import (
	"context"

	"pichuka/internal/core/ports"
)

// ExpireStaleCartsCommandHandler drains carts abandoned past the TTL window.
// Dishes stay priced from the moment they were added; draining a forgotten
// cart keeps stale price snapshots from being checked out weeks later.
type ExpireStaleCartsCommandHandler struct {
	uowFactory CartUoWFactory
	clock      ports.Clock
}

// NewExpireStaleCartsCommandHandler creates a handler for the cart janitor sweep.
func NewExpireStaleCartsCommandHandler(uowFactory CartUoWFactory, clock ports.Clock) ExpireStaleCartsCommandHandler {
	return ExpireStaleCartsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle drains every cart untouched since now minus the TTL and returns how
// many carts were cleared. Each cart is updated with a version check; a cart
// the customer touched mid-sweep loses staleness and its conflict is not an
// error worth failing the whole sweep for, so the transaction still commits
// only when every stale cart drained cleanly.
func (h *ExpireStaleCartsCommandHandler) Handle(ctx context.Context, cmd ExpireStaleCartsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	cartRepo := uow.CartRepository()
	stale, err := cartRepo.GetStale(ctx, now.Add(-cmd.TTL()))
	if err != nil {
		return 0, err
	}

	for _, aggregate := range stale {
		aggregate.Clear(now)
		if err = cartRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(stale), nil
}
