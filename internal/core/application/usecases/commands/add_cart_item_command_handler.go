package commands

import (
	"context"
	"errors"

	"pichuka/internal/core/domain/model/cart"
	"pichuka/internal/core/ports"
	"pichuka/internal/pkg/errs"
)

// AddCartItemCommandHandler handles the business logic for adding items to a
// customer's cart. Creates the cart lazily on the first add and relies on the
// aggregate to coalesce repeated dishes into a single line.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	clock      ports.Clock
}

// NewAddCartItemCommandHandler creates a handler for cart additions.
func NewAddCartItemCommandHandler(uowFactory CartUoWFactory, clock ports.Clock) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the add-to-cart command. The read-modify-write runs inside
// a transaction and a version-checked update, so two concurrent adds for the
// same customer cannot lose the coalescing increment.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
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

	now := h.clock.Now()
	cartRepo := uow.CartRepository()

	aggregate, err := cartRepo.GetByCustomer(ctx, cmd.Customer())
	switch {
	case err == nil:
		if err = aggregate.AddItem(cmd.Item(), now); err != nil {
			return err
		}
		if err = cartRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		aggregate, err = cart.NewCart(cmd.Customer(), now)
		if err != nil {
			return err
		}
		if err = aggregate.AddItem(cmd.Item(), now); err != nil {
			return err
		}
		if err = cartRepo.Add(ctx, aggregate); err != nil {
			return err
		}
	default:
		return err
	}

	return uow.Commit(ctx)
}
