package commands

import (
	"context"
	"errors"

	"pichuka/internal/core/domain/model/cart"
	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/core/domain/model/order"
	"pichuka/internal/core/ports"
	"pichuka/internal/pkg/errs"
)

// PlaceOrderCommandHandler converts a customer's cart into a Pending order.
//
// The order and the drained cart are committed in one transaction, which gives
// checkout its two guarantees: a persistence failure can never leave the cart
// cleared without an order existing, and a repeated checkout finds the cart
// already empty and fails with ErrEmptyCart instead of duplicating the order.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

// NewPlaceOrderCommandHandler creates a handler for checkout.
func NewPlaceOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the checkout command and returns the new order's
// identifier. The total price is computed from the item snapshots inside the
// order aggregate; nothing client-supplied is trusted.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	aggregate, err := cartRepo.GetByCustomer(ctx, cmd.Customer())
	if err != nil {
		// A customer who never added anything has no cart row; for checkout
		// that is the same situation as an empty cart.
		if errors.Is(err, errs.ErrObjectNotFound) {
			return kernel.UUID{}, cart.ErrEmptyCart
		}
		return kernel.UUID{}, err
	}

	if aggregate.IsEmpty() {
		return kernel.UUID{}, cart.ErrEmptyCart
	}

	now := h.clock.Now()
	items, err := snapshotItems(aggregate.Items())
	if err != nil {
		return kernel.UUID{}, err
	}

	newOrder, err := order.NewOrder(kernel.NewUUID(), cmd.Customer(), items, now)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return kernel.UUID{}, err
	}

	aggregate.Clear(now)
	if err = cartRepo.Update(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return newOrder.ID(), nil
}

// snapshotItems freezes cart lines into order item snapshots.
func snapshotItems(cartItems []cart.Item) ([]order.Item, error) {
	items := make([]order.Item, 0, len(cartItems))
	for _, ci := range cartItems {
		item, err := order.NewItem(ci.DishID(), ci.Title(), ci.Price(), ci.Quantity(), ci.Image())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
