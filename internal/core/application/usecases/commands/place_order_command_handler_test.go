package commands_test

import (
	"errors"
	"testing"

	"pichuka/internal/core/application/usecases/commands"
	"pichuka/internal/core/domain/model/cart"
	"pichuka/internal/core/domain/model/order"
	"pichuka/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func checkoutMocks(t *testing.T, existing *cart.Cart) (*MockCartRepository, *MockOrderRepository, *MockUoW, *MockUoWFactory) {
	t.Helper()
	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", mock.Anything, existing.Customer()).Return(existing, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		cartRepo.On("Update", mock.Anything, existing).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	return cartRepo, orderRepo, uow, factory
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPlaceOrderCommand("alice@example.com")

	existing := customerCart(t, "alice@example.com")
	require.NoError(t, existing.AddItem(shawarmaItem(t), existing.UpdatedAt()))

	cartRepo, orderRepo, uow, factory := checkoutMocks(t, existing)

	h := commands.NewPlaceOrderCommandHandler(factory, testClock())
	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, id.Validate())

	placed := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	assert.Equal(t, id, placed.ID())
	assert.Equal(t, "alice@example.com", placed.Customer())
	assert.Equal(t, order.Pending, placed.Status())
	assert.True(t, placed.TotalPrice().Equal(decimal.NewFromInt(500))) // 250 x 2
	assert.Empty(t, placed.History())
	assert.Equal(t, testClock().Now(), placed.OrderDate())

	// the cart drains in the same transaction
	assert.True(t, existing.IsEmpty())
	cartRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_EmptyCart(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPlaceOrderCommand("alice@example.com")

	existing := customerCart(t, "alice@example.com")

	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", mock.Anything, "alice@example.com").Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, testClock())
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, cart.ErrEmptyCart)
	cartRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_NoCartMapsToEmptyCart(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPlaceOrderCommand("bob@example.com")

	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", mock.Anything, "bob@example.com").
			Return(nil, errs.NewObjectNotFoundError("cart", "bob@example.com")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, testClock())
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, cart.ErrEmptyCart)
	cartRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_SecondCheckoutFindsEmptyCart(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPlaceOrderCommand("alice@example.com")

	existing := customerCart(t, "alice@example.com")
	require.NoError(t, existing.AddItem(shawarmaItem(t), existing.UpdatedAt()))

	_, _, _, factory := checkoutMocks(t, existing)

	h := commands.NewPlaceOrderCommandHandler(factory, testClock())
	_, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// the first checkout drained the cart; re-running must not duplicate the order
	retryRepo := new(MockCartRepository)
	retryUoW := new(MockUoW)
	mock.InOrder(
		retryUoW.On("Begin", ctx).Return(nil).Once(),
		retryUoW.On("CartRepository").Return(retryRepo).Once(),
		retryRepo.On("GetByCustomer", mock.Anything, "alice@example.com").Return(existing, nil).Once(),
		retryUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	retryFactory := new(MockUoWFactory)
	retryFactory.On("Create").Return(retryUoW).Once()

	retryHandler := commands.NewPlaceOrderCommandHandler(retryFactory, testClock())
	_, err = retryHandler.Handle(ctx, cmd)
	require.ErrorIs(t, err, cart.ErrEmptyCart)
}

func TestPlaceOrderCommandHandler_Handle_OrderAddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPlaceOrderCommand("alice@example.com")

	existing := customerCart(t, "alice@example.com")
	require.NoError(t, existing.AddItem(shawarmaItem(t), existing.UpdatedAt()))

	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", mock.Anything, "alice@example.com").Return(existing, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(errors.New("insert error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, testClock())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	// no cart update happened, the transaction rolls back as a whole
	cartRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	cartRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewPlaceOrderCommandHandler(factory, testClock())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
