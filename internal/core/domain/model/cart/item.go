package cart

import (
	"errors"
	"fmt"

	"pichuka/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is a value object describing one menu dish selected by the customer.
// The price recorded here is the unit price at the moment of selection; order
// creation snapshots it so later menu changes never affect placed orders.
type Item struct {
	dishID   int
	title    string
	price    decimal.Decimal
	quantity int
	image    string

	isConstructed bool
}

// ErrItemIsNotConstructed is returned when an Item bypassed the NewItem constructor.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// NewItem creates a validated cart item. Quantity defaults to 1 when zero is
// supplied, mirroring an add-to-cart click without an explicit amount.
func NewItem(dishID int, title string, price decimal.Decimal, quantity int, image string) (Item, error) {
	if quantity == 0 {
		quantity = 1
	}

	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setDishID(dishID),
		item.setTitle(title),
		item.setPrice(price),
		item.setQuantity(quantity),
		item.setImage(image),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the item was created via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// DishID returns the menu dish identifier.
func (i Item) DishID() int {
	return i.dishID
}

// Title returns the dish display name.
func (i Item) Title() string {
	return i.title
}

// Price returns the unit price.
func (i Item) Price() decimal.Decimal {
	return i.price
}

// Quantity returns the selected amount, always at least 1.
func (i Item) Quantity() int {
	return i.quantity
}

// Image returns the dish image reference.
func (i Item) Image() string {
	return i.image
}

// Subtotal returns price multiplied by quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// withQuantity returns a copy of the item carrying the given quantity.
// Used by the cart when coalescing repeated adds of the same dish.
func (i Item) withQuantity(quantity int) Item {
	i.quantity = quantity
	return i
}

func (i *Item) setDishID(dishID int) error {
	if dishID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dishId", fmt.Errorf("%d is not a valid dish id", dishID))
	}
	i.dishID = dishID
	return nil
}

func (i *Item) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	i.title = title
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	i.price = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	if quantity > maxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setImage(image string) error {
	if image == "" {
		return errs.NewValueIsRequiredError("image")
	}
	i.image = image
	return nil
}

// maxItemQuantity caps a single cart line. Large enough for any realistic
// table order, small enough to catch client-side integer mishaps.
const maxItemQuantity = 100
