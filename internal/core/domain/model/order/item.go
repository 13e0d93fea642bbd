package order

import (
	"errors"
	"fmt"

	"pichuka/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item bypassed the NewItem constructor.
var ErrItemIsNotConstructed = errors.New("order Item must be created via NewItem constructor")

// Item is an immutable snapshot of a cart line taken at checkout. The price
// is frozen here; later menu changes never alter a placed order.
type Item struct {
	dishID   int
	title    string
	price    decimal.Decimal
	quantity int
	image    string

	isConstructed bool
}

// NewItem creates a validated order line snapshot.
func NewItem(dishID int, title string, price decimal.Decimal, quantity int, image string) (Item, error) {
	if dishID <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("dishId", fmt.Errorf("%d is not a valid dish id", dishID))
	}
	if title == "" {
		return Item{}, errs.NewValueIsRequiredError("title")
	}
	if price.IsNegative() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	if image == "" {
		return Item{}, errs.NewValueIsRequiredError("image")
	}

	return Item{
		dishID:        dishID,
		title:         title,
		price:         price,
		quantity:      quantity,
		image:         image,
		isConstructed: true,
	}, nil
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

// Title returns the dish display name at checkout time.
func (i Item) Title() string {
	return i.title
}

// Price returns the frozen unit price.
func (i Item) Price() decimal.Decimal {
	return i.price
}

// Quantity returns the ordered amount.
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
