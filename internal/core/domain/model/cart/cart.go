package cart

import (
	"errors"
	"time"

	"pichuka/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart instance was not created
	// through NewCart or RestoreCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart constructor")

	// ErrEmptyCart is returned when checkout is attempted on a cart with no items.
	// A second checkout of the same cart fails with this error because the first
	// one drained it, which is what makes order placement idempotent.
	ErrEmptyCart = errors.New("cart is empty")
)

// Cart is the per-customer aggregate holding selected menu items before
// checkout. One cart exists per customer identity; it is created on the first
// add and drained (not deleted) when an order is placed.
//
// Invariants:
//   - At most one line per dish: adding a dish already in the cart increments
//     its quantity instead of appending a duplicate line.
//   - Item order is preserved as added.
//   - The version field serializes concurrent read-modify-write mutations for
//     the same customer through optimistic locking in the repository.
type Cart struct {
	customer  string
	items     []Item
	updatedAt time.Time
	version   int

	isConstructed bool
}

// NewCart creates an empty cart for the given customer identity.
func NewCart(customer string, now time.Time) (*Cart, error) {
	if customer == "" {
		return nil, errs.NewValueIsRequiredError("customer")
	}

	return &Cart{
		customer:      customer,
		items:         make([]Item, 0),
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreCart reconstructs a cart from persistence.
func RestoreCart(customer string, items []Item, updatedAt time.Time, version int) (*Cart, error) {
	if customer == "" {
		return nil, errs.NewValueIsRequiredError("customer")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Cart{
		customer:      customer,
		items:         append(make([]Item, 0, len(items)), items...),
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the cart was created through a constructor.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// Customer returns the owning customer identity.
func (c *Cart) Customer() string {
	return c.customer
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	return append(make([]Item, 0, len(c.items)), c.items...)
}

// UpdatedAt returns the time of the last mutation.
func (c *Cart) UpdatedAt() time.Time {
	return c.updatedAt
}

// Version returns the optimistic concurrency version loaded from persistence.
func (c *Cart) Version() int {
	return c.version
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalPrice returns the sum of line subtotals.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// AddItem puts an item into the cart. When a line with the same dish already
// exists its quantity is incremented by the added quantity; a new line is
// appended otherwise.
func (c *Cart) AddItem(item Item, now time.Time) error {
	if err := item.Validate(); err != nil {
		return err
	}

	for i, existing := range c.items {
		if existing.DishID() == item.DishID() {
			merged := existing.withQuantity(existing.Quantity() + item.Quantity())
			c.items[i] = merged
			c.updatedAt = now
			return nil
		}
	}

	c.items = append(c.items, item)
	c.updatedAt = now
	return nil
}

// RemoveItem deletes the line for the given dish. Removing a dish that is not
// in the cart is a no-op, not an error.
func (c *Cart) RemoveItem(dishID int, now time.Time) {
	filtered := c.items[:0]
	for _, item := range c.items {
		if item.DishID() != dishID {
			filtered = append(filtered, item)
		}
	}
	c.items = filtered
	c.updatedAt = now
}

// Clear drains all items, leaving the cart itself in place.
// Called when checkout converts the cart into an order.
func (c *Cart) Clear(now time.Time) {
	c.items = c.items[:0]
	c.updatedAt = now
}
