// Package ports defines the contracts between the application core and
// infrastructure adapters: repositories, the unit of work, and the clock.
package ports

import (
	"context"
	"time"

	"pichuka/internal/core/domain/model/cart"
)

// CartRepository defines the persistence contract for cart aggregates.
// Carts are keyed by customer identity; at most one cart exists per customer.
type CartRepository interface {
	// Add persists a brand-new cart for a customer.
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update persists changes to an existing cart. The write is version
	// checked; a concurrent mutation of the same cart surfaces as a
	// VersionIsInvalidError so the read-modify-write is retried, never lost.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// GetByCustomer retrieves the customer's cart.
	// Returns ObjectNotFoundError when the customer has no cart yet.
	GetByCustomer(ctx context.Context, customer string) (*cart.Cart, error)

	// GetStale retrieves non-empty carts untouched since the cutoff.
	// Used by the janitor to drain abandoned carts.
	GetStale(ctx context.Context, cutoff time.Time) ([]*cart.Cart, error)
}
