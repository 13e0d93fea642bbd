// Package queries contains read-only projections over the database.
// Queries bypass the domain aggregates and repositories by design: they read
// whatever shape the caller needs straight from the tables, in the CQRS
// tradition, and never mutate state.
package queries

import (
	"errors"
	"time"

	"pichuka/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetCartQueryIsNotConstructed = errors.New(
		"GetCartQuery must be created via NewGetCartQuery constructor",
	)
	ErrCustomerIsRequired = errors.New("customer is required")
)

// GetCartQuery retrieves a customer's current cart contents.
// A customer without a cart gets an empty cart back, not an error; the
// distinction between "no cart row yet" and "cart drained" is a persistence
// detail browsers should never see.
type GetCartQuery struct { //nolint:recvcheck //using for validation
	customer string

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for the customer's cart.
func NewGetCartQuery(customer string) (GetCartQuery, error) {
	q := GetCartQuery{guard: guard.NewConstructorGuard()}

	if customer == "" {
		return GetCartQuery{}, ErrCustomerIsRequired
	}
	q.customer = customer

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// Customer returns the owning customer identity.
func (q GetCartQuery) Customer() string {
	return q.customer
}

// GetCartQueryResponse represents the customer's cart projection.
type GetCartQueryResponse struct {
	Customer   string
	Items      []CartLineResponse
	TotalPrice decimal.Decimal
	UpdatedAt  time.Time
}

// CartLineResponse represents one coalesced cart line.
type CartLineResponse struct {
	DishID   int
	Title    string
	Price    decimal.Decimal
	Quantity int
	Image    string
	Subtotal decimal.Decimal
}
