package queries

import (
	"errors"
	"time"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves a customer's own orders, newest first.
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	customer string

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for the customer's order history.
func NewGetOrderHistoryQuery(customer string) (GetOrderHistoryQuery, error) {
	q := GetOrderHistoryQuery{guard: guard.NewConstructorGuard()}

	if customer == "" {
		return GetOrderHistoryQuery{}, ErrCustomerIsRequired
	}
	q.customer = customer

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// Customer returns the owning customer identity.
func (q GetOrderHistoryQuery) Customer() string {
	return q.customer
}

// GetOrderHistoryQueryResponse represents one order in the customer's history.
type GetOrderHistoryQueryResponse struct {
	ID                kernel.UUID
	Status            string
	TotalPrice        decimal.Decimal
	OrderDate         time.Time
	EstimatedDelivery *time.Time
}
