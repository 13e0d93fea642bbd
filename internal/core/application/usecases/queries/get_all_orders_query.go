package queries

import (
	"errors"
	"time"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves every order for the staff dashboard, newest
// first. This is a parameterless query.
type GetAllOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query to retrieve all orders.
func NewGetAllOrdersQuery() GetAllOrdersQuery {
	return GetAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// GetAllOrdersQueryResponse represents one order on the staff dashboard.
type GetAllOrdersQueryResponse struct {
	ID                kernel.UUID
	Customer          string
	Status            string
	TotalPrice        decimal.Decimal
	OrderDate         time.Time
	EstimatedDelivery *time.Time
}
