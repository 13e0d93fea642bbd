package queries

import (
	"errors"
	"time"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/pkg/guard"
)

var ErrGetKitchenQueueQueryIsNotConstructed = errors.New(
	"GetKitchenQueueQuery must be created via NewGetKitchenQueueQuery constructor",
)

// GetKitchenQueueQuery retrieves orders the kitchen still has to act on:
// Pending, Confirmed and Preparing, oldest first so the queue reads top-down.
type GetKitchenQueueQuery struct {
	guard guard.ConstructorGuard
}

// NewGetKitchenQueueQuery creates a query for the kitchen work queue.
func NewGetKitchenQueueQuery() GetKitchenQueueQuery {
	return GetKitchenQueueQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetKitchenQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetKitchenQueueQueryIsNotConstructed)
}

// GetKitchenQueueQueryResponse represents one order on the kitchen queue.
type GetKitchenQueueQueryResponse struct {
	ID        kernel.UUID
	Customer  string
	Status    string
	OrderDate time.Time
	Notes     string
}
