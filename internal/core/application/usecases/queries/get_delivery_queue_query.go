package queries

import (
	"errors"
	"time"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/pkg/guard"
)

var ErrGetDeliveryQueueQueryIsNotConstructed = errors.New(
	"GetDeliveryQueueQuery must be created via NewGetDeliveryQueueQuery constructor",
)

// GetDeliveryQueueQuery retrieves Ready orders awaiting hand-off, oldest
// first, for the front-of-house counter.
type GetDeliveryQueueQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeliveryQueueQuery creates a query for the hand-off queue.
func NewGetDeliveryQueueQuery() GetDeliveryQueueQuery {
	return GetDeliveryQueueQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueueQueryIsNotConstructed)
}

// GetDeliveryQueueQueryResponse represents one Ready order at the counter.
type GetDeliveryQueueQueryResponse struct {
	ID                kernel.UUID
	Customer          string
	OrderDate         time.Time
	EstimatedDelivery *time.Time
}
