package ports

import (
	"context"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are append-and-update only; nothing ever deletes one.
type OrderRepository interface {
	// Add persists a newly placed order together with its item snapshots.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a transition on an existing order. The write is version
	// checked so two concurrent transitions on the same order cannot both
	// apply; the loser gets a VersionIsInvalidError. Status and history are
	// written in the same transaction, never one without the other.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier, including its status
	// history. Returns ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
