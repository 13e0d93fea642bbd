package queries

import (
	"context"
	"time"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryQueueQueryHandler retrieves Ready orders awaiting hand-off.
type GetDeliveryQueueQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueueQueryHandler creates a handler for hand-off queue queries.
func NewGetDeliveryQueueQueryHandler(db *gorm.DB) GetDeliveryQueueQueryHandler {
	return GetDeliveryQueueQueryHandler{db: db}
}

// Handle executes the query, oldest Ready orders first.
func (h GetDeliveryQueueQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQueueQuery,
) ([]GetDeliveryQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetDeliveryQueueQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer,
			order_date,
			estimated_delivery
		FROM orders
		WHERE status = ?
		ORDER BY order_date
	`, int(order.Ready)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetDeliveryQueueQueryResponse
		var id uuid.UUID
		var estimated *time.Time

		if err = rows.Scan(&id, &resp.Customer, &resp.OrderDate, &estimated); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.EstimatedDelivery = estimated
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
