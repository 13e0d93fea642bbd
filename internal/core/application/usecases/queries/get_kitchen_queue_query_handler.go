package queries

import (
	"context"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetKitchenQueueQueryHandler retrieves the kitchen's pending workload.
type GetKitchenQueueQueryHandler struct {
	db *gorm.DB
}

// NewGetKitchenQueueQueryHandler creates a handler for kitchen queue queries.
func NewGetKitchenQueueQueryHandler(db *gorm.DB) GetKitchenQueueQueryHandler {
	return GetKitchenQueueQueryHandler{db: db}
}

// Handle executes the query. Orders already Ready, Delivered or Cancelled are
// off the kitchen's plate and excluded.
func (h GetKitchenQueueQueryHandler) Handle(
	ctx context.Context,
	query GetKitchenQueueQuery,
) ([]GetKitchenQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetKitchenQueueQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer,
			status,
			order_date,
			notes
		FROM orders
		WHERE status IN (?, ?, ?)
		ORDER BY order_date
	`, int(order.Pending), int(order.Confirmed), int(order.Preparing)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetKitchenQueueQueryResponse
		var id uuid.UUID
		var status int

		if err = rows.Scan(&id, &resp.Customer, &status, &resp.OrderDate, &resp.Notes); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status).String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
