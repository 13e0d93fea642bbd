package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pichuka/internal/core/domain/model/order"
	"pichuka/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderTimelineQueryHandler retrieves one order's tracking view, joining
// the order row with its status history.
type GetOrderTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTimelineQueryHandler creates a handler for timeline queries.
func NewGetOrderTimelineQueryHandler(db *gorm.DB) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError when no such order
// exists; an order with no transitions yet comes back with an empty timeline.
func (h GetOrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTimelineQuery,
) (GetOrderTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	response := GetOrderTimelineQueryResponse{
		ID:       query.OrderID(),
		Timeline: make([]TimelineEntryResponse, 0),
	}

	var status int
	var deliveredByPosition, deliveredByIdentity *string

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			customer,
			status,
			total_price,
			order_date,
			estimated_delivery,
			notes,
			delivered_at,
			delivered_by_identity,
			delivered_by_position
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&response.Customer,
		&status,
		&response.TotalPrice,
		&response.OrderDate,
		&response.EstimatedDelivery,
		&response.Notes,
		&response.DeliveredAt,
		&deliveredByIdentity,
		&deliveredByPosition,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderTimelineQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderTimelineQueryResponse{}, err
	}

	response.Status = order.Status(status).String()
	if deliveredByIdentity != nil {
		response.DeliveredBy = *deliveredByIdentity
		if deliveredByPosition != nil && *deliveredByPosition != "" {
			response.DeliveredBy = fmt.Sprintf("%s (%s)", *deliveredByPosition, *deliveredByIdentity)
		}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			previous_status,
			timestamp,
			actor_label
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var previousStatus int
		var timestamp time.Time
		var actor string

		if err = rows.Scan(&previousStatus, &timestamp, &actor); err != nil {
			return GetOrderTimelineQueryResponse{}, err
		}

		response.Timeline = append(response.Timeline, TimelineEntryResponse{
			PreviousStatus: order.Status(previousStatus).String(),
			Timestamp:      timestamp,
			Actor:          actor,
		})
	}

	if err = rows.Err(); err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	return response, nil
}
