package queries

import (
	"errors"
	"time"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderTimelineQueryIsNotConstructed = errors.New(
	"GetOrderTimelineQuery must be created via NewGetOrderTimelineQuery constructor",
)

// GetOrderTimelineQuery retrieves one order's full tracking view: current
// status, the audit trail, the delivery estimate and the hand-off record.
type GetOrderTimelineQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTimelineQuery creates a query for one order's timeline.
func NewGetOrderTimelineQuery(orderID kernel.UUID) (GetOrderTimelineQuery, error) {
	q := GetOrderTimelineQuery{guard: guard.NewConstructorGuard()}

	if err := orderID.Validate(); err != nil {
		return GetOrderTimelineQuery{}, err
	}
	q.orderID = orderID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTimelineQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to inspect.
func (q GetOrderTimelineQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderTimelineQueryResponse represents one order's tracking view.
type GetOrderTimelineQueryResponse struct {
	ID                kernel.UUID
	Customer          string
	Status            string
	TotalPrice        decimal.Decimal
	OrderDate         time.Time
	EstimatedDelivery *time.Time
	Notes             string
	DeliveredAt       *time.Time
	DeliveredBy       string
	Timeline          []TimelineEntryResponse
}

// TimelineEntryResponse represents one transition in the audit trail.
type TimelineEntryResponse struct {
	PreviousStatus string
	Timestamp      time.Time
	Actor          string
}
