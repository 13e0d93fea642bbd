package order

import (
	"errors"
	"fmt"
	"time"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderHasNoItems is returned when order creation is attempted with zero
	// item snapshots. Orders are materialized from carts; an empty cart never
	// becomes an order.
	ErrOrderHasNoItems = errors.New("order must contain at least one item")

	// ErrOrderIsClosed is returned when a transition is requested on an order
	// already in a terminal status (Delivered or Cancelled).
	ErrOrderIsClosed = errors.New("order is in a terminal status")

	// ErrOrderNotReady is returned when delivery confirmation is attempted on an
	// order whose status is not Ready. Deliberately distinct from the policy's
	// forbidden-transition error so callers can signal the precondition failure
	// separately.
	ErrOrderNotReady = errors.New("only Ready orders can be marked as delivered")

	// ErrDeliveredViaMarkOnly is returned when a generic transition targets
	// Delivered. Delivery goes through MarkDelivered so that the hand-off
	// record is always captured alongside the status.
	ErrDeliveredViaMarkOnly = errors.New("Delivered status is set via MarkDelivered")
)

// preparationEstimates maps a newly entered status to how far in the future
// the estimated delivery time lands. Statuses absent from the map leave any
// existing estimate untouched. These are restaurant policy constants, derived
// from the target status alone; callers cannot inject arbitrary estimates.
func preparationEstimates() map[Status]time.Duration {
	return map[Status]time.Duration{
		Confirmed: 45 * time.Minute,
		Preparing: 30 * time.Minute,
		Ready:     10 * time.Minute,
	}
}

// Order is the aggregate root for a placed restaurant order. It owns the
// status state machine, the append-only status history, and the delivery
// confirmation record.
//
// Invariants:
//   - items is non-empty and frozen at creation
//   - totalPrice always equals the recomputed sum of item subtotals
//   - statusHistory only grows; each entry records the status being left
//   - deliveredBy is set if and only if status is Delivered
//   - orders are never deleted; Cancelled is a status, not a removal
//
// Concurrent transitions on the same order are serialized by the repository's
// optimistic version check; the aggregate itself is not goroutine-safe.
type Order struct {
	id         kernel.UUID
	customer   string
	items      []Item
	totalPrice decimal.Decimal
	orderDate  time.Time
	status     Status
	history    []HistoryEntry

	estimatedDelivery *time.Time
	notes             string
	deliveredAt       *time.Time
	deliveredBy       *DeliveryRecord

	version int

	isConstructed bool
}

// NewOrder creates a Pending order from cart item snapshots. The total price
// is computed here, server-side; a client-supplied total is never trusted.
func NewOrder(id kernel.UUID, customer string, items []Item, now time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if customer == "" {
		return nil, errs.NewValueIsRequiredError("customer")
	}
	if len(items) == 0 {
		return nil, ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		customer:      customer,
		items:         append(make([]Item, 0, len(items)), items...),
		totalPrice:    sumItems(items),
		orderDate:     now,
		status:        Pending,
		history:       make([]HistoryEntry, 0),
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence. The stored total is
// checked against the recomputed sum so a corrupted row cannot resurface as a
// valid aggregate.
func RestoreOrder(
	id kernel.UUID,
	customer string,
	items []Item,
	totalPrice decimal.Decimal,
	orderDate time.Time,
	status Status,
	history []HistoryEntry,
	estimatedDelivery *time.Time,
	notes string,
	deliveredAt *time.Time,
	deliveredBy *DeliveryRecord,
	version int,
) (*Order, error) {
	restored, err := NewOrder(id, customer, items, orderDate)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if !restored.totalPrice.Equal(totalPrice) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"totalPrice",
			fmt.Errorf("stored total %s does not match item sum %s", totalPrice, restored.totalPrice),
		)
	}
	if (deliveredBy != nil) != (status == Delivered) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"deliveredBy",
			fmt.Errorf("delivery record present=%t for status %s", deliveredBy != nil, status),
		)
	}

	restored.status = status
	restored.history = append(make([]HistoryEntry, 0, len(history)), history...)
	restored.estimatedDelivery = estimatedDelivery
	restored.notes = notes
	restored.deliveredAt = deliveredAt
	restored.deliveredBy = deliveredBy
	restored.version = version
	return restored, nil
}

func sumItems(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier, assigned once at creation.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the ordering customer's identity.
func (o *Order) Customer() string {
	return o.customer
}

// Items returns a copy of the frozen item snapshots.
func (o *Order) Items() []Item {
	return append(make([]Item, 0, len(o.items)), o.items...)
}

// TotalPrice returns the server-computed order total.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.totalPrice
}

// OrderDate returns the immutable checkout timestamp.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status audit trail.
func (o *Order) History() []HistoryEntry {
	return append(make([]HistoryEntry, 0, len(o.history)), o.history...)
}

// EstimatedDelivery returns the derived delivery estimate, nil before the
// order is confirmed.
func (o *Order) EstimatedDelivery() *time.Time {
	return o.estimatedDelivery
}

// Notes returns staff notes attached to the order, empty when none.
func (o *Order) Notes() string {
	return o.notes
}

// DeliveredAt returns when the order was handed over, nil before delivery.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// DeliveredBy returns the hand-off record, nil unless status is Delivered.
func (o *Order) DeliveredBy() *DeliveryRecord {
	return o.deliveredBy
}

// Version returns the optimistic concurrency version loaded from persistence.
func (o *Order) Version() int {
	return o.version
}

// ChangeStatus applies a status transition requested by the given actor.
//
// The caller is expected to have authorized the (actor, from, to) triple
// against the TransitionPolicy first; ChangeStatus enforces the rules that
// hold regardless of role:
//   - the target must be a valid status
//   - a terminal order accepts no further transitions
//   - Delivered is reachable only through MarkDelivered
//
// On success the history gains an entry recording the status being left, and
// the delivery estimate is re-derived from the target status (Confirmed,
// Preparing and Ready set it; other targets leave it untouched).
func (o *Order) ChangeStatus(target Status, actor Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderIsClosed
	}
	if target == Delivered {
		return ErrDeliveredViaMarkOnly
	}

	o.applyTransition(target, actor, now)

	if estimate, ok := preparationEstimates()[target]; ok {
		at := now.Add(estimate)
		o.estimatedDelivery = &at
	}

	return nil
}

// ValidateMarkDelivered checks the delivery precondition without side effects:
// only a Ready order can be handed over. Lets callers authorize against the
// policy only after the precondition holds, keeping the two failure modes
// distinct.
func (o *Order) ValidateMarkDelivered() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status != Ready {
		return ErrOrderNotReady
	}
	return nil
}

// MarkDelivered confirms the hand-off of a Ready order to the customer.
// Sets the Delivered status, the delivery timestamp and the delivery record,
// and appends the history entry, all as one aggregate mutation.
func (o *Order) MarkDelivered(actor Actor, now time.Time) error {
	if err := o.ValidateMarkDelivered(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	o.applyTransition(Delivered, actor, now)
	o.deliveredAt = &now
	record := RestoreDeliveryRecord(actor.Identity(), actor.Role(), actor.Position(), now)
	o.deliveredBy = &record
	return nil
}

// AttachNotes sets staff notes on the order. Empty input is ignored so a
// status update without notes does not wipe earlier ones.
func (o *Order) AttachNotes(notes string) {
	if notes != "" {
		o.notes = notes
	}
}

func (o *Order) applyTransition(target Status, actor Actor, now time.Time) {
	o.history = append(o.history, HistoryEntry{
		previousStatus: o.status,
		timestamp:      now,
		actorLabel:     actor.Label(),
	})
	o.status = target
}
