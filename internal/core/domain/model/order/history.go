package order

import "time"

// HistoryEntry is one record of the append-only status audit trail. It
// captures the status the order was leaving, when, and who requested the
// change. Entries are never updated or removed.
type HistoryEntry struct {
	previousStatus Status
	timestamp      time.Time
	actorLabel     string
}

// RestoreHistoryEntry reconstructs an audit record from persistence.
func RestoreHistoryEntry(previousStatus Status, timestamp time.Time, actorLabel string) HistoryEntry {
	return HistoryEntry{
		previousStatus: previousStatus,
		timestamp:      timestamp,
		actorLabel:     actorLabel,
	}
}

// PreviousStatus returns the status the order held before the transition.
func (h HistoryEntry) PreviousStatus() Status {
	return h.previousStatus
}

// Timestamp returns when the transition was applied.
func (h HistoryEntry) Timestamp() time.Time {
	return h.timestamp
}

// ActorLabel returns who requested the transition, as rendered by Actor.Label.
func (h HistoryEntry) ActorLabel() string {
	return h.actorLabel
}

// DeliveryRecord captures who handed a delivered order to the customer.
// It is set exactly when the order reaches Delivered, never before.
type DeliveryRecord struct {
	identity  string
	role      RoleClass
	position  string
	timestamp time.Time
}

// RestoreDeliveryRecord reconstructs a delivery record from persistence.
func RestoreDeliveryRecord(identity string, role RoleClass, position string, timestamp time.Time) DeliveryRecord {
	return DeliveryRecord{
		identity:  identity,
		role:      role,
		position:  position,
		timestamp: timestamp,
	}
}

// Identity returns the delivering employee's identity.
func (d DeliveryRecord) Identity() string {
	return d.identity
}

// Role returns the delivering employee's role class.
func (d DeliveryRecord) Role() RoleClass {
	return d.role
}

// Position returns the delivering employee's position.
func (d DeliveryRecord) Position() string {
	return d.position
}

// Timestamp returns when the hand-off happened.
func (d DeliveryRecord) Timestamp() time.Time {
	return d.timestamp
}
