// Package order provides the order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root owning status, history and delivery record
//   - Status: the six-state lifecycle enum with terminal detection
//   - Actor and RoleClass: who requests a transition, as supplied by the
//     authentication collaborator
//   - Item: immutable price-frozen snapshots of cart lines
//   - HistoryEntry and DeliveryRecord: the audit trail value objects
//
// Key business rules:
//   - Orders start Pending and advance Pending -> Confirmed -> Preparing ->
//     Ready -> Delivered, with Cancelled reachable from any non-terminal state
//   - Every transition appends a history entry recording the status being left
//   - The delivery estimate is derived from the entered status, never supplied
//     by callers
//   - Delivered is reachable only through MarkDelivered, which captures the
//     hand-off record atomically with the status change
//
// Role-based permission for transitions lives in the services package; this
// package enforces only the rules that hold for every actor.
package order
