package order

import (
	"fmt"

	"pichuka/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> Delivered
//	    │           │             │           │
//	    └───────────┴──────┬──────┴───────────┘
//	                       v
//	                   Cancelled
//
// Delivered and Cancelled are terminal. Which actor may request which
// transition is not encoded here; that is the TransitionPolicy's decision
// table. Status only answers what a status is, never who may change it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at checkout.
	Pending

	// Confirmed means the kitchen has accepted the order.
	Confirmed

	// Preparing means the kitchen is cooking.
	Preparing

	// Ready means the order is plated and waiting for front-of-house pickup.
	Ready

	// Delivered means front-of-house handed the order to the customer.
	// Terminal.
	Delivered

	// Cancelled means the order was abandoned before delivery. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// StatusFromString parses the wire representation of a status.
// Returns a ValueIsInvalidError for anything outside the six valid names,
// so an unknown enum value from a client is rejected before any transition
// logic runs.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the status is one of the six valid enum values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value; invalid values
// render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}
