package services

import (
	"errors"

	"pichuka/internal/core/domain/model/order"
)

// ErrForbiddenTransition is returned when the requesting actor's role class is
// not permitted to apply the requested status transition. It covers every
// (role, from, to) triple outside the allow table, including unrecognized
// roles; the policy never fails any other way.
var ErrForbiddenTransition = errors.New("transition is not permitted for this role")

// transitionKey identifies one row of the allow table.
type transitionKey struct {
	role order.RoleClass
	from order.Status
	to   order.Status
}

// TransitionPolicy is the role authorization decision table for order status
// transitions. It is a pure, total function over (role, from, to): every input
// yields a definite allow or deny, and anything not explicitly allowed is
// denied.
//
// The fixed rows:
//   - Kitchen advances orders through preparation:
//     Pending->Confirmed, Confirmed->Preparing, Preparing->Ready
//   - Front-of-house hands Ready orders to customers: Ready->Delivered
//
// Cancellation rows are configurable because the roles allowed to cancel are
// restaurant policy, not workflow structure: the given canceller roles may
// move any non-terminal status to Cancelled.
type TransitionPolicy struct {
	allowed map[transitionKey]struct{}
}

// NewTransitionPolicy builds the default policy, in which both kitchen and
// front-of-house staff may cancel.
func NewTransitionPolicy() TransitionPolicy {
	return NewTransitionPolicyWithCancellers(order.RoleKitchen, order.RoleFrontOfHouse)
}

// NewTransitionPolicyWithCancellers builds a policy whose cancellation rows
// are granted to exactly the given role classes. Passing no roles yields a
// policy in which nobody may cancel.
func NewTransitionPolicyWithCancellers(cancellers ...order.RoleClass) TransitionPolicy {
	allowed := map[transitionKey]struct{}{
		{order.RoleKitchen, order.Pending, order.Confirmed}:    {},
		{order.RoleKitchen, order.Confirmed, order.Preparing}:  {},
		{order.RoleKitchen, order.Preparing, order.Ready}:      {},
		{order.RoleFrontOfHouse, order.Ready, order.Delivered}: {},
	}

	cancellable := []order.Status{order.Pending, order.Confirmed, order.Preparing, order.Ready}
	for _, role := range cancellers {
		for _, from := range cancellable {
			allowed[transitionKey{role, from, order.Cancelled}] = struct{}{}
		}
	}

	return TransitionPolicy{allowed: allowed}
}

// Allows reports whether the role class may apply the transition.
func (p TransitionPolicy) Allows(role order.RoleClass, from, to order.Status) bool {
	_, ok := p.allowed[transitionKey{role, from, to}]
	return ok
}

// Authorize returns nil when the actor may apply the transition and
// ErrForbiddenTransition otherwise.
func (p TransitionPolicy) Authorize(actor order.Actor, from, to order.Status) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !p.Allows(actor.Role(), from, to) {
		return ErrForbiddenTransition
	}
	return nil
}
