package order

import (
	"fmt"

	"pichuka/internal/pkg/errs"
)

// RoleClass groups staff positions into the three actor classes that the
// transition policy reasons about. The authentication collaborator supplies
// raw role and position strings; RoleClassFrom maps them here once, at the
// edge, so the core never sees ad hoc position lists.
type RoleClass int

const (
	// RoleUnknown is any unrecognized role or position. The policy denies it;
	// it is never an error by itself.
	RoleUnknown RoleClass = iota

	// RoleCustomer places orders and browses their own history.
	RoleCustomer

	// RoleKitchen is chef-equivalent staff driving Pending through Ready.
	RoleKitchen

	// RoleFrontOfHouse is manager/supervisor/cashier/waiter-equivalent staff
	// who hand orders to customers.
	RoleFrontOfHouse
)

func getRoleClassStrings() map[RoleClass]string {
	return map[RoleClass]string{
		RoleUnknown:      "Unknown",
		RoleCustomer:     "Customer",
		RoleKitchen:      "Kitchen",
		RoleFrontOfHouse: "FrontOfHouse",
	}
}

// String returns the role class name. Implements fmt.Stringer.
func (r RoleClass) String() string {
	if str, ok := getRoleClassStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RoleClassFrom maps the (role, position) tuple supplied by the authentication
// collaborator to a RoleClass. Customers carry no position. Employee positions
// split into kitchen (Chef) and front-of-house (Manager, Supervisor, Cashier,
// Waiter). Anything else maps to RoleUnknown, which every policy denies.
func RoleClassFrom(role, position string) RoleClass {
	if role == "Customer" {
		return RoleCustomer
	}
	if role != "Employee" {
		return RoleUnknown
	}

	switch position {
	case "Chef":
		return RoleKitchen
	case "Manager", "Supervisor", "Cashier", "Waiter":
		return RoleFrontOfHouse
	default:
		return RoleUnknown
	}
}

// ErrActorIsNotConstructed is returned when an Actor bypassed the NewActor constructor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("Actor must be created via NewActor constructor")

// Actor identifies who requests a transition. The engine trusts this tuple as
// given by the authentication collaborator and never reads ambient state.
// An actor with RoleUnknown is valid; it is simply denied by the policy.
type Actor struct {
	identity string
	role     RoleClass
	position string

	isConstructed bool
}

// NewActor creates an actor from the authenticated identity tuple.
func NewActor(identity string, role RoleClass, position string) (Actor, error) {
	if identity == "" {
		return Actor{}, errs.NewValueIsRequiredError("identity")
	}

	return Actor{
		identity:      identity,
		role:          role,
		position:      position,
		isConstructed: true,
	}, nil
}

// Validate ensures the actor was created via NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// Identity returns the actor's identity (customer or employee email).
func (a Actor) Identity() string {
	return a.identity
}

// Role returns the actor's role class.
func (a Actor) Role() RoleClass {
	return a.role
}

// Position returns the raw staff position, empty for customers.
func (a Actor) Position() string {
	return a.position
}

// Label renders the actor for the status history audit trail,
// "Position (identity)" for staff and the bare identity otherwise.
func (a Actor) Label() string {
	if a.position != "" {
		return fmt.Sprintf("%s (%s)", a.position, a.identity)
	}
	return a.identity
}
