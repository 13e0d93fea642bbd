// Package guard provides a defensive construction marker for value objects
// and commands. Embedding a ConstructorGuard lets a type detect whether it was
// created through its designated constructor or as a bare zero value, so that
// invariants established by the constructor cannot be bypassed.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller supplies
// a nil validation error for a zero-value guard.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value is
// "not constructed"; only NewConstructorGuard produces a passing guard.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes Validate. Constructors embed
// it into the objects they build.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when that is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
