// Package guard detects zero-value commands, queries and value objects that
// bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is
// supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not usable. Only
// NewConstructorGuard produces a guard that validates.
//
//	type AssignAgentCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c AssignAgentCommand) Validate() error {
//	    return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard was not created by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
