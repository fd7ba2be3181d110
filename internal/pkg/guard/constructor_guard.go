// Package guard holds the constructor guard embedded by value objects and
// aggregates so that zero values can be told apart from constructed ones.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor. Embed it and
// call NewConstructorGuard in the constructor; the zero value fails Validate.
//
// Example:
//
//	var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone")
//
//	type Zone struct {
//	    region   string
//	    district string
//	    guard    guard.ConstructorGuard
//	}
//
//	func (z Zone) Validate() error {
//	    return z.guard.Validate(ErrZoneIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
