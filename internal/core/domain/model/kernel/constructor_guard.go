package kernel

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when
// no specific error is supplied for a zero-value object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects domain objects that were created as zero values
// instead of through their factory function. Embedding a guard in a struct
// and setting it in the constructor lets Validate distinguish properly
// constructed instances from bare struct literals, so aggregate invariants
// cannot be bypassed.
//
//	type CartLine struct {
//	    ...
//	    guard kernel.ConstructorGuard
//	}
//
//	func NewCartLine(...) (*CartLine, error) {
//	    ...
//	    return &CartLine{..., guard: kernel.NewConstructorGuard()}, nil
//	}
//
//	func (l *CartLine) Validate() error {
//	    return l.guard.Validate(ErrCartLineIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed objects. For zero values it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
