package replicated

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is matched by every *TypeMismatchError via errors.Is.
var ErrTypeMismatch = errors.New("replicated value type mismatch")

// TypeMismatchError is returned by the strict accessors when the requested
// type does not match the stored discriminant.
type TypeMismatchError struct {
	// Expected is the discriminant stored in the value, the type it was
	// constructed with.
	Expected Type

	// Actual is the type the caller tried to read it as.
	Actual Type
}

func mismatch(stored, requested Type) *TypeMismatchError {
	return &TypeMismatchError{Expected: stored, Actual: requested}
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("Expected - %s but found %s.", e.Expected, e.Actual)
}

// Is lets errors.Is(err, ErrTypeMismatch) match.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// IsTypeMismatch returns true if err is or wraps a *TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var tm *TypeMismatchError
	return errors.As(err, &tm)
}
