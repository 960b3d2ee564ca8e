// Package errs defines the error taxonomy shared by every analysis stage.
//
// All failures are reported synchronously through one of the sentinel errors
// below, usually wrapped in an [*Error] that names the failing operation.
// Callers test for a kind with [errors.Is].
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry indicates non-physical member or section parameters.
	ErrInvalidGeometry = errors.New("gobeam: invalid geometry")

	// ErrInvalidPosition indicates a position outside [0, L] or a malformed interval.
	ErrInvalidPosition = errors.New("gobeam: invalid position")

	// ErrOverconstrained indicates kinematically redundant supports that cannot be resolved.
	ErrOverconstrained = errors.New("gobeam: supports overconstrained")

	// ErrUnderconstrained indicates a mechanism: too few constraints for equilibrium
	// or for the integration constants.
	ErrUnderconstrained = errors.New("gobeam: member underconstrained")

	// ErrSolverTolerance indicates the equilibrium residual exceeded the tolerance.
	ErrSolverTolerance = errors.New("gobeam: equilibrium residual exceeds tolerance")

	// ErrInvalidQuery indicates a stress query point outside the cross-section.
	ErrInvalidQuery = errors.New("gobeam: invalid cross-section query")
)

// Error wraps a sentinel with the operation that detected it.
type Error struct {
	Op     string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Detail, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an *Error for op wrapping kind, with a formatted detail message.
func New(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Detail: fmt.Sprintf(format, args...), Err: kind}
}
