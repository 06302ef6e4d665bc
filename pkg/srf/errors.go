package srf

import (
	"errors"
	"fmt"
)

// Common errors returned by the srf311 library.
var (
	// ErrInvalidModulus means the supplied field modulus is unusable
	// (too small, even, or not a probable prime).
	ErrInvalidModulus = errors.New("invalid field modulus")

	// ErrUnreducedCoefficient means a curve coefficient was supplied
	// outside the canonical range [0, p).
	ErrUnreducedCoefficient = errors.New("curve coefficient not reduced mod p")

	// ErrSingularCurve means 4A^3 + 27B^2 ≡ 0 (mod p), so the Weierstrass
	// equation does not define an elliptic curve.
	ErrSingularCurve = errors.New("singular curve")

	// ErrPointNotOnCurve means a point's coordinates do not satisfy the
	// curve equation.
	ErrPointNotOnCurve = errors.New("point not on curve")

	// ErrDivisionByZero means a modular inverse of zero was requested.
	ErrDivisionByZero = errors.New("modular inverse of zero")

	// ErrNegativeScalar means a scalar multiplication was requested with
	// a negative multiplier.
	ErrNegativeScalar = errors.New("negative scalar")

	// ErrCheckpointOrder means a checkpoint list is not strictly ascending.
	ErrCheckpointOrder = errors.New("checkpoints not strictly ascending")
)

// InvariantError reports an internal invariant violation inside the group
// law, such as a zero denominator that the case analysis should have
// excluded. It is fatal: callers must propagate it, never retry or ignore.
type InvariantError struct {
	Op  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %v", e.Op, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// NewInvariantError creates a new InvariantError for the given operation.
func NewInvariantError(op string, err error) *InvariantError {
	return &InvariantError{Op: op, Err: err}
}
