package dynamics

import "errors"

// Domain errors for dynamics operations.
var (
	// ErrSingularConfiguration indicates the mass matrix could not be
	// inverted to numerical tolerance. No partial result is returned.
	ErrSingularConfiguration = errors.New("dynamics: singular mass matrix")

	// ErrNumericInvalidity indicates a non-finite value (NaN/Inf) in the
	// inputs to a dynamics call, typically produced by a control law.
	ErrNumericInvalidity = errors.New("dynamics: non-finite value")

	// ErrDimensionMismatch indicates a torque vector whose length does
	// not equal the chain's degree-of-freedom count.
	ErrDimensionMismatch = errors.New("dynamics: dimension mismatch")
)
