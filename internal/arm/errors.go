package arm

import "errors"

// Domain errors for chain construction and state assignment.
var (
	// ErrInvalidProperty indicates a link property that cannot describe a
	// physical link (non-positive length, negative mass or inertia,
	// inverted joint limits).
	ErrInvalidProperty = errors.New("arm: invalid link property")

	// ErrDimensionMismatch indicates a state vector whose length does not
	// equal the chain's degree-of-freedom count. The assignment is
	// rejected and the chain state is left unchanged.
	ErrDimensionMismatch = errors.New("arm: dimension mismatch")
)
