package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrBadTimestep indicates a non-positive step size.
	ErrBadTimestep = errors.New("dynamo: step size must be positive")

	// ErrBadStepCount indicates a trajectory length below 1.
	ErrBadStepCount = errors.New("dynamo: step count must be at least 1")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")
)
