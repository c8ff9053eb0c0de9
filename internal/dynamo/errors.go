package dynamo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates NaN or Inf in a state vector.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnknownIntegrator indicates an integrator name with no implementation.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrDimensionMismatch indicates a state length the system does not accept.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// StepError wraps an error with the time it occurred at.
type StepError struct {
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("t=%.4f: %v", e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}

// CheckState returns a *StepError wrapping ErrInvalidState when x holds NaN
// or Inf, and ErrDimensionMismatch when its length is not dim.
func CheckState(x State, dim int, t float64) error {
	if len(x) != dim {
		return &StepError{Time: t, Wrapped: fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(x), dim)}
	}
	if !x.IsValid() {
		return &StepError{Time: t, Wrapped: ErrInvalidState}
	}
	return nil
}
