package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrHorizonTooShort is returned when T leaves no transition to compute.
	ErrHorizonTooShort = errors.New("engine: time horizon must be at least 2")

	// ErrInvalidValue marks a NaN, Inf or negative compartment value.
	ErrInvalidValue = errors.New("engine: invalid compartment value")

	ErrNilParams = errors.New("engine: nil parameter bundle")
)

// StepError reports the step whose output failed validation.
type StepError struct {
	Step   int
	Series string
	Value  float64
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("engine: step %d: %s = %g: %v", e.Step, e.Series, e.Value, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
