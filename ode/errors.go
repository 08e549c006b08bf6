package ode

import (
	"errors"
	"fmt"
)

// Terminal failure kinds of an integration call. None of them is retried;
// they propagate immediately to the caller.
var (
	// ErrInvalidStep indicates malformed configuration: dt <= 0, a
	// malformed TimeSpec, or missing stepper/RHS. Raised before any RHS
	// invocation.
	ErrInvalidStep = errors.New("ode: invalid step configuration")

	// ErrDiverged indicates the integration produced a non-finite state.
	ErrDiverged = errors.New("ode: integration diverged (non-finite state)")

	// ErrStepUnderflow indicates the adaptive controller could not satisfy
	// the tolerance above the minimum step size.
	ErrStepUnderflow = errors.New("ode: adaptive step size below minimum")
)

// IntegrationError wraps a terminal failure with enough context to
// diagnose where integration stopped: the index of the failing step, the
// last valid time and state, and the last attempted step size.
type IntegrationError struct {
	Step      int
	Time      float64
	LastState State
	LastDt    float64
	Wrapped   error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g, dt=%.6g): %v", e.Step, e.Time, e.LastDt, e.Wrapped)
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}

func invalidStep(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidStep)...)
}
