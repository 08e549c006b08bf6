package integrators

import (
	"fmt"
	"math"

	"github.com/mseri/owl-ode/ode"
)

// checkStep rejects zero, negative and non-finite step sizes before any
// RHS evaluation.
func checkStep(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("step size must be positive and finite, got %g: %w", dt, ode.ErrInvalidStep)
	}
	return nil
}
