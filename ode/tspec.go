package ode

import "math"

// TimeSpec describes the integration horizon and step granularity.
// Exactly two variants exist: FixedHorizon and ExplicitPoints. A spec is
// constructed once by the caller, validated before any RHS invocation and
// never mutated by the driver.
type TimeSpec interface {
	Validate() error
	// Start returns the initial time t0.
	Start() float64
}

// FixedHorizon integrates from T0 for Duration using steps of size Dt.
// The final step is clipped so the last recorded time equals T0+Duration
// exactly.
type FixedHorizon struct {
	T0       float64
	Duration float64
	Dt       float64
}

func (h FixedHorizon) Validate() error {
	if math.IsNaN(h.T0) || math.IsInf(h.T0, 0) {
		return invalidStep("t0 must be finite, got %g", h.T0)
	}
	if !(h.Duration > 0) || math.IsInf(h.Duration, 0) {
		return invalidStep("duration must be positive and finite, got %g", h.Duration)
	}
	if !(h.Dt > 0) || math.IsInf(h.Dt, 0) {
		return invalidStep("dt must be positive and finite, got %g", h.Dt)
	}
	if h.Dt > h.Duration {
		return invalidStep("dt %g exceeds duration %g", h.Dt, h.Duration)
	}
	return nil
}

func (h FixedHorizon) Start() float64 { return h.T0 }

// end returns the exact horizon end time.
func (h FixedHorizon) end() float64 { return h.T0 + h.Duration }

// wholeSteps returns the number of whole Dt steps before the clipped
// remainder.
func (h FixedHorizon) wholeSteps() int {
	return int(math.Floor(h.Duration / h.Dt))
}

// ExplicitPoints integrates through a strictly increasing sequence of
// requested times; the trajectory reports exactly these points.
type ExplicitPoints struct {
	Times []float64
}

func (e ExplicitPoints) Validate() error {
	if len(e.Times) < 2 {
		return invalidStep("explicit points need at least 2 times, got %d", len(e.Times))
	}
	for i, t := range e.Times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return invalidStep("time %d must be finite, got %g", i, t)
		}
		if i > 0 && t <= e.Times[i-1] {
			return invalidStep("times must be strictly increasing at index %d (%g <= %g)", i, t, e.Times[i-1])
		}
	}
	return nil
}

func (e ExplicitPoints) Start() float64 { return e.Times[0] }
