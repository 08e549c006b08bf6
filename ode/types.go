package ode

// RHS is the user-supplied derivative function of an ODE system,
// dy/dt = f(y, t). It must be pure: no mutation of y, no dependence on
// hidden state. The driver invokes it at times of its own choosing,
// possibly several times per step.
type RHS func(y State, t float64) State

// Stepper advances one (state, time) pair by one step of size dt.
// Implementations return the next state and next time; dt <= 0 or
// non-finite dt is a contract violation reported as ErrInvalidStep
// before f is ever evaluated.
type Stepper interface {
	Step(f RHS, y State, t, dt float64) (State, float64, error)
}

// ErrorStepper is a Stepper computing an embedded pair: two candidate
// updates of different order from shared evaluations of f. StepWithError
// returns the higher-order candidate as the next state (local
// extrapolation) together with the norm of the difference between the two
// candidates as the local error estimate. Order reports the order of the
// accepted candidate, which the adaptive controller uses as the step-size
// exponent.
type ErrorStepper interface {
	Stepper
	StepWithError(f RHS, y State, t, dt float64) (State, float64, float64, error)
	Order() int
}

// Separable is the right-hand side of a separable Hamiltonian system
// H(q, p) = T(p) + V(q), split into its paired derivative functions.
type Separable struct {
	// DQ computes dq/dt = dH/dp from the momentum.
	DQ func(p State, t float64) State
	// DP computes dp/dt = -dH/dq from the position.
	DP func(q State, t float64) State
}

// SymplecticStepper advances a (position, momentum) pair of a separable
// Hamiltonian system by one step, preserving a discrete energy-like
// invariant. It is deliberately narrower than Stepper: symplectic methods
// are only selectable through SymplecticOdeint, with state and RHS shapes
// that satisfy the separability contract.
type SymplecticStepper interface {
	SymplecticStep(sys Separable, q, p State, t, dt float64) (State, State, float64, error)
}

// Observer is notified of every recorded trajectory point.
type Observer interface {
	OnStep(y State, t float64)
}

// Config carries driver options. The adaptive fields are only meaningful
// when the stepper implements ErrorStepper; for fixed-step and symplectic
// steppers they are ignored.
type Config struct {
	// Tolerance bounds the local error estimate of accepted steps.
	Tolerance float64
	// MinDt aborts the adaptive controller with ErrStepUnderflow when the
	// proposed step would shrink below it.
	MinDt float64
	// GrowthCap and ShrinkCap bound the per-iteration step resizing.
	GrowthCap float64
	ShrinkCap float64
	// Observers receive every recorded (state, time) point, including the
	// initial condition.
	Observers []Observer
}

const adaptiveSafety = 0.9

func DefaultConfig() Config {
	return Config{
		Tolerance: 1e-6,
		MinDt:     1e-10,
		GrowthCap: 5.0,
		ShrinkCap: 0.2,
	}
}

// withDefaults fills zero-valued fields so a zero Config behaves like
// DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Tolerance <= 0 {
		c.Tolerance = d.Tolerance
	}
	if c.MinDt <= 0 {
		c.MinDt = d.MinDt
	}
	if c.GrowthCap <= 0 {
		c.GrowthCap = d.GrowthCap
	}
	if c.ShrinkCap <= 0 {
		c.ShrinkCap = d.ShrinkCap
	}
	return c
}
