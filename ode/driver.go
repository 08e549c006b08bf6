package ode

import (
	"context"
	"math"
)

// Remainders below this fraction of dt are floating-point noise from the
// step-count division, not a real clipped step.
const remainderEps = 1e-9

// Odeint integrates dy/dt = f(y, t) from y0 over the given time
// specification and returns the resulting trajectory.
//
// If the stepper implements ErrorStepper it is driven by the adaptive
// controller: for FixedHorizon specs Dt becomes the initial step size and
// every accepted step is recorded; for ExplicitPoints the controller
// sub-steps internally and records only the requested points. For plain
// steppers the adaptive fields of cfg are ignored.
//
// On ErrDiverged or ErrStepUnderflow the trajectory accumulated so far is
// returned alongside a *IntegrationError describing where integration
// stopped. Validation failures return a nil trajectory and ErrInvalidStep
// before any RHS invocation.
func Odeint(ctx context.Context, s Stepper, f RHS, y0 State, spec TimeSpec, cfg Config) (*Trajectory, error) {
	if s == nil {
		return nil, invalidStep("nil stepper")
	}
	if f == nil {
		return nil, invalidStep("nil rhs function")
	}
	if len(y0) == 0 {
		return nil, invalidStep("empty initial state")
	}
	if !y0.IsValid() {
		return nil, invalidStep("non-finite initial state")
	}
	if spec == nil {
		return nil, invalidStep("nil time specification")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	if es, ok := s.(ErrorStepper); ok {
		return odeintAdaptive(ctx, es, f, y0, spec, cfg)
	}
	return odeintFixed(ctx, s, f, y0, spec, cfg)
}

func odeintFixed(ctx context.Context, s Stepper, f RHS, y0 State, spec TimeSpec, cfg Config) (*Trajectory, error) {
	switch ts := spec.(type) {
	case FixedHorizon:
		return fixedHorizon(ctx, s, f, y0, ts, cfg)
	case ExplicitPoints:
		return explicitPoints(ctx, s, f, y0, ts, cfg)
	default:
		return nil, invalidStep("unsupported time specification %T", spec)
	}
}

func fixedHorizon(ctx context.Context, s Stepper, f RHS, y0 State, ts FixedHorizon, cfg Config) (*Trajectory, error) {
	n := ts.wholeSteps()
	tEnd := ts.end()
	traj := newTrajectory(n + 2)

	y := y0.Clone()
	t := ts.T0
	record(cfg, traj, t, y)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return traj, err
		}
		next, _, err := s.Step(f, y, t, ts.Dt)
		if err != nil {
			return traj, &IntegrationError{Step: i, Time: t, LastState: y, LastDt: ts.Dt, Wrapped: err}
		}
		if !next.IsValid() {
			return traj, &IntegrationError{Step: i, Time: t, LastState: y, LastDt: ts.Dt, Wrapped: ErrDiverged}
		}
		// Multiplicative time bookkeeping avoids additive drift; the last
		// whole step snaps onto the horizon when the division was exact.
		t = ts.T0 + float64(i+1)*ts.Dt
		if math.Abs(tEnd-t) <= remainderEps*ts.Dt {
			t = tEnd
		}
		y = next
		record(cfg, traj, t, y)
	}

	if rem := tEnd - t; rem > remainderEps*ts.Dt {
		next, _, err := s.Step(f, y, t, rem)
		if err != nil {
			return traj, &IntegrationError{Step: n, Time: t, LastState: y, LastDt: rem, Wrapped: err}
		}
		if !next.IsValid() {
			return traj, &IntegrationError{Step: n, Time: t, LastState: y, LastDt: rem, Wrapped: ErrDiverged}
		}
		record(cfg, traj, tEnd, next)
	}
	return traj, nil
}

func explicitPoints(ctx context.Context, s Stepper, f RHS, y0 State, ts ExplicitPoints, cfg Config) (*Trajectory, error) {
	traj := newTrajectory(len(ts.Times))

	y := y0.Clone()
	record(cfg, traj, ts.Times[0], y)

	// One step per requested pair, sized to land on the next point.
	for i := 1; i < len(ts.Times); i++ {
		if err := ctx.Err(); err != nil {
			return traj, err
		}
		dt := ts.Times[i] - ts.Times[i-1]
		next, _, err := s.Step(f, y, ts.Times[i-1], dt)
		if err != nil {
			return traj, &IntegrationError{Step: i - 1, Time: ts.Times[i-1], LastState: y, LastDt: dt, Wrapped: err}
		}
		if !next.IsValid() {
			return traj, &IntegrationError{Step: i - 1, Time: ts.Times[i-1], LastState: y, LastDt: dt, Wrapped: ErrDiverged}
		}
		y = next
		record(cfg, traj, ts.Times[i], y)
	}
	return traj, nil
}

func record(cfg Config, traj *Trajectory, t float64, y State) {
	traj.append(t, y)
	for _, ob := range cfg.Observers {
		ob.OnStep(y, t)
	}
}

// SymplecticOdeint integrates a separable Hamiltonian system from
// (q0, p0). Symplectic steppers take this dedicated entry point so the
// separability contract is enforced at the call boundary instead of by
// runtime inspection of states. The staggering of position and momentum
// updates is owned entirely by the stepper. Error policy matches Odeint.
func SymplecticOdeint(ctx context.Context, s SymplecticStepper, sys Separable, q0, p0 State, spec TimeSpec, cfg Config) (*PhaseTrajectory, error) {
	if s == nil {
		return nil, invalidStep("nil stepper")
	}
	if sys.DQ == nil || sys.DP == nil {
		return nil, invalidStep("separable system needs both DQ and DP")
	}
	if len(q0) == 0 || len(q0) != len(p0) {
		return nil, invalidStep("position and momentum must be non-empty and equally sized, got %d and %d", len(q0), len(p0))
	}
	if !q0.IsValid() || !p0.IsValid() {
		return nil, invalidStep("non-finite initial state")
	}
	if spec == nil {
		return nil, invalidStep("nil time specification")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	switch ts := spec.(type) {
	case FixedHorizon:
		return symplecticHorizon(ctx, s, sys, q0, p0, ts, cfg)
	case ExplicitPoints:
		return symplecticPoints(ctx, s, sys, q0, p0, ts, cfg)
	default:
		return nil, invalidStep("unsupported time specification %T", spec)
	}
}

func symplecticHorizon(ctx context.Context, s SymplecticStepper, sys Separable, q0, p0 State, ts FixedHorizon, cfg Config) (*PhaseTrajectory, error) {
	n := ts.wholeSteps()
	tEnd := ts.end()
	traj := newPhaseTrajectory(n + 2)

	q, p := q0.Clone(), p0.Clone()
	t := ts.T0
	recordPhase(cfg, traj, t, q, p)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return traj, err
		}
		qn, pn, _, err := s.SymplecticStep(sys, q, p, t, ts.Dt)
		if err != nil {
			return traj, phaseError(i, t, q, p, ts.Dt, err)
		}
		if !qn.IsValid() || !pn.IsValid() {
			return traj, phaseError(i, t, q, p, ts.Dt, ErrDiverged)
		}
		t = ts.T0 + float64(i+1)*ts.Dt
		if math.Abs(tEnd-t) <= remainderEps*ts.Dt {
			t = tEnd
		}
		q, p = qn, pn
		recordPhase(cfg, traj, t, q, p)
	}

	if rem := tEnd - t; rem > remainderEps*ts.Dt {
		qn, pn, _, err := s.SymplecticStep(sys, q, p, t, rem)
		if err != nil {
			return traj, phaseError(n, t, q, p, rem, err)
		}
		if !qn.IsValid() || !pn.IsValid() {
			return traj, phaseError(n, t, q, p, rem, ErrDiverged)
		}
		recordPhase(cfg, traj, tEnd, qn, pn)
	}
	return traj, nil
}

func symplecticPoints(ctx context.Context, s SymplecticStepper, sys Separable, q0, p0 State, ts ExplicitPoints, cfg Config) (*PhaseTrajectory, error) {
	traj := newPhaseTrajectory(len(ts.Times))

	q, p := q0.Clone(), p0.Clone()
	recordPhase(cfg, traj, ts.Times[0], q, p)

	for i := 1; i < len(ts.Times); i++ {
		if err := ctx.Err(); err != nil {
			return traj, err
		}
		dt := ts.Times[i] - ts.Times[i-1]
		qn, pn, _, err := s.SymplecticStep(sys, q, p, ts.Times[i-1], dt)
		if err != nil {
			return traj, phaseError(i-1, ts.Times[i-1], q, p, dt, err)
		}
		if !qn.IsValid() || !pn.IsValid() {
			return traj, phaseError(i-1, ts.Times[i-1], q, p, dt, ErrDiverged)
		}
		q, p = qn, pn
		recordPhase(cfg, traj, ts.Times[i], q, p)
	}
	return traj, nil
}

func recordPhase(cfg Config, traj *PhaseTrajectory, t float64, q, p State) {
	traj.append(t, q, p)
	if len(cfg.Observers) == 0 {
		return
	}
	packed := make(State, 0, len(q)+len(p))
	packed = append(packed, q...)
	packed = append(packed, p...)
	for _, ob := range cfg.Observers {
		ob.OnStep(packed, t)
	}
}

func phaseError(step int, t float64, q, p State, dt float64, wrapped error) *IntegrationError {
	last := make(State, 0, len(q)+len(p))
	last = append(last, q...)
	last = append(last, p...)
	return &IntegrationError{Step: step, Time: t, LastState: last, LastDt: dt, Wrapped: wrapped}
}
