package ode

import (
	"context"
	"math"
)

// controller implements the accept/reject loop for embedded-pair
// steppers. It is scoped to a single integration call and never shared.
type controller struct {
	dt        float64
	tol       float64
	minDt     float64
	growthCap float64
	shrinkCap float64
	invOrder  float64
	steps     int
}

func newController(cfg Config, order int, dt0 float64) *controller {
	if order < 1 {
		order = 1
	}
	return &controller{
		dt:        dt0,
		tol:       cfg.Tolerance,
		minDt:     cfg.MinDt,
		growthCap: cfg.GrowthCap,
		shrinkCap: cfg.ShrinkCap,
		invOrder:  1.0 / float64(order),
	}
}

// accept proposes the next step size after a passing error estimate:
// used * min(growthCap, safety*(tol/err)^(1/order)).
func (c *controller) accept(used, errEst float64) {
	factor := c.growthCap
	if errEst > 0 {
		factor = math.Min(c.growthCap, adaptiveSafety*math.Pow(c.tol/errEst, c.invOrder))
	}
	c.dt = used * factor
}

// reject shrinks the proposal by max(shrinkCap, safety*(tol/err)^(1/order))
// and reports whether the shrunken step is still above the minimum.
func (c *controller) reject(used, errEst float64) bool {
	factor := math.Max(c.shrinkCap, adaptiveSafety*math.Pow(c.tol/errEst, c.invOrder))
	c.dt = used * factor
	return c.dt >= c.minDt
}

// advance walks from (y, t) to target, calling onAccept for every
// accepted step. Rejected steps advance neither time nor state. The final
// step is clipped to land exactly on target.
func (c *controller) advance(ctx context.Context, s ErrorStepper, f RHS, y State, t, target float64, onAccept func(float64, State)) (State, error) {
	for t < target {
		if err := ctx.Err(); err != nil {
			return y, err
		}
		dt := c.dt
		clipped := false
		if t+dt >= target {
			dt = target - t
			clipped = true
		}

		next, _, errEst, err := s.StepWithError(f, y, t, dt)
		if err != nil {
			return y, &IntegrationError{Step: c.steps, Time: t, LastState: y, LastDt: dt, Wrapped: err}
		}
		if !next.IsValid() || math.IsNaN(errEst) || math.IsInf(errEst, 0) {
			return y, &IntegrationError{Step: c.steps, Time: t, LastState: y, LastDt: dt, Wrapped: ErrDiverged}
		}

		if errEst <= c.tol {
			if clipped {
				t = target
			} else {
				t += dt
			}
			y = next
			c.steps++
			if onAccept != nil {
				onAccept(t, y)
			}
			c.accept(dt, errEst)
			continue
		}

		if !c.reject(dt, errEst) {
			return y, &IntegrationError{Step: c.steps, Time: t, LastState: y, LastDt: c.dt, Wrapped: ErrStepUnderflow}
		}
	}
	return y, nil
}

func odeintAdaptive(ctx context.Context, s ErrorStepper, f RHS, y0 State, spec TimeSpec, cfg Config) (*Trajectory, error) {
	switch ts := spec.(type) {
	case FixedHorizon:
		traj := newTrajectory(ts.wholeSteps() + 2)
		y := y0.Clone()
		record(cfg, traj, ts.T0, y)

		c := newController(cfg, s.Order(), ts.Dt)
		_, err := c.advance(ctx, s, f, y, ts.T0, ts.end(), func(t float64, y State) {
			record(cfg, traj, t, y)
		})
		return traj, err

	case ExplicitPoints:
		traj := newTrajectory(len(ts.Times))
		y := y0.Clone()
		record(cfg, traj, ts.Times[0], y)

		c := newController(cfg, s.Order(), ts.Times[1]-ts.Times[0])
		for i := 1; i < len(ts.Times); i++ {
			next, err := c.advance(ctx, s, f, y, ts.Times[i-1], ts.Times[i], nil)
			if err != nil {
				return traj, err
			}
			y = next
			record(cfg, traj, ts.Times[i], y)
		}
		return traj, nil

	default:
		return nil, invalidStep("unsupported time specification %T", spec)
	}
}
