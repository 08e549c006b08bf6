package integrators

import "github.com/mseri/owl-ode/ode"

// Euler is the explicit first-order method y' = y + dt*f(y, t).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f ode.RHS, y ode.State, t, dt float64) (ode.State, float64, error) {
	if err := checkStep(dt); err != nil {
		return nil, t, err
	}
	dy := f(y, t)
	next := make(ode.State, len(y))
	for i := range y {
		next[i] = y[i] + dt*dy[i]
	}
	return next, t + dt, nil
}

// Midpoint is the explicit second-order midpoint method (RK2).
type Midpoint struct {
	scratch ode.State
}

func NewMidpoint() *Midpoint {
	return &Midpoint{}
}

func (m *Midpoint) Step(f ode.RHS, y ode.State, t, dt float64) (ode.State, float64, error) {
	if err := checkStep(dt); err != nil {
		return nil, t, err
	}
	n := len(y)
	if len(m.scratch) != n {
		m.scratch = make(ode.State, n)
	}

	k1 := f(y, t)
	for i := 0; i < n; i++ {
		m.scratch[i] = y[i] + dt*0.5*k1[i]
	}
	k2 := f(m.scratch, t+dt*0.5)

	next := make(ode.State, n)
	for i := 0; i < n; i++ {
		next[i] = y[i] + dt*k2[i]
	}
	return next, t + dt, nil
}
