package integrators

import "github.com/mseri/owl-ode/ode"

// RK4 is the classical 4-stage fourth-order Runge-Kutta method.
type RK4 struct {
	k1, k2, k3, k4 ode.State
	scratch        ode.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(ode.State, n)
		r.k2 = make(ode.State, n)
		r.k3 = make(ode.State, n)
		r.k4 = make(ode.State, n)
		r.scratch = make(ode.State, n)
	}
}

func (r *RK4) Step(f ode.RHS, y ode.State, t, dt float64) (ode.State, float64, error) {
	if err := checkStep(dt); err != nil {
		return nil, t, err
	}
	n := len(y)
	r.ensureScratch(n)

	copy(r.k1, f(y, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, f(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, f(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*r.k3[i]
	}
	copy(r.k4, f(r.scratch, t+dt))

	next := make(ode.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		next[i] = y[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return next, t + dt, nil
}
