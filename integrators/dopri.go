package integrators

import "github.com/mseri/owl-ode/ode"

// Dormand-Prince 5(4) coefficients.
var (
	dpA2 = 1.0 / 5.0
	dpA3 = 3.0 / 10.0
	dpA4 = 4.0 / 5.0
	dpA5 = 8.0 / 9.0

	dpB21 = 1.0 / 5.0
	dpB31 = 3.0 / 40.0
	dpB32 = 9.0 / 40.0
	dpB41 = 44.0 / 45.0
	dpB42 = -56.0 / 15.0
	dpB43 = 32.0 / 9.0
	dpB51 = 19372.0 / 6561.0
	dpB52 = -25360.0 / 2187.0
	dpB53 = 64448.0 / 6561.0
	dpB54 = -212.0 / 729.0
	dpB61 = 9017.0 / 3168.0
	dpB62 = -355.0 / 33.0
	dpB63 = 46732.0 / 5247.0
	dpB64 = 49.0 / 176.0
	dpB65 = -5103.0 / 18656.0

	dpC1 = 35.0 / 384.0
	dpC3 = 500.0 / 1113.0
	dpC4 = 125.0 / 192.0
	dpC5 = -2187.0 / 6784.0
	dpC6 = 11.0 / 84.0

	dpD1 = dpC1 - 5179.0/57600.0
	dpD3 = dpC3 - 7571.0/16695.0
	dpD4 = dpC4 - 393.0/640.0
	dpD5 = dpC5 - -92097.0/339200.0
	dpD6 = dpC6 - 187.0/2100.0
	dpD7 = -1.0 / 40.0
)

// DormandPrince is the 5(4) embedded Runge-Kutta pair. StepWithError
// returns the fifth-order candidate and the norm of the difference
// between the fifth- and fourth-order candidates.
type DormandPrince struct {
	norm func(ode.State) float64
}

func NewDormandPrince() *DormandPrince {
	return &DormandPrince{norm: ode.State.Norm}
}

// WithNorm selects the norm used for the error estimate (default L2).
func (d *DormandPrince) WithNorm(norm func(ode.State) float64) *DormandPrince {
	d.norm = norm
	return d
}

func (d *DormandPrince) Order() int { return 5 }

func (d *DormandPrince) Step(f ode.RHS, y ode.State, t, dt float64) (ode.State, float64, error) {
	next, tNext, _, err := d.StepWithError(f, y, t, dt)
	return next, tNext, err
}

func (d *DormandPrince) StepWithError(f ode.RHS, y ode.State, t, dt float64) (ode.State, float64, float64, error) {
	if err := checkStep(dt); err != nil {
		return nil, t, 0, err
	}
	n := len(y)

	k1 := f(y, t)

	y2 := make(ode.State, n)
	for i := 0; i < n; i++ {
		y2[i] = y[i] + dt*dpB21*k1[i]
	}
	k2 := f(y2, t+dpA2*dt)

	y3 := make(ode.State, n)
	for i := 0; i < n; i++ {
		y3[i] = y[i] + dt*(dpB31*k1[i]+dpB32*k2[i])
	}
	k3 := f(y3, t+dpA3*dt)

	y4 := make(ode.State, n)
	for i := 0; i < n; i++ {
		y4[i] = y[i] + dt*(dpB41*k1[i]+dpB42*k2[i]+dpB43*k3[i])
	}
	k4 := f(y4, t+dpA4*dt)

	y5 := make(ode.State, n)
	for i := 0; i < n; i++ {
		y5[i] = y[i] + dt*(dpB51*k1[i]+dpB52*k2[i]+dpB53*k3[i]+dpB54*k4[i])
	}
	k5 := f(y5, t+dpA5*dt)

	y6 := make(ode.State, n)
	for i := 0; i < n; i++ {
		y6[i] = y[i] + dt*(dpB61*k1[i]+dpB62*k2[i]+dpB63*k3[i]+dpB64*k4[i]+dpB65*k5[i])
	}
	k6 := f(y6, t+dt)

	next := make(ode.State, n)
	for i := 0; i < n; i++ {
		next[i] = y[i] + dt*(dpC1*k1[i]+dpC3*k3[i]+dpC4*k4[i]+dpC5*k5[i]+dpC6*k6[i])
	}

	// FSAL stage, only used for the error estimate here.
	k7 := f(next, t+dt)

	diff := make(ode.State, n)
	for i := 0; i < n; i++ {
		diff[i] = dt * (dpD1*k1[i] + dpD3*k3[i] + dpD4*k4[i] + dpD5*k5[i] + dpD6*k6[i] + dpD7*k7[i])
	}
	return next, t + dt, d.norm(diff), nil
}
