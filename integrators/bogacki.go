package integrators

import "github.com/mseri/owl-ode/ode"

// Bogacki-Shampine 3(2) coefficients.
var (
	bsC1 = 2.0 / 9.0
	bsC2 = 1.0 / 3.0
	bsC3 = 4.0 / 9.0

	bsE1 = bsC1 - 7.0/24.0
	bsE2 = bsC2 - 1.0/4.0
	bsE3 = bsC3 - 1.0/3.0
	bsE4 = -1.0 / 8.0
)

// BogackiShampine is the 3(2) embedded Runge-Kutta pair, a cheap
// low-order alternative to DormandPrince. StepWithError returns the
// third-order candidate.
type BogackiShampine struct {
	norm func(ode.State) float64
}

func NewBogackiShampine() *BogackiShampine {
	return &BogackiShampine{norm: ode.State.Norm}
}

// WithNorm selects the norm used for the error estimate (default L2).
func (b *BogackiShampine) WithNorm(norm func(ode.State) float64) *BogackiShampine {
	b.norm = norm
	return b
}

func (b *BogackiShampine) Order() int { return 3 }

func (b *BogackiShampine) Step(f ode.RHS, y ode.State, t, dt float64) (ode.State, float64, error) {
	next, tNext, _, err := b.StepWithError(f, y, t, dt)
	return next, tNext, err
}

func (b *BogackiShampine) StepWithError(f ode.RHS, y ode.State, t, dt float64) (ode.State, float64, float64, error) {
	if err := checkStep(dt); err != nil {
		return nil, t, 0, err
	}
	n := len(y)

	k1 := f(y, t)

	y2 := make(ode.State, n)
	for i := 0; i < n; i++ {
		y2[i] = y[i] + dt*0.5*k1[i]
	}
	k2 := f(y2, t+0.5*dt)

	y3 := make(ode.State, n)
	for i := 0; i < n; i++ {
		y3[i] = y[i] + dt*0.75*k2[i]
	}
	k3 := f(y3, t+0.75*dt)

	next := make(ode.State, n)
	for i := 0; i < n; i++ {
		next[i] = y[i] + dt*(bsC1*k1[i]+bsC2*k2[i]+bsC3*k3[i])
	}

	// FSAL stage closing the embedded second-order candidate.
	k4 := f(next, t+dt)

	diff := make(ode.State, n)
	for i := 0; i < n; i++ {
		diff[i] = dt * (bsE1*k1[i] + bsE2*k2[i] + bsE3*k3[i] + bsE4*k4[i])
	}
	return next, t + dt, b.norm(diff), nil
}
