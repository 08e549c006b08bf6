package models

import (
	"math"

	"github.com/mseri/owl-ode/ode"
)

// Kepler is the planar two-body problem in reduced units (GM = 1), with
// q = (x, y) and p the conjugate momentum. A long-horizon separable
// Hamiltonian benchmark: symplectic steppers keep its orbits closed.
type Kepler struct{}

func NewKepler() *Kepler {
	return &Kepler{}
}

// RHS treats y as the packed state [x, y, px, py].
func (k *Kepler) RHS(y ode.State, t float64) ode.State {
	r3 := math.Pow(math.Hypot(y[0], y[1]), 3)
	return ode.State{
		y[2],
		y[3],
		-y[0] / r3,
		-y[1] / r3,
	}
}

func (k *Kepler) Separable() ode.Separable {
	return ode.Separable{
		DQ: func(p ode.State, t float64) ode.State {
			return p.Clone()
		},
		DP: func(q ode.State, t float64) ode.State {
			r3 := math.Pow(math.Hypot(q[0], q[1]), 3)
			return ode.State{-q[0] / r3, -q[1] / r3}
		},
	}
}

// Energy is H = |p|^2/2 - 1/|q|.
func (k *Kepler) Energy(q, p ode.State) float64 {
	return 0.5*(p[0]*p[0]+p[1]*p[1]) - 1/math.Hypot(q[0], q[1])
}

// CircularOrbit returns initial conditions for a circular orbit of
// radius r.
func (k *Kepler) CircularOrbit(r float64) (q, p ode.State) {
	v := 1 / math.Sqrt(r)
	return ode.State{r, 0}, ode.State{0, v}
}
