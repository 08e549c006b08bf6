package integrators

import (
	"math"

	"github.com/mseri/owl-ode/ode"
)

// Composition is a splitting integrator for separable Hamiltonian
// systems: per stage s it advances the position by cs[s]*dt along DQ and
// then the momentum by ds[s]*dt along DP, using the freshly updated
// position. The stage order is part of each method's definition and must
// not be reordered; it determines the conservation properties.
type Composition struct {
	name   string
	cs, ds []float64
	order  int
}

func (c *Composition) Name() string { return c.name }
func (c *Composition) Order() int   { return c.order }

func (c *Composition) SymplecticStep(sys ode.Separable, q, p ode.State, t, dt float64) (ode.State, ode.State, float64, error) {
	if err := checkStep(dt); err != nil {
		return nil, nil, t, err
	}
	n := len(q)
	qn, pn := q.Clone(), p.Clone()
	tau := t

	for s := range c.cs {
		if cc := c.cs[s]; cc != 0 {
			dq := sys.DQ(pn, tau)
			for i := 0; i < n; i++ {
				qn[i] += cc * dt * dq[i]
			}
			tau += cc * dt
		}
		if dc := c.ds[s]; dc != 0 {
			dp := sys.DP(qn, tau)
			for i := 0; i < n; i++ {
				pn[i] += dc * dt * dp[i]
			}
		}
	}
	return qn, pn, t + dt, nil
}

// NewSymplecticEuler returns the first-order symplectic Euler method:
// full position step, then full momentum step at the updated position.
func NewSymplecticEuler() *Composition {
	return &Composition{
		name:  "symplectic_euler",
		cs:    []float64{1},
		ds:    []float64{1},
		order: 1,
	}
}

// NewLeapfrog returns the second-order Stormer-Verlet method. The
// staggering is fixed: position half-step, momentum full-step, position
// half-step.
func NewLeapfrog() *Composition {
	return &Composition{
		name:  "leapfrog",
		cs:    []float64{0.5, 0.5},
		ds:    []float64{1, 0},
		order: 2,
	}
}

// NewPseudoLeapfrog returns the velocity form of Verlet: momentum
// half-step, position full-step, momentum half-step.
func NewPseudoLeapfrog() *Composition {
	return &Composition{
		name:  "pseudoleapfrog",
		cs:    []float64{0, 1},
		ds:    []float64{0.5, 0.5},
		order: 2,
	}
}

// NewRuth3 returns Ruth's third-order splitting method, in the
// position-first pairing matching the stage loop above.
func NewRuth3() *Composition {
	return &Composition{
		name:  "ruth3",
		cs:    []float64{1, -2.0 / 3.0, 2.0 / 3.0},
		ds:    []float64{-1.0 / 24.0, 3.0 / 4.0, 7.0 / 24.0},
		order: 3,
	}
}

// NewRuth4 returns the fourth-order Forest-Ruth (Candy-Rozmus)
// composition.
func NewRuth4() *Composition {
	cbrt2 := math.Cbrt(2)
	den := 2 - cbrt2
	c1 := 1 / (2 * den)
	c2 := (1 - cbrt2) / (2 * den)
	d1 := 1 / den
	d2 := -cbrt2 / den
	return &Composition{
		name:  "ruth4",
		cs:    []float64{c1, c2, c2, c1},
		ds:    []float64{d1, d2, d1, 0},
		order: 4,
	}
}
