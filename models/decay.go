// Package models collects small reference ODE systems used by the CLI
// and the test suite: each exposes its right-hand side as an ode.RHS and,
// where the system is a separable Hamiltonian, the split form plus an
// energy function.
package models

import (
	"math"

	"github.com/mseri/owl-ode/ode"
)

// Decay is linear exponential decay, y' = -Rate*y componentwise. Its
// closed-form solution makes it the canonical accuracy benchmark.
type Decay struct {
	Rate float64
}

func NewDecay(rate float64) *Decay {
	return &Decay{Rate: rate}
}

func (d *Decay) RHS(y ode.State, t float64) ode.State {
	dy := make(ode.State, len(y))
	for i, v := range y {
		dy[i] = -d.Rate * v
	}
	return dy
}

// Exact returns the analytic solution y0*exp(-Rate*t).
func (d *Decay) Exact(y0 ode.State, t float64) ode.State {
	out := make(ode.State, len(y0))
	decay := math.Exp(-d.Rate * t)
	for i, v := range y0 {
		out[i] = v * decay
	}
	return out
}
