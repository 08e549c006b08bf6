package models

import "github.com/mseri/owl-ode/ode"

// HarmonicOscillator is q'' = -Omega^2 q with unit mass, as a 2n-dim
// first-order system [q..., p...].
type HarmonicOscillator struct {
	Omega float64
}

func NewHarmonicOscillator() *HarmonicOscillator {
	return &HarmonicOscillator{Omega: 1.0}
}

// RHS treats y as the packed state [q..., p...].
func (h *HarmonicOscillator) RHS(y ode.State, t float64) ode.State {
	n := len(y) / 2
	dy := make(ode.State, len(y))
	w2 := h.Omega * h.Omega
	for i := 0; i < n; i++ {
		dy[i] = y[n+i]
		dy[n+i] = -w2 * y[i]
	}
	return dy
}

// Separable returns the split Hamiltonian form for symplectic steppers:
// dq/dt = p, dp/dt = -Omega^2 q.
func (h *HarmonicOscillator) Separable() ode.Separable {
	w2 := h.Omega * h.Omega
	return ode.Separable{
		DQ: func(p ode.State, t float64) ode.State {
			return p.Clone()
		},
		DP: func(q ode.State, t float64) ode.State {
			return q.Scale(-w2)
		},
	}
}

// Energy is the Hamiltonian H = (|p|^2 + Omega^2 |q|^2) / 2.
func (h *HarmonicOscillator) Energy(q, p ode.State) float64 {
	e := 0.0
	w2 := h.Omega * h.Omega
	for i := range q {
		e += 0.5 * (p[i]*p[i] + w2*q[i]*q[i])
	}
	return e
}

// Hamiltonian evaluates Energy on a packed [q..., p...] state.
func (h *HarmonicOscillator) Hamiltonian(y ode.State) float64 {
	n := len(y) / 2
	return h.Energy(ode.State(y[:n]), ode.State(y[n:]))
}
