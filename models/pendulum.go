package models

import (
	"math"

	"github.com/mseri/owl-ode/ode"
)

// Pendulum is a damped planar pendulum over the state [theta, omega].
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.81,
	}
}

func (p *Pendulum) RHS(y ode.State, t float64) ode.State {
	theta, omega := y[0], y[1]
	alpha := (-p.Damping*omega - p.Mass*p.Gravity*p.Length*math.Sin(theta)) / (p.Mass * p.Length * p.Length)
	return ode.State{omega, alpha}
}

// Separable returns the split Hamiltonian form with q = theta and
// p = m*l^2*omega. Only valid for the undamped pendulum; the damping term
// is not Hamiltonian and is ignored here.
func (p *Pendulum) Separable() ode.Separable {
	ml2 := p.Mass * p.Length * p.Length
	mgl := p.Mass * p.Gravity * p.Length
	return ode.Separable{
		DQ: func(mom ode.State, t float64) ode.State {
			return mom.Scale(1 / ml2)
		},
		DP: func(q ode.State, t float64) ode.State {
			out := make(ode.State, len(q))
			for i, theta := range q {
				out[i] = -mgl * math.Sin(theta)
			}
			return out
		},
	}
}

// Energy is H = p^2/(2ml^2) + mgl(1 - cos q).
func (p *Pendulum) Energy(q, mom ode.State) float64 {
	ml2 := p.Mass * p.Length * p.Length
	mgl := p.Mass * p.Gravity * p.Length
	e := 0.0
	for i := range q {
		e += mom[i]*mom[i]/(2*ml2) + mgl*(1-math.Cos(q[i]))
	}
	return e
}
