package models

import "github.com/mseri/owl-ode/ode"

// VanDerPol is the Van der Pol oscillator over [y, y']. Large Mu makes
// the relaxation oscillation stiff, which exercises the adaptive
// controller.
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol(mu float64) *VanDerPol {
	return &VanDerPol{Mu: mu}
}

func (v *VanDerPol) RHS(y ode.State, t float64) ode.State {
	return ode.State{
		y[1],
		v.Mu*(1-y[0]*y[0])*y[1] - y[0],
	}
}
