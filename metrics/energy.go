// Package metrics provides trajectory observers implementing
// ode.Observer.
package metrics

import (
	"math"

	"github.com/mseri/owl-ode/ode"
)

// EnergyDrift tracks the maximum relative drift of an energy function
// over the recorded points, taking the first observation as baseline.
type EnergyDrift struct {
	name     string
	energy   func(ode.State) float64
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(energy func(ode.State) float64) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		energy: energy,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) OnStep(y ode.State, t float64) {
	value := e.energy(y)

	if e.samples == 0 {
		e.initial = value
	}
	e.current = value
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(value-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.current = 0
	e.maxDrift = 0
	e.samples = 0
}
