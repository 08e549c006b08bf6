// Package registry maps CLI names to stepper and model constructors.
package registry

import (
	"fmt"
	"sort"

	"github.com/mseri/owl-ode/integrators"
	"github.com/mseri/owl-ode/models"
	"github.com/mseri/owl-ode/ode"
)

// Model bundles a named ODE system with a default initial state, an
// optional conserved-energy function over the packed state and, for
// separable Hamiltonian systems, the split form consumed by symplectic
// steppers. Init is packed [q..., p...] whenever Separable is set.
type Model struct {
	Name      string
	RHS       ode.RHS
	Init      ode.State
	Energy    func(ode.State) float64
	Separable *ode.Separable
}

type Registry struct {
	steppers   map[string]func() ode.Stepper
	symplectic map[string]func() ode.SymplecticStepper
	models     map[string]func() Model
}

func New() *Registry {
	r := &Registry{
		steppers:   make(map[string]func() ode.Stepper),
		symplectic: make(map[string]func() ode.SymplecticStepper),
		models:     make(map[string]func() Model),
	}

	r.steppers["euler"] = func() ode.Stepper { return integrators.NewEuler() }
	r.steppers["midpoint"] = func() ode.Stepper { return integrators.NewMidpoint() }
	r.steppers["rk4"] = func() ode.Stepper { return integrators.NewRK4() }
	r.steppers["rk23"] = func() ode.Stepper { return integrators.NewBogackiShampine() }
	r.steppers["rk45"] = func() ode.Stepper { return integrators.NewDormandPrince() }

	r.symplectic["symplectic_euler"] = func() ode.SymplecticStepper { return integrators.NewSymplecticEuler() }
	r.symplectic["leapfrog"] = func() ode.SymplecticStepper { return integrators.NewLeapfrog() }
	r.symplectic["pseudoleapfrog"] = func() ode.SymplecticStepper { return integrators.NewPseudoLeapfrog() }
	r.symplectic["ruth3"] = func() ode.SymplecticStepper { return integrators.NewRuth3() }
	r.symplectic["ruth4"] = func() ode.SymplecticStepper { return integrators.NewRuth4() }

	r.models["decay"] = func() Model {
		m := models.NewDecay(1.0)
		return Model{Name: "decay", RHS: m.RHS, Init: ode.State{1.0}}
	}
	r.models["pendulum"] = func() Model {
		m := models.NewPendulum()
		// The split form drops the damping term; see models.Pendulum.
		sys := m.Separable()
		return Model{Name: "pendulum", RHS: m.RHS, Init: ode.State{0.5, 0}, Separable: &sys}
	}
	r.models["harmonic"] = func() Model {
		m := models.NewHarmonicOscillator()
		sys := m.Separable()
		return Model{Name: "harmonic", RHS: m.RHS, Init: ode.State{1, 0}, Energy: m.Hamiltonian, Separable: &sys}
	}
	r.models["vanderpol"] = func() Model {
		m := models.NewVanDerPol(5.0)
		return Model{Name: "vanderpol", RHS: m.RHS, Init: ode.State{2, 0}}
	}
	r.models["kepler"] = func() Model {
		m := models.NewKepler()
		q, p := m.CircularOrbit(1.0)
		init := append(q.Clone(), p...)
		sys := m.Separable()
		return Model{
			Name: "kepler",
			RHS:  m.RHS,
			Init: init,
			Energy: func(y ode.State) float64 {
				return m.Energy(ode.State(y[:2]), ode.State(y[2:]))
			},
			Separable: &sys,
		}
	}

	return r
}

func (r *Registry) Stepper(name string) (ode.Stepper, error) {
	mk, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown stepper %q (have %v)", name, r.StepperNames())
	}
	return mk(), nil
}

func (r *Registry) SymplecticStepper(name string) (ode.SymplecticStepper, error) {
	mk, ok := r.symplectic[name]
	if !ok {
		return nil, fmt.Errorf("unknown symplectic stepper %q (have %v)", name, r.SymplecticNames())
	}
	return mk(), nil
}

func (r *Registry) Model(name string) (Model, error) {
	mk, ok := r.models[name]
	if !ok {
		return Model{}, fmt.Errorf("unknown model %q (have %v)", name, r.ModelNames())
	}
	return mk(), nil
}

func (r *Registry) StepperNames() []string    { return sortedKeys(r.steppers) }
func (r *Registry) SymplecticNames() []string { return sortedKeys(r.symplectic) }
func (r *Registry) ModelNames() []string      { return sortedKeys(r.models) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
