package integrators_test

import (
	"testing"

	"github.com/mseri/owl-ode/integrators"
	"github.com/mseri/owl-ode/models"
	"github.com/mseri/owl-ode/ode"
)

func BenchmarkEuler(b *testing.B) {
	integ := integrators.NewEuler()
	y := ode.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y, _, _ = integ.Step(harmonicRHS, y, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integ := integrators.NewRK4()
	y := ode.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y, _, _ = integ.Step(harmonicRHS, y, 0, 0.01)
	}
}

func BenchmarkDormandPrince(b *testing.B) {
	integ := integrators.NewDormandPrince()
	y := ode.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y, _, _, _ = integ.StepWithError(harmonicRHS, y, 0, 0.01)
	}
}

func BenchmarkLeapfrog(b *testing.B) {
	sys := models.NewHarmonicOscillator().Separable()
	integ := integrators.NewLeapfrog()
	q, p := ode.State{1.0}, ode.State{0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q, p, _, _ = integ.SymplecticStep(sys, q, p, 0, 0.01)
	}
}

func BenchmarkRuth4(b *testing.B) {
	sys := models.NewHarmonicOscillator().Separable()
	integ := integrators.NewRuth4()
	q, p := ode.State{1.0}, ode.State{0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q, p, _, _ = integ.SymplecticStep(sys, q, p, 0, 0.01)
	}
}

func BenchmarkRK4_Kepler(b *testing.B) {
	m := models.NewKepler()
	integ := integrators.NewRK4()
	q, p := m.CircularOrbit(1.0)
	y := append(q, p...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y, _, _ = integ.Step(m.RHS, y, 0, 0.001)
	}
}

func BenchmarkLeapfrog_Kepler(b *testing.B) {
	m := models.NewKepler()
	integ := integrators.NewLeapfrog()
	q, p := m.CircularOrbit(1.0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q, p, _, _ = integ.SymplecticStep(m.Separable(), q, p, 0, 0.001)
	}
}
