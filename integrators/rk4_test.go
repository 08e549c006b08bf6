package integrators_test

import (
	"errors"
	"math"
	"testing"

	"github.com/mseri/owl-ode/integrators"
	"github.com/mseri/owl-ode/ode"
)

func harmonicRHS(y ode.State, t float64) ode.State {
	return ode.State{y[1], -y[0]}
}

func decayRHS(y ode.State, t float64) ode.State {
	return ode.State{-y[0]}
}

func TestRK4Accuracy(t *testing.T) {
	integ := integrators.NewRK4()

	y := ode.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	var err error
	for i := 0; i < steps; i++ {
		y, _, err = integ.Step(harmonicRHS, y, float64(i)*dt, dt)
		if err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}

	expectedQ := math.Cos(float64(steps) * dt)
	expectedP := -math.Sin(float64(steps) * dt)

	if math.Abs(y[0]-expectedQ) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", y[0], expectedQ)
	}
	if math.Abs(y[1]-expectedP) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", y[1], expectedP)
	}
}

func TestEuler_SingleStep(t *testing.T) {
	integ := integrators.NewEuler()
	next, tNext, err := integ.Step(decayRHS, ode.State{1}, 0, 0.25)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if next[0] != 0.75 {
		t.Errorf("Euler step = %v, want 0.75", next[0])
	}
	if tNext != 0.25 {
		t.Errorf("next time = %v, want 0.25", tNext)
	}
}

func TestMidpoint_SecondOrder(t *testing.T) {
	// Halving dt should shrink the global error roughly fourfold.
	errAt := func(dt float64) float64 {
		integ := integrators.NewMidpoint()
		y := ode.State{1}
		steps := int(math.Round(1 / dt))
		for i := 0; i < steps; i++ {
			var err error
			y, _, err = integ.Step(decayRHS, y, float64(i)*dt, dt)
			if err != nil {
				t.Fatalf("step failed: %v", err)
			}
		}
		return math.Abs(y[0] - math.Exp(-1))
	}

	ratio := errAt(0.1) / errAt(0.05)
	if ratio < 3 || ratio > 5 {
		t.Errorf("error ratio %v, want ~4 for a second-order method", ratio)
	}
}

func TestStep_InvalidDt(t *testing.T) {
	steppers := map[string]ode.Stepper{
		"euler":    integrators.NewEuler(),
		"midpoint": integrators.NewMidpoint(),
		"rk4":      integrators.NewRK4(),
		"rk23":     integrators.NewBogackiShampine(),
		"rk45":     integrators.NewDormandPrince(),
	}

	for name, s := range steppers {
		for _, dt := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
			calls := 0
			counting := func(y ode.State, tm float64) ode.State {
				calls++
				return ode.State{-y[0]}
			}
			_, _, err := s.Step(counting, ode.State{1}, 0, dt)
			if !errors.Is(err, ode.ErrInvalidStep) {
				t.Errorf("%s: dt=%v: err = %v, want ErrInvalidStep", name, dt, err)
			}
			if calls != 0 {
				t.Errorf("%s: dt=%v: RHS evaluated on invalid step", name, dt)
			}
		}
	}
}
