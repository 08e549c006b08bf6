package integrators_test

import (
	"math"
	"testing"

	"github.com/mseri/owl-ode/integrators"
	"github.com/mseri/owl-ode/ode"
)

func TestDormandPrince_Accuracy(t *testing.T) {
	integ := integrators.NewDormandPrince()

	y := ode.State{1}
	dt := 0.01
	var err error
	for i := 0; i < 100; i++ {
		y, _, err = integ.Step(decayRHS, y, float64(i)*dt, dt)
		if err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}

	if diff := math.Abs(y[0] - math.Exp(-1)); diff > 1e-10 {
		t.Errorf("error at t=1: %e, want < 1e-10", diff)
	}
}

func TestDormandPrince_ErrorEstimate(t *testing.T) {
	integ := integrators.NewDormandPrince()

	_, _, errEst, err := integ.StepWithError(harmonicRHS, ode.State{1, 0}, 0, 0.1)
	if err != nil {
		t.Fatalf("StepWithError failed: %v", err)
	}
	if errEst <= 0 {
		t.Errorf("error estimate = %v, want > 0", errEst)
	}
	if errEst > 1e-4 {
		t.Errorf("error estimate = %v, unexpectedly large for dt=0.1", errEst)
	}

	// The estimate must shrink with the step size.
	_, _, smaller, err := integ.StepWithError(harmonicRHS, ode.State{1, 0}, 0, 0.01)
	if err != nil {
		t.Fatalf("StepWithError failed: %v", err)
	}
	if smaller >= errEst {
		t.Errorf("estimate did not shrink: dt=0.01 gives %v, dt=0.1 gives %v", smaller, errEst)
	}
}

func TestDormandPrince_ReturnsHigherOrderCandidate(t *testing.T) {
	integ := integrators.NewDormandPrince()
	dt := 0.5

	next, _, errEst, err := integ.StepWithError(decayRHS, ode.State{1}, 0, dt)
	if err != nil {
		t.Fatalf("StepWithError failed: %v", err)
	}

	// For a scalar system the estimate is |high - low|, so the embedded
	// fourth-order candidate is next -/+ errEst.
	exact := math.Exp(-dt)
	high := math.Abs(next[0] - exact)
	lowCandidate := math.Abs(next[0] - errEst - exact)
	lowCandidate2 := math.Abs(next[0] + errEst - exact)
	if high >= math.Min(lowCandidate, lowCandidate2) {
		t.Errorf("returned candidate is not the more accurate one: high err %e, low err %e", high, math.Min(lowCandidate, lowCandidate2))
	}
}

func TestDormandPrince_CustomNorm(t *testing.T) {
	l2 := integrators.NewDormandPrince()
	linf := integrators.NewDormandPrince().WithNorm(ode.State.MaxNorm)

	_, _, e2, err := l2.StepWithError(harmonicRHS, ode.State{1, 0}, 0, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	_, _, einf, err := linf.StepWithError(harmonicRHS, ode.State{1, 0}, 0, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if einf > e2 {
		t.Errorf("max norm %v exceeds L2 norm %v of the same vector", einf, e2)
	}
}

func TestBogackiShampine_Accuracy(t *testing.T) {
	integ := integrators.NewBogackiShampine()

	y := ode.State{1}
	dt := 0.01
	var err error
	for i := 0; i < 100; i++ {
		y, _, err = integ.Step(decayRHS, y, float64(i)*dt, dt)
		if err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}
	if diff := math.Abs(y[0] - math.Exp(-1)); diff > 1e-6 {
		t.Errorf("error at t=1: %e, want < 1e-6", diff)
	}
}

func TestAdaptiveOrders(t *testing.T) {
	if got := integrators.NewDormandPrince().Order(); got != 5 {
		t.Errorf("DormandPrince order = %d, want 5", got)
	}
	if got := integrators.NewBogackiShampine().Order(); got != 3 {
		t.Errorf("BogackiShampine order = %d, want 3", got)
	}
}
