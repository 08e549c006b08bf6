package registry

import (
	"testing"

	"github.com/mseri/owl-ode/ode"
)

func TestStepperLookup(t *testing.T) {
	r := New()

	for _, name := range []string{"euler", "midpoint", "rk4", "rk23", "rk45"} {
		s, err := r.Stepper(name)
		if err != nil {
			t.Errorf("Stepper(%q) failed: %v", name, err)
			continue
		}
		if s == nil {
			t.Errorf("Stepper(%q) returned nil", name)
		}
	}

	if _, err := r.Stepper("rk99"); err == nil {
		t.Error("expected error for unknown stepper")
	}
}

func TestAdaptiveSteppersImplementErrorStepper(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		adaptive bool
	}{
		{"euler", false},
		{"midpoint", false},
		{"rk4", false},
		{"rk23", true},
		{"rk45", true},
	}
	for _, tt := range tests {
		s, err := r.Stepper(tt.name)
		if err != nil {
			t.Fatalf("Stepper(%q) failed: %v", tt.name, err)
		}
		if _, ok := s.(ode.ErrorStepper); ok != tt.adaptive {
			t.Errorf("%s: ErrorStepper = %v, want %v", tt.name, ok, tt.adaptive)
		}
	}
}

func TestSymplecticLookup(t *testing.T) {
	r := New()

	for _, name := range []string{"symplectic_euler", "leapfrog", "pseudoleapfrog", "ruth3", "ruth4"} {
		s, err := r.SymplecticStepper(name)
		if err != nil {
			t.Errorf("SymplecticStepper(%q) failed: %v", name, err)
			continue
		}
		if s == nil {
			t.Errorf("SymplecticStepper(%q) returned nil", name)
		}
	}

	// Symplectic names are a separate namespace from plain steppers.
	if _, err := r.Stepper("leapfrog"); err == nil {
		t.Error("leapfrog should not resolve as a plain stepper")
	}
}

func TestModelLookup(t *testing.T) {
	r := New()

	for _, name := range []string{"decay", "pendulum", "harmonic", "vanderpol", "kepler"} {
		m, err := r.Model(name)
		if err != nil {
			t.Errorf("Model(%q) failed: %v", name, err)
			continue
		}
		if m.RHS == nil {
			t.Errorf("Model(%q) has nil RHS", name)
		}
		if len(m.Init) == 0 {
			t.Errorf("Model(%q) has empty initial state", name)
		}
		dy := m.RHS(m.Init, 0)
		if len(dy) != len(m.Init) {
			t.Errorf("Model(%q): RHS dim %d, state dim %d", name, len(dy), len(m.Init))
		}
	}

	if _, err := r.Model("lorenz96"); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestModelEnergyFunctions(t *testing.T) {
	r := New()

	harmonic, err := r.Model("harmonic")
	if err != nil {
		t.Fatal(err)
	}
	if harmonic.Energy == nil {
		t.Fatal("harmonic model should expose an energy function")
	}
	if e := harmonic.Energy(harmonic.Init); e != 0.5 {
		t.Errorf("harmonic initial energy = %v, want 0.5", e)
	}

	kepler, err := r.Model("kepler")
	if err != nil {
		t.Fatal(err)
	}
	if e := kepler.Energy(kepler.Init); e != -0.5 {
		t.Errorf("kepler circular orbit energy = %v, want -0.5", e)
	}

	vdp, err := r.Model("vanderpol")
	if err != nil {
		t.Fatal(err)
	}
	if vdp.Energy != nil {
		t.Error("vanderpol is dissipative and should not expose an energy function")
	}
}

func TestModelSeparableForms(t *testing.T) {
	r := New()

	// Hamiltonian models expose the split form so symplectic steppers can
	// run them from the CLI; Init packs [q..., p...].
	for _, name := range []string{"pendulum", "harmonic", "kepler"} {
		m, err := r.Model(name)
		if err != nil {
			t.Fatal(err)
		}
		if m.Separable == nil {
			t.Errorf("%s: expected a separable form", name)
			continue
		}
		if m.Separable.DQ == nil || m.Separable.DP == nil {
			t.Errorf("%s: separable form is missing DQ or DP", name)
			continue
		}
		if len(m.Init)%2 != 0 {
			t.Errorf("%s: packed init has odd size %d", name, len(m.Init))
			continue
		}
		half := len(m.Init) / 2
		dq := m.Separable.DQ(ode.State(m.Init[half:]), 0)
		dp := m.Separable.DP(ode.State(m.Init[:half]), 0)
		if len(dq) != half || len(dp) != half {
			t.Errorf("%s: split derivatives sized %d/%d, want %d", name, len(dq), len(dp), half)
		}
	}

	for _, name := range []string{"decay", "vanderpol"} {
		m, err := r.Model(name)
		if err != nil {
			t.Fatal(err)
		}
		if m.Separable != nil {
			t.Errorf("%s is not Hamiltonian and should not expose a separable form", name)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	r := New()

	for _, names := range [][]string{r.StepperNames(), r.SymplecticNames(), r.ModelNames()} {
		for i := 1; i < len(names); i++ {
			if names[i-1] >= names[i] {
				t.Errorf("names not sorted: %v", names)
			}
		}
	}
}
