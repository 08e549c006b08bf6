package metrics

import "github.com/mseri/owl-ode/ode"

// StepCounter counts recorded trajectory points, which for adaptive runs
// equals accepted steps plus the initial condition.
type StepCounter struct {
	name  string
	count int
}

func NewStepCounter() *StepCounter {
	return &StepCounter{name: "steps"}
}

func (s *StepCounter) Name() string { return s.name }

func (s *StepCounter) OnStep(y ode.State, t float64) {
	s.count++
}

func (s *StepCounter) Value() float64 {
	return float64(s.count)
}

func (s *StepCounter) Reset() {
	s.count = 0
}
