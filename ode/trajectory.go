package ode

// Trajectory is the ordered output of an integration: Times[i] is the
// time of States[i]. Times is strictly increasing and, for FixedHorizon
// specs, ends exactly on the horizon. Ownership transfers fully to the
// caller when the driver returns.
type Trajectory struct {
	Times  []float64
	States []State
}

func newTrajectory(capacity int) *Trajectory {
	return &Trajectory{
		Times:  make([]float64, 0, capacity),
		States: make([]State, 0, capacity),
	}
}

func (tr *Trajectory) append(t float64, y State) {
	tr.Times = append(tr.Times, t)
	tr.States = append(tr.States, y)
}

// Len returns the number of recorded points.
func (tr *Trajectory) Len() int { return len(tr.Times) }

// Last returns the final recorded time and state. It panics on an empty
// trajectory.
func (tr *Trajectory) Last() (float64, State) {
	n := len(tr.Times) - 1
	return tr.Times[n], tr.States[n]
}

// Component extracts component i of every recorded state, e.g. for
// plotting.
func (tr *Trajectory) Component(i int) []float64 {
	out := make([]float64, len(tr.States))
	for j, y := range tr.States {
		out[j] = y[i]
	}
	return out
}

// PhaseTrajectory is the output of a symplectic integration: position and
// momentum sequences aligned with Times.
type PhaseTrajectory struct {
	Times     []float64
	Positions []State
	Momenta   []State
}

func newPhaseTrajectory(capacity int) *PhaseTrajectory {
	return &PhaseTrajectory{
		Times:     make([]float64, 0, capacity),
		Positions: make([]State, 0, capacity),
		Momenta:   make([]State, 0, capacity),
	}
}

func (tr *PhaseTrajectory) append(t float64, q, p State) {
	tr.Times = append(tr.Times, t)
	tr.Positions = append(tr.Positions, q)
	tr.Momenta = append(tr.Momenta, p)
}

func (tr *PhaseTrajectory) Len() int { return len(tr.Times) }

// Packed returns the trajectory with each point as the concatenated
// (q, p) state, which is the shape generic steppers and observers use.
func (tr *PhaseTrajectory) Packed() *Trajectory {
	out := newTrajectory(len(tr.Times))
	for i, t := range tr.Times {
		y := make(State, 0, len(tr.Positions[i])+len(tr.Momenta[i]))
		y = append(y, tr.Positions[i]...)
		y = append(y, tr.Momenta[i]...)
		out.append(t, y)
	}
	return out
}
