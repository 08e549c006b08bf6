// Package ode provides core primitives for solving initial value problems
// of ordinary differential equation systems dy/dt = f(y, t), y(t0) = y0.
//
// The package defines the fundamental types and interfaces of the engine:
//
//   - [State]: dense vector representing system state
//   - [RHS]: the user-supplied derivative function f(y, t)
//   - [TimeSpec]: integration horizon, fixed-step or explicit points
//   - [Stepper]: single-step integration algorithm
//   - [ErrorStepper]: stepper with an embedded error estimate, driven
//     adaptively
//   - [SymplecticStepper]: structure-preserving stepper for separable
//     Hamiltonian systems
//   - [Odeint], [SymplecticOdeint]: drivers producing a full trajectory
//
// Concrete steppers live in the integrators package.
//
// # Example
//
//	f := func(y ode.State, t float64) ode.State {
//		return ode.State{-y[0]}
//	}
//	spec := ode.FixedHorizon{T0: 0, Duration: 1, Dt: 0.01}
//	traj, err := ode.Odeint(ctx, integrators.NewRK4(), f, ode.State{1}, spec, ode.DefaultConfig())
//
// # Thread Safety
//
// A single integration call is strictly sequential. Independent calls may
// run concurrently as long as each owns its stepper instance; steppers keep
// scratch buffers and are NOT safe for shared use.
package ode
