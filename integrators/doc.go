// Package integrators provides the concrete stepping algorithms driven by
// ode.Odeint and ode.SymplecticOdeint.
//
// Fixed-step: [Euler], [Midpoint], [RK4]. Embedded adaptive pairs:
// [BogackiShampine] (order 3/2), [DormandPrince] (order 5/4); both report
// the higher-order candidate. Symplectic, for separable Hamiltonian
// systems: [NewSymplecticEuler], [NewLeapfrog], [NewPseudoLeapfrog],
// [NewRuth3], [NewRuth4].
//
// Steppers that reuse scratch buffers are not safe for concurrent use;
// create one per integration call.
package integrators
