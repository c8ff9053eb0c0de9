// Package dynamo provides the numerical primitives used by worlds that
// integrate body motion themselves.
//
//   - [State]: flat vector, positions first then velocities
//   - [System]: dX/dt = f(X, u, t)
//   - [Integrator]: advances a State by one timestep
//
// Values here carry no identity; the physics worlds map handles to State
// slices and back.
package dynamo
