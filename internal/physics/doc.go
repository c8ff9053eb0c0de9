// Package physics defines the contract between the scene engine and a 2D
// rigid-body solver.
//
// The engine never touches solver internals. It talks to a [World] through
// opaque handles and descriptors:
//
//   - [RigidBodyHandle]: a body inside one world's rigid-body set
//   - [ColliderHandle]: a shape attached to exactly one rigid body
//   - [JointHandle]: an impulse joint between two rigid bodies
//
// Every rigid body and joint carries a 128-bit [UserData] value. The engine
// stamps its own entity id there so a handle coming back from the solver
// (for example inside a [CollisionEvent]) can be mapped to an engine id.
//
// Two implementations live in subpackages: chipmunk wraps
// github.com/jakecoffman/cp, memworld is a deterministic in-memory world
// driven by the integrators package.
package physics
