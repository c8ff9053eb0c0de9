// Package control provides built-in body behaviours driven by feedback
// controllers.
//
//   - [PID]: one-axis Proportional-Integral-Derivative loop
//   - [Hold]: steers a body toward a fixed point with two PID loops
//
// # Usage
//
//	hold := control.NewHold(physics.Vec2{Y: 5}, 8, 0.5, 4, 1.0/60)
//	h.AddBody(engine.BodyBuilder{Rigid: desc, LifeStepOp: hold})
//	// Hold.Step runs once per tick after the world step
package control
