package integrators

import "github.com/san-kum/scenekit/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	return x.Axpy(dt, dyn.Derive(x, u, t))
}

// SemiImplicitEuler updates velocities first and moves positions with the
// new velocities. Expects x laid out as [positions..., velocities...].
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (s *SemiImplicitEuler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	dx := dyn.Derive(x, u, t)

	out := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		out[half+i] = x[half+i] + dt*dx[half+i]
		out[i] = x[i] + dt*out[half+i]
	}
	return out
}
