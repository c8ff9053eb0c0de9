package integrators

import "github.com/san-kum/scenekit/internal/dynamo"

// Verlet is velocity Verlet. Expects x laid out as [positions..., velocities...]
// and a System whose velocity derivatives depend on position only.
type Verlet struct {
	probe dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(v.probe) != n {
		v.probe = make(dynamo.State, n)
	}

	out := make(dynamo.State, n)
	a0 := dyn.Derive(x, u, t)
	for i := 0; i < half; i++ {
		out[i] = x[i] + x[half+i]*dt + 0.5*a0[half+i]*dt*dt
		v.probe[i] = out[i]
		v.probe[half+i] = x[half+i]
	}

	a1 := dyn.Derive(v.probe, u, t+dt)
	for i := 0; i < half; i++ {
		out[half+i] = x[half+i] + 0.5*(a0[half+i]+a1[half+i])*dt
	}
	return out
}
