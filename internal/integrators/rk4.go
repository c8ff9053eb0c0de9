package integrators

import "github.com/san-kum/scenekit/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta method. Scratch buffers are
// reused between calls, so an RK4 value must not be shared across goroutines.
type RK4 struct {
	k     [4]dynamo.State
	probe dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.probe) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.probe = make(dynamo.State, n)
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k[0], dyn.Derive(x, u, t))
	r.fillProbe(x, r.k[0], 0.5*dt)
	copy(r.k[1], dyn.Derive(r.probe, u, t+0.5*dt))
	r.fillProbe(x, r.k[1], 0.5*dt)
	copy(r.k[2], dyn.Derive(r.probe, u, t+0.5*dt))
	r.fillProbe(x, r.k[2], dt)
	copy(r.k[3], dyn.Derive(r.probe, u, t+dt))

	out := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		out[i] = x[i] + dt6*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
	return out
}

func (r *RK4) fillProbe(x, k dynamo.State, h float64) {
	for i := range x {
		r.probe[i] = x[i] + h*k[i]
	}
}
