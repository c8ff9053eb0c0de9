package control

import (
	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
)

// Hold is an engine.LifeStepOp that pulls a body toward Target. The PID
// outputs are accelerations; each tick they are applied as one impulse of
// mass*a*dt, clamped to MaxImpulse when that is positive.
type Hold struct {
	Target     physics.Vec2
	MaxImpulse float64

	dt   float64
	x, y *PID
}

func NewHold(target physics.Vec2, kp, ki, kd, dt float64) *Hold {
	return &Hold{
		Target: target,
		dt:     dt,
		x:      NewPID(kp, ki, kd, target.X),
		y:      NewPID(kp, ki, kd, target.Y),
	}
}

func (h *Hold) Step(sh *engine.SceneHandle, body uint64, tick uint64) {
	st, ok := sh.BodyState(body)
	if !ok {
		return
	}
	t := float64(tick) * h.dt
	a := physics.Vec2{
		X: h.x.Compute(st.Position.X, t),
		Y: h.y.Compute(st.Position.Y, t),
	}
	impulse := a.Scale(st.Mass * h.dt)
	if h.MaxImpulse > 0 {
		if n := impulse.Length(); n > h.MaxImpulse {
			impulse = impulse.Scale(h.MaxImpulse / n)
		}
	}
	sh.ApplyImpulse(body, impulse)
}

func (h *Hold) Reset() {
	h.x.Reset()
	h.y.Reset()
}
