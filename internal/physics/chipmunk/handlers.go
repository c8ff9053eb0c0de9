package chipmunk

import (
	"github.com/jakecoffman/cp"
	"github.com/san-kum/scenekit/internal/physics"
)

func (w *World) installHandlers() {
	handler := w.space.NewCollisionHandler(collisionTypeTracked, collisionTypeTracked)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		if world, ok := userData.(*World); ok {
			world.recordCollision(arb, physics.CollisionStarted)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		if world, ok := userData.(*World); ok {
			world.recordCollision(arb, physics.CollisionStopped)
		}
	}
	handler.PostSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		if world, ok := userData.(*World); ok {
			world.recordForce(arb)
		}
	}
}

// lookup resolves both arbiter shapes. Shapes without a handle belong to
// someone else (the space's static body, for example) and are ignored.
func (w *World) lookup(arb *cp.Arbiter) (physics.ColliderHandle, physics.ColliderHandle, *shapeInfo, *shapeInfo, bool) {
	a, b := arb.Shapes()
	ha, okA := a.UserData.(physics.ColliderHandle)
	hb, okB := b.UserData.(physics.ColliderHandle)
	if !okA || !okB {
		return 0, 0, nil, nil, false
	}
	sa, okA := w.shapes[ha]
	sb, okB := w.shapes[hb]
	if !okA || !okB {
		return 0, 0, nil, nil, false
	}
	return ha, hb, sa, sb, true
}

func (w *World) recordCollision(arb *cp.Arbiter, kind physics.CollisionKind) {
	ha, hb, sa, sb, ok := w.lookup(arb)
	if !ok {
		return
	}
	if !sa.desc.CollisionEvents && !sb.desc.CollisionEvents {
		return
	}
	w.events.Collisions = append(w.events.Collisions, physics.CollisionEvent{
		Kind:      kind,
		Collider1: ha,
		Collider2: hb,
		Sensor:    sa.desc.Sensor || sb.desc.Sensor,
	})
}

func (w *World) recordForce(arb *cp.Arbiter) {
	ha, hb, sa, sb, ok := w.lookup(arb)
	if !ok || w.dt <= 0 {
		return
	}
	threshold := physics.ForceThreshold(sa.desc, sb.desc)
	if threshold <= 0 {
		return
	}
	impulse := arb.TotalImpulse()
	magnitude := impulse.Length() / w.dt
	if magnitude <= threshold {
		return
	}
	w.events.Forces = append(w.events.Forces, physics.ContactForceEvent{
		Collider1:  ha,
		Collider2:  hb,
		TotalForce: fromVector(impulse.Mult(1 / w.dt)),
		Magnitude:  magnitude,
	})
}
