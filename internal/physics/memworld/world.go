// Package memworld is a deterministic in-memory physics.World.
//
// Bodies move under gravity through a dynamo.Integrator. Contacts are found
// with bounding circles and reported as events but never resolved, and
// joints are stored without being solved. That is enough to drive the scene
// engine in tests and in headless runs without a real solver.
package memworld

import (
	"maps"
	"math"
	"slices"

	"github.com/san-kum/scenekit/internal/dynamo"
	"github.com/san-kum/scenekit/internal/integrators"
	"github.com/san-kum/scenekit/internal/physics"
)

type body struct {
	desc      physics.RigidBodyDesc
	x         dynamo.State // x, y, angle, vx, vy, omega
	mass      float64
	sleeping  bool
	colliders []physics.ColliderHandle
}

type collider struct {
	desc   physics.ColliderDesc
	parent physics.RigidBodyHandle
}

type joint struct {
	b1, b2 physics.RigidBodyHandle
	desc   physics.JointDesc
}

type pair struct {
	a, b physics.ColliderHandle
}

func makePair(a, b physics.ColliderHandle) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

type World struct {
	settings physics.Settings
	integ    dynamo.Integrator
	motion   motion
	time     float64

	nextBody     physics.RigidBodyHandle
	nextCollider physics.ColliderHandle
	nextJoint    physics.JointHandle

	bodies    map[physics.RigidBodyHandle]*body
	colliders map[physics.ColliderHandle]*collider
	joints    map[physics.JointHandle]*joint
	contacts  map[pair]bool
	pending   []physics.CollisionEvent

	err error
}

// New returns an empty world. An unknown integrator name is an error.
func New(settings physics.Settings) (*World, error) {
	name := settings.Integrator
	if name == "" {
		name = "rk4"
	}
	integ, err := integrators.New(name)
	if err != nil {
		return nil, err
	}
	return &World{
		settings:  settings,
		integ:     integ,
		bodies:    make(map[physics.RigidBodyHandle]*body),
		colliders: make(map[physics.ColliderHandle]*collider),
		joints:    make(map[physics.JointHandle]*joint),
		contacts:  make(map[pair]bool),
	}, nil
}

func (w *World) InsertRigidBody(desc physics.RigidBodyDesc) physics.RigidBodyHandle {
	mass := desc.Mass
	if mass <= 0 {
		mass = 1
	}
	h := w.nextBody
	w.nextBody++
	w.bodies[h] = &body{
		desc: desc,
		x: dynamo.State{
			desc.Position.X, desc.Position.Y, desc.Angle,
			desc.Velocity.X, desc.Velocity.Y, desc.AngularVelocity,
		},
		mass: mass,
	}
	return h
}

// InsertCollider panics when parent is not a body of this world.
func (w *World) InsertCollider(desc physics.ColliderDesc, parent physics.RigidBodyHandle) physics.ColliderHandle {
	b, ok := w.bodies[parent]
	if !ok {
		panic("memworld: collider parent is not in this world")
	}
	h := w.nextCollider
	w.nextCollider++
	w.colliders[h] = &collider{desc: desc, parent: parent}
	b.colliders = append(b.colliders, h)
	return h
}

// InsertImpulseJoint panics when either body is not in this world.
func (w *World) InsertImpulseJoint(b1, b2 physics.RigidBodyHandle, desc physics.JointDesc, wake bool) physics.JointHandle {
	body1, ok1 := w.bodies[b1]
	body2, ok2 := w.bodies[b2]
	if !ok1 || !ok2 {
		panic("memworld: joint body is not in this world")
	}
	h := w.nextJoint
	w.nextJoint++
	w.joints[h] = &joint{b1: b1, b2: b2, desc: desc}
	if wake {
		body1.sleeping = false
		body2.sleeping = false
	}
	return h
}

func (w *World) RigidBodyUserData(h physics.RigidBodyHandle) (physics.UserData, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return physics.UserData{}, false
	}
	return b.desc.UserData, true
}

func (w *World) JointUserData(h physics.JointHandle) (physics.UserData, bool) {
	j, ok := w.joints[h]
	if !ok {
		return physics.UserData{}, false
	}
	return j.desc.UserData, true
}

func (w *World) ColliderParent(h physics.ColliderHandle) (physics.RigidBodyHandle, bool) {
	c, ok := w.colliders[h]
	if !ok {
		return 0, false
	}
	return c.parent, true
}

func (w *World) RemoveRigidBody(h physics.RigidBodyHandle) bool {
	b, ok := w.bodies[h]
	if !ok {
		return false
	}
	for _, ch := range b.colliders {
		w.dropContacts(ch)
		delete(w.colliders, ch)
	}
	delete(w.bodies, h)
	return true
}

func (w *World) dropContacts(ch physics.ColliderHandle) {
	for _, p := range slices.SortedFunc(maps.Keys(w.contacts), comparePairs) {
		if p.a != ch && p.b != ch {
			continue
		}
		delete(w.contacts, p)
		w.pending = append(w.pending, physics.CollisionEvent{
			Kind:      physics.CollisionStopped,
			Collider1: p.a,
			Collider2: p.b,
		})
	}
}

func (w *World) RemoveImpulseJoint(h physics.JointHandle) bool {
	if _, ok := w.joints[h]; !ok {
		return false
	}
	delete(w.joints, h)
	return true
}

func (w *World) BodyState(h physics.RigidBodyHandle) (physics.BodyState, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return physics.BodyState{}, false
	}
	return physics.BodyState{
		Position:        physics.Vec2{X: b.x[0], Y: b.x[1]},
		Angle:           b.x[2],
		Velocity:        physics.Vec2{X: b.x[3], Y: b.x[4]},
		AngularVelocity: b.x[5],
		Mass:            b.mass,
		Sleeping:        b.sleeping,
	}, true
}

func (w *World) ApplyImpulse(h physics.RigidBodyHandle, impulse physics.Vec2) bool {
	b, ok := w.bodies[h]
	if !ok {
		return false
	}
	if b.desc.Kind != physics.Dynamic {
		return true
	}
	b.x[3] += impulse.X / b.mass
	b.x[4] += impulse.Y / b.mass
	b.sleeping = false
	return true
}

// SetSleeping puts a body to sleep or wakes it. Sleeping bodies are not
// integrated.
func (w *World) SetSleeping(h physics.RigidBodyHandle, sleeping bool) bool {
	b, ok := w.bodies[h]
	if !ok {
		return false
	}
	b.sleeping = sleeping
	return true
}

// Err returns the last integration failure. A body whose next state is
// invalid keeps its previous state.
func (w *World) Err() error { return w.err }

func (w *World) JointCount() int { return len(w.joints) }

func (w *World) ColliderCount() int { return len(w.colliders) }

func (w *World) Step(dt float64) physics.StepEvents {
	var events physics.StepEvents
	events.Collisions = append(events.Collisions, w.pending...)
	w.pending = w.pending[:0]

	prev := make(map[physics.RigidBodyHandle]physics.Vec2, len(w.bodies))
	for _, h := range slices.Sorted(maps.Keys(w.bodies)) {
		b := w.bodies[h]
		prev[h] = physics.Vec2{X: b.x[3], Y: b.x[4]}
		w.integrate(b, dt)
	}
	w.time += dt

	w.detect(dt, prev, &events)
	return events
}

func (w *World) integrate(b *body, dt float64) {
	if b.sleeping {
		return
	}
	switch b.desc.Kind {
	case physics.Static:
		return
	case physics.Kinematic:
		b.x = w.integ.Step(&w.motion, b.x, dynamo.Control{0, 0}, w.time, dt)
	default:
		g := w.settings.Gravity
		next := w.integ.Step(&w.motion, b.x, dynamo.Control{g.X, g.Y}, w.time, dt)
		if err := dynamo.CheckState(next, len(b.x), w.time); err != nil {
			w.err = err
			return
		}
		b.x = next
	}
}

func (w *World) center(c *collider) (physics.Vec2, bool) {
	b, ok := w.bodies[c.parent]
	if !ok {
		return physics.Vec2{}, false
	}
	sin, cos := math.Sincos(b.x[2])
	off := c.desc.Offset
	if c.desc.Shape == physics.Segment {
		off = off.Add(c.desc.A.Add(c.desc.B).Scale(0.5))
	}
	return physics.Vec2{
		X: b.x[0] + off.X*cos - off.Y*sin,
		Y: b.x[1] + off.X*sin + off.Y*cos,
	}, true
}

func (w *World) detect(dt float64, prev map[physics.RigidBodyHandle]physics.Vec2, events *physics.StepEvents) {
	handles := slices.Sorted(maps.Keys(w.colliders))
	touching := make(map[pair]bool)

	for i, ha := range handles {
		ca := w.colliders[ha]
		pa, _ := w.center(ca)
		for _, hb := range handles[i+1:] {
			cb := w.colliders[hb]
			if ca.parent == cb.parent {
				continue
			}
			wantEvents := ca.desc.CollisionEvents || cb.desc.CollisionEvents
			threshold := physics.ForceThreshold(ca.desc, cb.desc)
			if !wantEvents && threshold == 0 {
				continue
			}
			pb, _ := w.center(cb)
			if pa.DistanceTo(pb) >= ca.desc.BoundingRadius()+cb.desc.BoundingRadius() {
				continue
			}
			p := makePair(ha, hb)
			touching[p] = true

			if wantEvents && !w.contacts[p] {
				events.Collisions = append(events.Collisions, physics.CollisionEvent{
					Kind:      physics.CollisionStarted,
					Collider1: p.a,
					Collider2: p.b,
					Sensor:    ca.desc.Sensor || cb.desc.Sensor,
				})
			}
			if threshold > 0 {
				if f, ok := w.contactForce(ca, cb, pa, pb, dt, prev); ok && f.Magnitude > threshold {
					f.Collider1, f.Collider2 = ha, hb
					events.Forces = append(events.Forces, f)
				}
			}
		}
	}

	for _, p := range slices.SortedFunc(maps.Keys(w.contacts), comparePairs) {
		if touching[p] {
			continue
		}
		delete(w.contacts, p)
		events.Collisions = append(events.Collisions, physics.CollisionEvent{
			Kind:      physics.CollisionStopped,
			Collider1: p.a,
			Collider2: p.b,
		})
	}
	for p := range touching {
		a, b := w.colliders[p.a], w.colliders[p.b]
		if a.desc.CollisionEvents || b.desc.CollisionEvents {
			w.contacts[p] = true
		}
	}
}

// contactForce estimates the force needed to cancel the approach speed of
// two touching colliders within one step.
func (w *World) contactForce(ca, cb *collider, pa, pb physics.Vec2, dt float64, prev map[physics.RigidBodyHandle]physics.Vec2) (physics.ContactForceEvent, bool) {
	ba, bb := w.bodies[ca.parent], w.bodies[cb.parent]
	n := pb.Sub(pa)
	dist := n.Length()
	if dist == 0 || dt <= 0 {
		return physics.ContactForceEvent{}, false
	}
	n = n.Scale(1 / dist)
	approach := prev[ca.parent].Sub(prev[cb.parent]).Dot(n)
	if approach <= 0 {
		return physics.ContactForceEvent{}, false
	}
	m := reducedMass(ba, bb)
	magnitude := m * approach / dt
	return physics.ContactForceEvent{
		TotalForce: n.Scale(magnitude),
		Magnitude:  magnitude,
	}, true
}

func reducedMass(a, b *body) float64 {
	switch {
	case a.desc.Kind != physics.Dynamic && b.desc.Kind != physics.Dynamic:
		return 0
	case a.desc.Kind != physics.Dynamic:
		return b.mass
	case b.desc.Kind != physics.Dynamic:
		return a.mass
	}
	return a.mass * b.mass / (a.mass + b.mass)
}

func comparePairs(x, y pair) int {
	if x.a != y.a {
		if x.a < y.a {
			return -1
		}
		return 1
	}
	switch {
	case x.b < y.b:
		return -1
	case x.b > y.b:
		return 1
	}
	return 0
}
