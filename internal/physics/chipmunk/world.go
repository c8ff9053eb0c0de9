// Package chipmunk implements physics.World on top of github.com/jakecoffman/cp.
//
// Solver callbacks only append to an event buffer. The buffer is handed to
// the caller when Space.Step returns, so engine code never runs while the
// space is locked.
package chipmunk

import (
	"github.com/jakecoffman/cp"
	"github.com/san-kum/scenekit/internal/physics"
)

// Every collider shares one collision type; per-collider flags decide which
// events are reported.
const collisionTypeTracked cp.CollisionType = 1

const defaultSleepTime = 0.5

type bodyInfo struct {
	body       *cp.Body
	kind       physics.BodyKind
	autoMoment bool
	shapes     []physics.ColliderHandle
}

type shapeInfo struct {
	shape  *cp.Shape
	desc   physics.ColliderDesc
	parent physics.RigidBodyHandle
}

type World struct {
	space *cp.Space
	dt    float64

	nextBody     physics.RigidBodyHandle
	nextCollider physics.ColliderHandle
	nextJoint    physics.JointHandle

	bodies map[physics.RigidBodyHandle]*bodyInfo
	shapes map[physics.ColliderHandle]*shapeInfo
	joints map[physics.JointHandle]*cp.Constraint
	events physics.StepEvents
}

func New(settings physics.Settings) *World {
	space := cp.NewSpace()
	if settings.Iterations > 0 {
		space.Iterations = uint(settings.Iterations)
	}
	space.SetGravity(toVector(settings.Gravity))
	space.SleepTimeThreshold = defaultSleepTime

	w := &World{
		space:  space,
		bodies: make(map[physics.RigidBodyHandle]*bodyInfo),
		shapes: make(map[physics.ColliderHandle]*shapeInfo),
		joints: make(map[physics.JointHandle]*cp.Constraint),
	}
	w.installHandlers()
	return w
}

// Space exposes the underlying cp space for rendering and debugging.
func (w *World) Space() *cp.Space { return w.space }

func (w *World) InsertRigidBody(desc physics.RigidBodyDesc) physics.RigidBodyHandle {
	info := &bodyInfo{kind: desc.Kind}
	switch desc.Kind {
	case physics.Static:
		info.body = cp.NewStaticBody()
	case physics.Kinematic:
		info.body = cp.NewKinematicBody()
	default:
		mass := desc.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := desc.Moment
		if moment <= 0 {
			moment = cp.MomentForCircle(mass, 0, 1, cp.Vector{})
			info.autoMoment = true
		}
		info.body = cp.NewBody(mass, moment)
	}

	info.body.UserData = desc.UserData
	info.body.SetPosition(toVector(desc.Position))
	info.body.SetAngle(desc.Angle)
	if desc.Kind != physics.Static {
		info.body.SetVelocityVector(toVector(desc.Velocity))
		info.body.SetAngularVelocity(desc.AngularVelocity)
	}
	w.space.AddBody(info.body)

	h := w.nextBody
	w.nextBody++
	w.bodies[h] = info
	return h
}

// InsertCollider panics when parent is not a body of this world.
func (w *World) InsertCollider(desc physics.ColliderDesc, parent physics.RigidBodyHandle) physics.ColliderHandle {
	info, ok := w.bodies[parent]
	if !ok {
		panic("chipmunk: collider parent is not in this world")
	}

	shape := newShape(info.body, desc)
	shape.SetFriction(desc.Friction)
	shape.SetElasticity(desc.Elasticity)
	shape.SetSensor(desc.Sensor)
	shape.SetCollisionType(collisionTypeTracked)

	h := w.nextCollider
	w.nextCollider++
	shape.UserData = h
	w.space.AddShape(shape)

	if info.autoMoment {
		w.accumulateMoment(info, desc)
	}
	info.shapes = append(info.shapes, h)
	w.shapes[h] = &shapeInfo{shape: shape, desc: desc, parent: parent}
	return h
}

func newShape(body *cp.Body, desc physics.ColliderDesc) *cp.Shape {
	switch desc.Shape {
	case physics.Box:
		hw, hh := desc.Width/2, desc.Height/2
		bb := cp.BB{
			L: desc.Offset.X - hw,
			B: desc.Offset.Y - hh,
			R: desc.Offset.X + hw,
			T: desc.Offset.Y + hh,
		}
		return cp.NewBox2(body, bb, desc.Radius)
	case physics.Segment:
		a := toVector(desc.A.Add(desc.Offset))
		b := toVector(desc.B.Add(desc.Offset))
		return cp.NewSegment(body, a, b, desc.Radius)
	default:
		return cp.NewCircle(body, desc.Radius, toVector(desc.Offset))
	}
}

// accumulateMoment replaces the placeholder moment with the sum of the
// moments of the attached shapes.
func (w *World) accumulateMoment(info *bodyInfo, desc physics.ColliderDesc) {
	mass := info.body.Mass()
	var m float64
	switch desc.Shape {
	case physics.Box:
		m = cp.MomentForBox(mass, desc.Width, desc.Height)
	case physics.Segment:
		m = cp.MomentForSegment(mass, toVector(desc.A), toVector(desc.B), desc.Radius)
	default:
		m = cp.MomentForCircle(mass, 0, desc.Radius, toVector(desc.Offset))
	}
	if m <= 0 {
		return
	}
	if len(info.shapes) == 0 {
		info.body.SetMoment(m)
		return
	}
	info.body.SetMoment(info.body.Moment() + m)
}

// InsertImpulseJoint panics when either body is not in this world.
func (w *World) InsertImpulseJoint(b1, b2 physics.RigidBodyHandle, desc physics.JointDesc, wake bool) physics.JointHandle {
	i1, ok1 := w.bodies[b1]
	i2, ok2 := w.bodies[b2]
	if !ok1 || !ok2 {
		panic("chipmunk: joint body is not in this world")
	}

	c := newConstraint(i1.body, i2.body, desc)
	c.UserData = desc.UserData
	w.space.AddConstraint(c)
	if wake {
		i1.body.Activate()
		i2.body.Activate()
	}

	h := w.nextJoint
	w.nextJoint++
	w.joints[h] = c
	return h
}

func newConstraint(a, b *cp.Body, desc physics.JointDesc) *cp.Constraint {
	anchorA, anchorB := toVector(desc.AnchorA), toVector(desc.AnchorB)
	switch desc.Kind {
	case physics.PivotJoint:
		return cp.NewPivotJoint2(a, b, anchorA, anchorB)
	case physics.SlideJoint:
		return cp.NewSlideJoint(a, b, anchorA, anchorB, desc.Min, desc.Max)
	case physics.SpringJoint:
		return cp.NewDampedSpring(a, b, anchorA, anchorB, desc.Min, desc.Stiffness, desc.Damping)
	default:
		return cp.NewPinJoint(a, b, anchorA, anchorB)
	}
}

func (w *World) RigidBodyUserData(h physics.RigidBodyHandle) (physics.UserData, bool) {
	info, ok := w.bodies[h]
	if !ok {
		return physics.UserData{}, false
	}
	ud, ok := info.body.UserData.(physics.UserData)
	return ud, ok
}

func (w *World) JointUserData(h physics.JointHandle) (physics.UserData, bool) {
	c, ok := w.joints[h]
	if !ok {
		return physics.UserData{}, false
	}
	ud, ok := c.UserData.(physics.UserData)
	return ud, ok
}

func (w *World) ColliderParent(h physics.ColliderHandle) (physics.RigidBodyHandle, bool) {
	s, ok := w.shapes[h]
	if !ok {
		return 0, false
	}
	return s.parent, true
}

func (w *World) RemoveRigidBody(h physics.RigidBodyHandle) bool {
	info, ok := w.bodies[h]
	if !ok {
		return false
	}
	for _, sh := range info.shapes {
		if s, ok := w.shapes[sh]; ok {
			w.space.RemoveShape(s.shape)
			delete(w.shapes, sh)
		}
	}
	w.space.RemoveBody(info.body)
	delete(w.bodies, h)
	return true
}

func (w *World) RemoveImpulseJoint(h physics.JointHandle) bool {
	c, ok := w.joints[h]
	if !ok {
		return false
	}
	w.space.RemoveConstraint(c)
	delete(w.joints, h)
	return true
}

func (w *World) BodyState(h physics.RigidBodyHandle) (physics.BodyState, bool) {
	info, ok := w.bodies[h]
	if !ok {
		return physics.BodyState{}, false
	}
	b := info.body
	return physics.BodyState{
		Position:        fromVector(b.Position()),
		Angle:           b.Angle(),
		Velocity:        fromVector(b.Velocity()),
		AngularVelocity: b.AngularVelocity(),
		Mass:            b.Mass(),
		Sleeping:        b.IsSleeping(),
	}, true
}

func (w *World) ApplyImpulse(h physics.RigidBodyHandle, impulse physics.Vec2) bool {
	info, ok := w.bodies[h]
	if !ok {
		return false
	}
	if info.kind != physics.Dynamic {
		return true
	}
	info.body.Activate()
	info.body.ApplyImpulseAtWorldPoint(toVector(impulse), info.body.Position())
	return true
}

// Step advances the space and returns every event recorded since the
// previous Step, including separations caused by removals.
func (w *World) Step(dt float64) physics.StepEvents {
	w.dt = dt
	w.space.Step(dt)
	events := w.events
	w.events = physics.StepEvents{}
	return events
}

func toVector(v physics.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromVector(v cp.Vector) physics.Vec2 {
	return physics.Vec2{X: v.X, Y: v.Y}
}
