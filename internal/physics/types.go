package physics

import (
	"fmt"
	"math"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2           { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2           { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2      { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64        { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Length() float64           { return math.Hypot(v.X, v.Y) }
func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Length() }

func (v Vec2) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// UserData is a 128-bit tag stored alongside solver objects.
type UserData struct {
	Hi, Lo uint64
}

func UserDataFromID(id uint64) UserData { return UserData{Lo: id} }

// ID returns the low 64 bits, where engine ids are stamped.
func (u UserData) ID() uint64 { return u.Lo }

type RigidBodyHandle uint64
type ColliderHandle uint64
type JointHandle uint64

type BodyKind int

const (
	Dynamic BodyKind = iota
	Static
	Kinematic
)

func (k BodyKind) String() string {
	switch k {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	default:
		return "dynamic"
	}
}

func ParseBodyKind(s string) (BodyKind, error) {
	switch s {
	case "", "dynamic":
		return Dynamic, nil
	case "static":
		return Static, nil
	case "kinematic":
		return Kinematic, nil
	}
	return Dynamic, fmt.Errorf("unknown body kind %q", s)
}

// RigidBodyDesc is an unfinished rigid body. A zero Mass on a dynamic body
// means 1.
type RigidBodyDesc struct {
	Kind            BodyKind
	Position        Vec2
	Angle           float64
	Velocity        Vec2
	AngularVelocity float64
	Mass            float64
	Moment          float64
	UserData        UserData
}

type ShapeKind int

const (
	Circle ShapeKind = iota
	Box
	Segment
)

func (k ShapeKind) String() string {
	switch k {
	case Box:
		return "box"
	case Segment:
		return "segment"
	default:
		return "circle"
	}
}

func ParseShapeKind(s string) (ShapeKind, error) {
	switch s {
	case "", "circle":
		return Circle, nil
	case "box":
		return Box, nil
	case "segment":
		return Segment, nil
	}
	return Circle, fmt.Errorf("unknown shape %q", s)
}

type ColliderDesc struct {
	Shape  ShapeKind
	Radius float64
	Width  float64
	Height float64
	// A and B are segment endpoints in body-local coordinates.
	A, B   Vec2
	Offset Vec2

	Friction   float64
	Elasticity float64
	Sensor     bool

	// CollisionEvents enables Started/Stopped events for this collider.
	CollisionEvents bool
	// ContactForceThreshold enables contact-force events above this force.
	// Zero disables them.
	ContactForceThreshold float64
}

// BoundingRadius is the radius of a circle around Offset enclosing the shape.
func (c ColliderDesc) BoundingRadius() float64 {
	switch c.Shape {
	case Box:
		return math.Hypot(c.Width, c.Height)/2 + c.Radius
	case Segment:
		return c.A.DistanceTo(c.B)/2 + c.Radius
	default:
		return c.Radius
	}
}

type JointKind int

const (
	PinJoint JointKind = iota
	PivotJoint
	SlideJoint
	SpringJoint
)

func (k JointKind) String() string {
	switch k {
	case PivotJoint:
		return "pivot"
	case SlideJoint:
		return "slide"
	case SpringJoint:
		return "spring"
	default:
		return "pin"
	}
}

func ParseJointKind(s string) (JointKind, error) {
	switch s {
	case "", "pin":
		return PinJoint, nil
	case "pivot":
		return PivotJoint, nil
	case "slide":
		return SlideJoint, nil
	case "spring":
		return SpringJoint, nil
	}
	return PinJoint, fmt.Errorf("unknown joint kind %q", s)
}

// JointDesc describes an impulse joint. Anchors are body-local. Min/Max are
// slide limits; for springs Min is the rest length.
type JointDesc struct {
	Kind      JointKind
	AnchorA   Vec2
	AnchorB   Vec2
	Min, Max  float64
	Stiffness float64
	Damping   float64
	UserData  UserData
}

type BodyState struct {
	Position        Vec2
	Angle           float64
	Velocity        Vec2
	AngularVelocity float64
	Mass            float64
	Sleeping        bool
}

func (s BodyState) KineticEnergy() float64 {
	v := s.Velocity.Length()
	return 0.5 * s.Mass * v * v
}

type CollisionKind int

const (
	CollisionStarted CollisionKind = iota
	CollisionStopped
)

func (k CollisionKind) String() string {
	if k == CollisionStopped {
		return "stopped"
	}
	return "started"
}

type CollisionEvent struct {
	Kind      CollisionKind
	Collider1 ColliderHandle
	Collider2 ColliderHandle
	Sensor    bool
}

type ContactForceEvent struct {
	Collider1  ColliderHandle
	Collider2  ColliderHandle
	TotalForce Vec2
	Magnitude  float64
}

// StepEvents are the events produced by one World.Step, in solver order.
type StepEvents struct {
	Collisions []CollisionEvent
	Forces     []ContactForceEvent
}

func (e StepEvents) Empty() bool {
	return len(e.Collisions) == 0 && len(e.Forces) == 0
}

// ForceThreshold is the smaller non-zero contact-force threshold of two
// colliders, or zero when neither asks for force events.
func ForceThreshold(a, b ColliderDesc) float64 {
	ta, tb := a.ContactForceThreshold, b.ContactForceThreshold
	switch {
	case ta <= 0:
		return math.Max(tb, 0)
	case tb <= 0:
		return ta
	}
	return math.Min(ta, tb)
}
