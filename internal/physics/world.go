package physics

// World is one physics simulation: a rigid-body set, a collider set and an
// impulse-joint set. Implementations are not safe for concurrent use.
//
// Lookups return false for handles the world does not know. Step must not
// invoke engine code; events are returned to the caller once the step is
// complete.
type World interface {
	InsertRigidBody(desc RigidBodyDesc) RigidBodyHandle
	InsertCollider(desc ColliderDesc, parent RigidBodyHandle) ColliderHandle
	// InsertImpulseJoint links two bodies. With wake set both bodies are
	// woken so the joint acts on the next step.
	InsertImpulseJoint(b1, b2 RigidBodyHandle, desc JointDesc, wake bool) JointHandle

	RigidBodyUserData(h RigidBodyHandle) (UserData, bool)
	JointUserData(h JointHandle) (UserData, bool)
	ColliderParent(h ColliderHandle) (RigidBodyHandle, bool)

	// RemoveRigidBody drops the body and every collider attached to it.
	// Joints are the caller's responsibility.
	RemoveRigidBody(h RigidBodyHandle) bool
	RemoveImpulseJoint(h JointHandle) bool

	BodyState(h RigidBodyHandle) (BodyState, bool)
	ApplyImpulse(h RigidBodyHandle, impulse Vec2) bool

	Step(dt float64) StepEvents
}

// Settings configure a new world.
type Settings struct {
	Gravity    Vec2
	Iterations int
	// Integrator is used by worlds that integrate motion themselves.
	Integrator string
}

func DefaultSettings() Settings {
	return Settings{
		Gravity:    Vec2{X: 0, Y: -9.81},
		Iterations: 10,
		Integrator: "rk4",
	}
}
