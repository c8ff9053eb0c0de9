package engine

import "github.com/san-kum/scenekit/internal/physics"

// Class is an application-defined category tag.
type Class string

// Look describes how a body is drawn. The engine stores it untouched.
type Look any

// LifeStepOp is per-tick behaviour attached to a body. The driver calls Step
// once per tick, in ascending body id order, with a handle for the body's
// scene.
type LifeStepOp interface {
	Step(h *SceneHandle, body uint64, tick uint64)
}

// LifeStepFunc adapts a plain function to LifeStepOp.
type LifeStepFunc func(h *SceneHandle, body uint64, tick uint64)

func (f LifeStepFunc) Step(h *SceneHandle, body uint64, tick uint64) { f(h, body, tick) }

type Body struct {
	Class      Class
	Name       string
	Look       Look
	Rigid      physics.RigidBodyHandle
	LifeStepOp LifeStepOp

	// Scene owns Rigid. Colliders are the handles created with the body.
	Scene     uint64
	Colliders []physics.ColliderHandle
}

// BodyBuilder is consumed by SceneHandle.AddBody. Rigid.UserData is
// overwritten with the new body id.
type BodyBuilder struct {
	Rigid      physics.RigidBodyDesc
	Colliders  []physics.ColliderDesc
	Class      Class
	Name       string
	Look       Look
	LifeStepOp LifeStepOp
}

// Joint is consumed by SceneHandle.AddJoint. Desc.UserData is overwritten
// with the new joint id.
type Joint struct {
	Body1 uint64
	Body2 uint64
	Desc  physics.JointDesc
}

// JointRecord is what the engine keeps for a live joint.
type JointRecord struct {
	ID     uint64
	Scene  uint64
	Body1  uint64
	Body2  uint64
	Kind   physics.JointKind
	Handle physics.JointHandle
}
