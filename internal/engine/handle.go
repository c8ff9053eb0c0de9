package engine

import (
	"fmt"

	"github.com/san-kum/scenekit/internal/physics"
	"go.uber.org/zap"
)

// SceneHandle is the façade over one scene. It never switches scenes.
type SceneHandle struct {
	engine  *Engine
	sceneID uint64
}

func (h *SceneHandle) SceneID() uint64 { return h.sceneID }

func (h *SceneHandle) Engine() *Engine { return h.engine }

func (h *SceneHandle) scene(op string) *Scene {
	return h.engine.mustScene(h.sceneID, op)
}

// World returns the scene's physics world.
func (h *SceneHandle) World() physics.World {
	return h.scene("world").World
}

// AddBody inserts the builder's rigid body and colliders and returns the new
// body id. The id is stamped into the rigid body's user data so solver
// handles can be mapped back to it.
func (h *SceneHandle) AddBody(b BodyBuilder) uint64 {
	id := h.engine.ids.Next()
	scene := h.scene("add body")

	b.Rigid.UserData = physics.UserDataFromID(id)
	rigid := scene.World.InsertRigidBody(b.Rigid)

	colliders := make([]physics.ColliderHandle, 0, len(b.Colliders))
	for _, c := range b.Colliders {
		colliders = append(colliders, scene.World.InsertCollider(c, rigid))
	}

	h.engine.bodies[id] = &Body{
		Class:      b.Class,
		Name:       b.Name,
		Look:       b.Look,
		Rigid:      rigid,
		LifeStepOp: b.LifeStepOp,
		Scene:      h.sceneID,
		Colliders:  colliders,
	}
	scene.bodies[id] = struct{}{}

	h.engine.log.Debug("body added",
		zap.Uint64("scene", h.sceneID),
		zap.Uint64("body", id),
		zap.String("name", b.Name),
		zap.Int("colliders", len(colliders)))
	return id
}

// AddJoint links two existing bodies of this scene with an impulse joint and
// returns the joint id. Both bodies are woken.
func (h *SceneHandle) AddJoint(j Joint) uint64 {
	id := h.engine.ids.Next()
	scene := h.scene("add joint")
	b1 := h.jointBody(j.Body1)
	b2 := h.jointBody(j.Body2)

	j.Desc.UserData = physics.UserDataFromID(id)
	handle := scene.World.InsertImpulseJoint(b1.Rigid, b2.Rigid, j.Desc, true)

	h.engine.joints[id] = &JointRecord{
		ID:     id,
		Scene:  h.sceneID,
		Body1:  j.Body1,
		Body2:  j.Body2,
		Kind:   j.Desc.Kind,
		Handle: handle,
	}
	h.engine.log.Debug("joint added",
		zap.Uint64("scene", h.sceneID),
		zap.Uint64("joint", id),
		zap.Uint64("body1", j.Body1),
		zap.Uint64("body2", j.Body2))
	return id
}

func (h *SceneHandle) jointBody(id uint64) *Body {
	b, ok := h.engine.bodies[id]
	if !ok {
		fatal("add joint", h.sceneID, fmt.Errorf("%w: %d", ErrUnknownBody, id))
	}
	if b.Scene != h.sceneID {
		fatal("add joint", h.sceneID, fmt.Errorf("%w: body %d is in scene %d", ErrCrossSceneJoint, id, b.Scene))
	}
	return b
}

func (h *SceneHandle) SetEventListener(l EventListener) {
	h.scene("set event listener").onEvent = l
}

func (h *SceneHandle) SetStepListener(l StepListener) {
	h.scene("set step listener").onStep = l
}

func (h *SceneHandle) SetCollisionEventHandler(l CollisionHandler) {
	h.scene("set collision handler").onCollision = l
}

func (h *SceneHandle) SetForceEventHandler(l ForceHandler) {
	h.scene("set force handler").onForce = l
}

// BindWatcher records the engine's body of interest. The id is not checked.
func (h *SceneHandle) BindWatcher(body uint64) {
	h.engine.watcher = body
	h.engine.watcherBound = true
}

// BodyIDOfCollider maps a collider of this scene to the id of the body it
// is attached to.
func (h *SceneHandle) BodyIDOfCollider(c physics.ColliderHandle) uint64 {
	scene := h.scene("body of collider")
	parent, ok := scene.World.ColliderParent(c)
	if !ok {
		fatal("body of collider", h.sceneID, fmt.Errorf("%w: collider %d", ErrOrphanCollider, c))
	}
	ud, ok := scene.World.RigidBodyUserData(parent)
	if !ok {
		fatal("body of collider", h.sceneID, fmt.Errorf("%w: rigid body %d", ErrUnstampedBody, parent))
	}
	return ud.ID()
}

// Body looks a body up engine-wide. The returned pointer may be modified in
// place.
func (h *SceneHandle) Body(id uint64) (*Body, bool) {
	return h.engine.Body(id)
}

// BodyState reads the solver state of a body from its owning world.
func (h *SceneHandle) BodyState(id uint64) (physics.BodyState, bool) {
	b, world, ok := h.resolve(id)
	if !ok {
		return physics.BodyState{}, false
	}
	return world.BodyState(b.Rigid)
}

// ApplyImpulse pushes a body through its centre of mass.
func (h *SceneHandle) ApplyImpulse(id uint64, impulse physics.Vec2) bool {
	b, world, ok := h.resolve(id)
	if !ok {
		return false
	}
	return world.ApplyImpulse(b.Rigid, impulse)
}

func (h *SceneHandle) resolve(id uint64) (*Body, physics.World, bool) {
	b, ok := h.engine.bodies[id]
	if !ok {
		return nil, nil, false
	}
	s, ok := h.engine.scenes[b.Scene]
	if !ok {
		return nil, nil, false
	}
	return b, s.World, true
}

// BodyMut is Body for call sites that intend to modify the record.
func (h *SceneHandle) BodyMut(id uint64) (*Body, bool) {
	return h.engine.Body(id)
}

// RemoveBody drops a body of this scene together with its colliders and
// every joint attached to it. It reports false for an unknown id or a body
// owned by another scene.
func (h *SceneHandle) RemoveBody(id uint64) bool {
	scene := h.scene("remove body")
	b, ok := h.engine.bodies[id]
	if !ok || b.Scene != h.sceneID {
		return false
	}
	for _, jid := range h.engine.JointIDs(id) {
		h.removeJoint(scene, jid)
	}
	scene.World.RemoveRigidBody(b.Rigid)
	delete(h.engine.bodies, id)
	delete(scene.bodies, id)
	if h.engine.watcherBound && h.engine.watcher == id {
		h.engine.log.Debug("watched body removed", zap.Uint64("body", id))
	}
	h.engine.log.Debug("body removed", zap.Uint64("scene", h.sceneID), zap.Uint64("body", id))
	return true
}

// RemoveJoint drops one joint of this scene.
func (h *SceneHandle) RemoveJoint(id uint64) bool {
	scene := h.scene("remove joint")
	j, ok := h.engine.joints[id]
	if !ok || j.Scene != h.sceneID {
		return false
	}
	h.removeJoint(scene, j.ID)
	return true
}

func (h *SceneHandle) removeJoint(scene *Scene, id uint64) {
	j := h.engine.joints[id]
	scene.World.RemoveImpulseJoint(j.Handle)
	delete(h.engine.joints, id)
	h.engine.log.Debug("joint removed", zap.Uint64("scene", h.sceneID), zap.Uint64("joint", id))
}
