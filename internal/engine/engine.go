package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/san-kum/scenekit/internal/physics"
	"go.uber.org/zap"
)

// Engine is the process-wide state: the id counter, every body and joint
// across all scenes, the scenes themselves and the watcher binding.
type Engine struct {
	log *zap.Logger

	ids    IdentityRegistry
	bodies map[uint64]*Body
	joints map[uint64]*JointRecord
	scenes map[uint64]*Scene

	watcher      uint64
	watcherBound bool
}

// New returns an empty engine. A nil logger discards everything.
func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		log:    log,
		bodies: make(map[uint64]*Body, 256),
		joints: make(map[uint64]*JointRecord, 64),
		scenes: make(map[uint64]*Scene),
	}
}

func (e *Engine) Logger() *zap.Logger { return e.log }

// AddScene registers a world under an externally chosen scene id.
func (e *Engine) AddScene(id uint64, world physics.World) error {
	if _, ok := e.scenes[id]; ok {
		return fmt.Errorf("%w: %d", ErrSceneExists, id)
	}
	e.scenes[id] = newScene(id, world)
	e.log.Info("scene added", zap.Uint64("scene", id))
	return nil
}

// RemoveScene drops a scene with its bodies and joints. Handles bound to it
// become stale.
func (e *Engine) RemoveScene(id uint64) bool {
	s, ok := e.scenes[id]
	if !ok {
		return false
	}
	for _, jid := range slices.Sorted(maps.Keys(e.joints)) {
		if e.joints[jid].Scene == id {
			delete(e.joints, jid)
		}
	}
	for bid := range s.bodies {
		delete(e.bodies, bid)
	}
	delete(e.scenes, id)
	e.log.Info("scene removed", zap.Uint64("scene", id), zap.Int("bodies", len(s.bodies)))
	return true
}

// Scene returns the scene with the given id. A miss is not fatal here; the
// façade is what treats unknown scenes as programming errors.
func (e *Engine) Scene(id uint64) (*Scene, bool) {
	s, ok := e.scenes[id]
	return s, ok
}

func (e *Engine) mustScene(id uint64, op string) *Scene {
	s, ok := e.scenes[id]
	if !ok {
		fatal(op, id, ErrUnknownScene)
	}
	return s
}

// SceneIDs returns every scene id in ascending order.
func (e *Engine) SceneIDs() []uint64 {
	return slices.Sorted(maps.Keys(e.scenes))
}

// Handle returns a façade bound to scene id. The scene must exist by the
// time any operation runs on the handle.
func (e *Engine) Handle(id uint64) *SceneHandle {
	return &SceneHandle{engine: e, sceneID: id}
}

func (e *Engine) Body(id uint64) (*Body, bool) {
	b, ok := e.bodies[id]
	return b, ok
}

func (e *Engine) Joint(id uint64) (*JointRecord, bool) {
	j, ok := e.joints[id]
	return j, ok
}

// BodyIDs returns the ids of the bodies owned by a scene, ascending.
func (e *Engine) BodyIDs(scene uint64) []uint64 {
	s, ok := e.scenes[scene]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(s.bodies))
}

// JointIDs returns the ids of the joints attached to a body, ascending.
func (e *Engine) JointIDs(body uint64) []uint64 {
	var ids []uint64
	for id, j := range e.joints {
		if j.Body1 == body || j.Body2 == body {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (e *Engine) BodyCount() int  { return len(e.bodies) }
func (e *Engine) JointCount() int { return len(e.joints) }

// NextID is the id the next body or joint will receive.
func (e *Engine) NextID() uint64 { return e.ids.Peek() }

// Watcher returns the bound body of interest. The id is not validated.
func (e *Engine) Watcher() (uint64, bool) {
	return e.watcher, e.watcherBound
}
