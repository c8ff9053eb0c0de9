package engine

import "github.com/san-kum/scenekit/internal/physics"

// Scene is one physics world plus its listener slots. Each slot holds at
// most one listener; installing another replaces it.
type Scene struct {
	ID    uint64
	World physics.World

	onEvent     EventListener
	onStep      StepListener
	onCollision CollisionHandler
	onForce     ForceHandler

	bodies map[uint64]struct{}
}

func newScene(id uint64, world physics.World) *Scene {
	return &Scene{
		ID:     id,
		World:  world,
		bodies: make(map[uint64]struct{}),
	}
}

// Listeners reports which slots are occupied, in the order event, step,
// collision, force.
func (s *Scene) Listeners() [4]bool {
	return [4]bool{s.onEvent != nil, s.onStep != nil, s.onCollision != nil, s.onForce != nil}
}

func (s *Scene) BodyCount() int { return len(s.bodies) }
