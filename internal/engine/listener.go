package engine

import (
	"github.com/san-kum/scenekit/internal/physics"
	"github.com/san-kum/scenekit/internal/window"
)

// Listener signatures. Every listener gets a handle for the scene it was
// installed on; the handle may be used to install other listeners,
// including a replacement for the one running.
//
// The driver only hands a CollisionHandler or ForceHandler events whose
// colliders still have a parent body, so both may call BodyIDOfCollider on
// every event they receive.
type (
	EventListener    func(h *SceneHandle, ev window.Event)
	StepListener     func(h *SceneHandle, tick uint64)
	CollisionHandler func(h *SceneHandle, ev physics.CollisionEvent)
	ForceHandler     func(h *SceneHandle, ev physics.ContactForceEvent)
)
