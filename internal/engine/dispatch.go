package engine

import (
	"github.com/san-kum/scenekit/internal/physics"
	"github.com/san-kum/scenekit/internal/window"
)

// The Dispatch functions deliver one payload to a scene's listener slot.
// The listener is copied out of its slot before the call, so it is free to
// replace itself. Each reports whether a listener was installed.

func (e *Engine) DispatchWindowEvent(scene uint64, ev window.Event) bool {
	l := e.mustScene(scene, "dispatch window event").onEvent
	if l == nil {
		return false
	}
	l(e.Handle(scene), ev)
	return true
}

func (e *Engine) DispatchStep(scene uint64, tick uint64) bool {
	l := e.mustScene(scene, "dispatch step").onStep
	if l == nil {
		return false
	}
	l(e.Handle(scene), tick)
	return true
}

func (e *Engine) DispatchCollision(scene uint64, ev physics.CollisionEvent) bool {
	l := e.mustScene(scene, "dispatch collision").onCollision
	if l == nil {
		return false
	}
	l(e.Handle(scene), ev)
	return true
}

func (e *Engine) DispatchForce(scene uint64, ev physics.ContactForceEvent) bool {
	l := e.mustScene(scene, "dispatch force").onForce
	if l == nil {
		return false
	}
	l(e.Handle(scene), ev)
	return true
}
