// Package engine keeps a live physics-backed scene graph: bodies, joints and
// listeners layered over one physics.World per scene.
//
// Three identity spaces meet here:
//
//   - engine ids, shared by bodies and joints, unique for the life of an [Engine]
//   - rigid-body and joint handles, unique only within one scene's world
//   - collider handles, resolved to engine ids through their parent body
//
// [SceneHandle] is the only way to mutate a scene. Listeners installed through
// it are invoked later by the driving loop with a fresh handle for the same
// scene, so a listener may add bodies, remove them or replace listeners
// (including itself).
//
// # Errors
//
// Broken preconditions (unknown scene, joint on an unknown body, collider
// without a parent) panic with a [*FatalError]. Looking up a body that does
// not exist is not an error; it returns false.
//
// # Thread Safety
//
// Engine and SceneHandle are NOT thread-safe. One goroutine owns the engine
// and runs every façade call, dispatch and world step in sequence.
package engine
