package engine

import (
	"errors"
	"fmt"
)

// Precondition violations. They reach callers wrapped in a *FatalError
// panic value.
var (
	ErrUnknownScene    = errors.New("engine: unknown scene")
	ErrUnknownBody     = errors.New("engine: unknown body")
	ErrOrphanCollider  = errors.New("engine: collider has no parent body")
	ErrUnstampedBody   = errors.New("engine: rigid body carries no engine id")
	ErrCrossSceneJoint = errors.New("engine: joint bodies live in another scene")
)

// ErrSceneExists is returned by AddScene for a scene id already in use.
var ErrSceneExists = errors.New("engine: scene already exists")

// FatalError is the panic value for a broken precondition.
type FatalError struct {
	Op    string
	Scene uint64
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s (scene %d): %v", e.Op, e.Scene, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func fatal(op string, scene uint64, err error) {
	panic(&FatalError{Op: op, Scene: scene, Err: err})
}

// AsFatal reports whether a recovered panic value is a *FatalError.
func AsFatal(r any) (*FatalError, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
