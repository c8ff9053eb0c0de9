// Package window models the windowing collaborator: the events it produces
// and the pump the driver polls each tick. The engine forwards events to
// listeners without looking inside them.
package window

import "fmt"

// Event is a raw window event.
type Event interface {
	isEvent()
}

type Resized struct {
	Width, Height int
}

type CloseRequested struct{}

type KeyState int

const (
	Pressed KeyState = iota
	Released
)

type KeyInput struct {
	Key   string
	State KeyState
}

type CursorMoved struct {
	X, Y float64
}

func (Resized) isEvent()        {}
func (CloseRequested) isEvent() {}
func (KeyInput) isEvent()       {}
func (CursorMoved) isEvent()    {}

func (e Resized) String() string      { return fmt.Sprintf("resized %dx%d", e.Width, e.Height) }
func (CloseRequested) String() string { return "close requested" }
func (e CursorMoved) String() string  { return fmt.Sprintf("cursor %.1f,%.1f", e.X, e.Y) }

func (e KeyInput) String() string {
	if e.State == Released {
		return "key up " + e.Key
	}
	return "key down " + e.Key
}
