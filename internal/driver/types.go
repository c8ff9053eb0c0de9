package driver

import (
	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
)

// Metric accumulates a scalar over the watched body's trajectory.
type Metric interface {
	Name() string
	Observe(st physics.BodyState, t float64)
	Value() float64
	Reset()
}

// Observer is notified once at the end of every tick, after all listeners
// have run.
type Observer interface {
	OnTick(e *engine.Engine, tick uint64, t float64)
}

type ObserverFunc func(e *engine.Engine, tick uint64, t float64)

func (f ObserverFunc) OnTick(e *engine.Engine, tick uint64, t float64) { f(e, tick, t) }

type Config struct {
	Dt float64
	// Focus is the scene that receives window events.
	Focus uint64
	// RecoverListeners turns a panicking listener into a logged warning.
	RecoverListeners bool
}

func DefaultConfig() Config {
	return Config{Dt: 1.0 / 60.0}
}

// StopReason says why Run returned.
type StopReason int

const (
	StopBudget StopReason = iota
	StopClosed
	StopCanceled
)

func (r StopReason) String() string {
	switch r {
	case StopClosed:
		return "closed"
	case StopCanceled:
		return "canceled"
	default:
		return "budget"
	}
}

type Result struct {
	Ticks     uint64
	Time      float64
	Reason    StopReason
	Metrics   map[string]float64
	Recovered int
}
