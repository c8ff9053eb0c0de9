package driver

import (
	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
)

type Sample struct {
	Tick  uint64
	Time  float64
	Body  uint64
	State physics.BodyState
}

// Recorder samples the watched body every Every ticks. Ticks on which no
// body is watched, or the watched body is gone, are skipped.
type Recorder struct {
	Every   uint64
	samples []Sample
}

func NewRecorder(every uint64) *Recorder {
	if every == 0 {
		every = 1
	}
	return &Recorder{Every: every}
}

func (r *Recorder) OnTick(e *engine.Engine, tick uint64, t float64) {
	if tick%r.Every != 0 {
		return
	}
	id, ok := e.Watcher()
	if !ok {
		return
	}
	b, ok := e.Body(id)
	if !ok {
		return
	}
	st, ok := e.Handle(b.Scene).BodyState(id)
	if !ok {
		return
	}
	r.samples = append(r.samples, Sample{Tick: tick, Time: t, Body: id, State: st})
}

func (r *Recorder) Samples() []Sample { return r.samples }

func (r *Recorder) Len() int { return len(r.samples) }

func (r *Recorder) Reset() { r.samples = r.samples[:0] }
