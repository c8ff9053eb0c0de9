package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
	"github.com/san-kum/scenekit/internal/physics/memworld"
)

func ensembleJob(name string, stepListener engine.StepListener) Job {
	return Job{
		Name: name,
		Setup: func() (*Driver, error) {
			w, err := memworld.New(physics.Settings{Integrator: "euler"})
			if err != nil {
				return nil, err
			}
			e := engine.New(nil)
			if err := e.AddScene(0, w); err != nil {
				return nil, err
			}
			if stepListener != nil {
				e.Handle(0).SetStepListener(stepListener)
			}
			return New(e, nil, DefaultConfig())
		},
	}
}

func TestRunEnsemble(t *testing.T) {
	jobs := []Job{
		ensembleJob("a", nil),
		ensembleJob("fatal", func(h *engine.SceneHandle, tick uint64) {
			if tick == 3 {
				h.AddJoint(engine.Joint{Body1: 7, Body2: 8})
			}
		}),
		{Name: "broken", Setup: func() (*Driver, error) { return New(engine.New(nil), nil, Config{}) }},
		ensembleJob("b", nil),
	}

	results := RunEnsemble(context.Background(), jobs, 10)
	if len(results) != 4 {
		t.Fatalf("results = %d", len(results))
	}
	for _, i := range []int{0, 3} {
		r := results[i]
		if r.Err != nil || r.Result.Ticks != 10 || r.Name != jobs[i].Name {
			t.Errorf("job %s: %+v", jobs[i].Name, r)
		}
	}
	if !errors.Is(results[1].Err, engine.ErrUnknownBody) {
		t.Errorf("fatal job err = %v", results[1].Err)
	}
	if results[2].Err == nil || results[2].Result != nil {
		t.Errorf("broken job = %+v", results[2])
	}
}
