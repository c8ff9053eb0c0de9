package driver

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/scenekit/internal/engine"
)

// Job sets up one independent run. Setup must build its own engine; jobs
// share nothing and each runs on its own goroutine.
type Job struct {
	Name  string
	Setup func() (*Driver, error)
}

type EnsembleResult struct {
	Name   string
	Result *Result
	Err    error
}

// RunEnsemble runs every job for ticks ticks concurrently and returns the
// results in job order. A fatal engine error ends only the job that hit it.
func RunEnsemble(ctx context.Context, jobs []Job, ticks uint64) []EnsembleResult {
	results := make([]EnsembleResult, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = runJob(ctx, job, ticks)
		}()
	}
	wg.Wait()

	return results
}

func runJob(ctx context.Context, job Job, ticks uint64) (res EnsembleResult) {
	res.Name = job.Name
	defer func() {
		if r := recover(); r != nil {
			fe, ok := engine.AsFatal(r)
			if !ok {
				panic(r)
			}
			res.Err = fe
		}
	}()

	d, err := job.Setup()
	if err != nil {
		res.Err = fmt.Errorf("setup %s: %w", job.Name, err)
		return res
	}
	res.Result, res.Err = d.Run(ctx, ticks)
	return res
}
