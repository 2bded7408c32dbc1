package flightsim

import (
	"context"
	"sync"
)

// Ensemble runs the same configuration over consecutive seeds in parallel.
// Each run gets its own Simulator from the factory.
type Ensemble struct {
	build     func() (*Simulator, error)
	numRuns   int
	seedStart int64
}

func NewEnsemble(build func() (*Simulator, error), numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

// Run returns one result per seed, in seed order. The first error wins.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sim, err := e.build()
			if err != nil {
				errs[idx] = err
				return
			}
			c := cfg
			c.Seed = e.seedStart + int64(idx)
			c.RealTime = false
			results[idx], errs[idx] = sim.Run(ctx, c)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
