package sim

import (
	"context"
	"sync"
)

// Ensemble runs independent simulators side by side. Each run gets its own
// components from the factory, so no cell is ever shared between goroutines.
type Ensemble struct {
	build   func(run int) (*Simulator, error)
	numRuns int
}

func NewEnsemble(build func(run int) (*Simulator, error), numRuns int) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, err := e.build(idx)
			if err != nil {
				errs[idx] = err
				return
			}

			results[idx], errs[idx] = s.Run(ctx, cfg)
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
