package dynamo

import (
	"context"
	"sync"
)

// Ensemble runs independent simulations in parallel. Within one trajectory the
// computation is strictly sequential, so the only exploitable parallelism is
// across runs with different initial conditions. Integrators keep scratch
// buffers between steps, so the ensemble takes a factory and builds a fresh
// one per run instead of sharing a single stepper across goroutines.
type Ensemble struct {
	sys           System
	newIntegrator func() Integrator
	drive         DriveSource
}

func NewEnsemble(sys System, newIntegrator func() Integrator, drive DriveSource) *Ensemble {
	return &Ensemble{sys: sys, newIntegrator: newIntegrator, drive: drive}
}

// Run simulates one trajectory per initial state. Each goroutine gets its own
// Simulator and its own integrator; the shared System must be read-only
// during Derive.
func (e *Ensemble) Run(ctx context.Context, inits []State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(inits))
	errs := make([]error, len(inits))

	var wg sync.WaitGroup
	for i := range inits {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s := New(e.sys, e.newIntegrator(), e.drive)
			results[idx], errs[idx] = s.Run(ctx, inits[idx], cfg)
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
