package analysis

import (
	"context"
	"sync"

	"github.com/m-kovac/shcsim/internal/dsp"
	"github.com/m-kovac/shcsim/internal/dynamo"
	"github.com/m-kovac/shcsim/internal/integrators"
	"github.com/m-kovac/shcsim/internal/ripple"
	"github.com/m-kovac/shcsim/internal/shc"
)

// Band is the ripple detection band for sweep runs.
type Band struct {
	LowHz  float64
	HighHz float64
	Order  int
}

// SweepPoint summarizes ripple activity at one cholinergic drive level.
type SweepPoint struct {
	Level      float64
	Events     int
	MeanDurMs  float64
	EventsPerS float64
}

// SweepACh simulates the circuit once per cholinergic drive level, bandpasses
// the CA1 pyramidal trace, and counts detected ripples. Levels run in
// parallel: each one is an independent simulation with its own model and
// integrator (within a run the trajectory is sequential by construction).
func SweepACh(
	ctx context.Context,
	base shc.Params,
	x0 dynamo.State,
	cfg dynamo.Config,
	band Band,
	det *ripple.Detector,
	levels []float64,
) ([]SweepPoint, error) {
	points := make([]SweepPoint, len(levels))
	errs := make([]error, len(levels))

	var wg sync.WaitGroup
	for i, level := range levels {
		wg.Add(1)
		go func(idx int, lvl float64) {
			defer wg.Done()
			points[idx], errs[idx] = sweepOne(ctx, base, x0, cfg, band, det, lvl)
		}(i, level)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

func sweepOne(
	ctx context.Context,
	base shc.Params,
	x0 dynamo.State,
	cfg dynamo.Config,
	band Band,
	det *ripple.Detector,
	level float64,
) (SweepPoint, error) {
	params := base
	params.ACh.Drive = level

	model, err := shc.New(params)
	if err != nil {
		return SweepPoint{}, err
	}

	sim := dynamo.New(model, integrators.NewRK4(), nil)
	result, err := sim.Run(ctx, x0, cfg)
	if err != nil {
		return SweepPoint{}, err
	}

	trace, err := result.Row(shc.CA1Pyr)
	if err != nil {
		return SweepPoint{}, err
	}

	fsHz := 1000.0 / cfg.Dt
	filtered, err := dsp.Bandpass(trace, band.LowHz, band.HighHz, fsHz, band.Order)
	if err != nil {
		return SweepPoint{}, err
	}

	events, err := det.Detect(filtered, cfg.Dt)
	if err != nil {
		return SweepPoint{}, err
	}

	point := SweepPoint{Level: level, Events: len(events)}
	if len(events) > 0 {
		total := 0.0
		for _, e := range events {
			total += e.DurationMs(cfg.Dt)
		}
		point.MeanDurMs = total / float64(len(events))
	}
	if dur := cfg.DurationMs(); dur > 0 {
		point.EventsPerS = float64(len(events)) / (dur / 1000.0)
	}
	return point, nil
}
