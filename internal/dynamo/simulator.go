package dynamo

import (
	"context"
	"fmt"
)

// Simulator runs one system with one integrator and an optional drive source.
type Simulator struct {
	sys        System
	integrator Integrator
	drive      DriveSource
	metrics    []Metric
	observers  []Observer
}

// New creates a simulator. A nil drive means zero external input.
func New(sys System, integrator Integrator, drive DriveSource) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		drive:      drive,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run produces a trajectory of exactly cfg.Steps states. The first column is
// x0 unmodified; each following column is the RK4 (or whatever integrator was
// supplied) advance of the previous one. Deterministic given (x0, cfg, system
// parameters). Numeric overflow/NaN propagates through subsequent steps unless
// cfg.ValidateState is set, in which case the run stops early and records a
// SimError.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	result := &Result{
		States:  make([]State, 0, cfg.Steps),
		Drives:  make([]Drive, 0, cfg.Steps),
		Times:   make([]float64, 0, cfg.Steps),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	s.record(result, x, t)

	for i := 1; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		u := s.driveAt(t)
		x = s.integrator.Step(s.sys, x, u, t, cfg.Dt)
		t = float64(i) * cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}

		result.StepsTaken++
		s.record(result, x, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) record(result *Result, x State, t float64) {
	u := s.driveAt(t)
	for _, m := range s.metrics {
		m.Observe(x, u, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, u, t)
	}
	result.States = append(result.States, x.Clone())
	result.Drives = append(result.Drives, u)
	result.Times = append(result.Times, t)
}

func (s *Simulator) driveAt(t float64) Drive {
	if s.drive == nil {
		return nil
	}
	return s.drive.At(t)
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: got %f", ErrBadTimestep, cfg.Dt)
	}
	if cfg.Steps < 1 {
		return fmt.Errorf("%w: got %d", ErrBadStepCount, cfg.Steps)
	}
	if len(x0) != s.sys.StateDim() {
		return fmt.Errorf("%w: state has %d entries, system wants %d", ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}
	return nil
}
