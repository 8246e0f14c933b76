package experiment

import (
	"context"
	"fmt"

	"github.com/m-kovac/shcsim/internal/dynamo"
)

type Config struct {
	Integrator string
	Drive      string
	InitState  []float64
	Dt         float64
	Steps      int
	Validate   bool
	Params     map[string]float64
}

type Experiment struct {
	cfg       Config
	simulator *dynamo.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(sys dynamo.System, integrator dynamo.Integrator, drv dynamo.DriveSource, metrics []dynamo.Metric) error {
	e.simulator = dynamo.New(sys, integrator, drv)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0 := make(dynamo.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	simCfg := dynamo.Config{
		Dt:            e.cfg.Dt,
		Steps:         e.cfg.Steps,
		ValidateState: e.cfg.Validate,
	}

	return e.simulator.Run(ctx, x0, simCfg)
}

// Simulator exposes the underlying simulator for attaching observers.
func (e *Experiment) Simulator() *dynamo.Simulator {
	return e.simulator
}
