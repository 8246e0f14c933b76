// Package experiment wires models, integrators, drives, and metrics together
// for named CLI runs.
package experiment

import (
	"fmt"

	"github.com/m-kovac/shcsim/internal/drive"
	"github.com/m-kovac/shcsim/internal/dynamo"
	"github.com/m-kovac/shcsim/internal/integrators"
	"github.com/m-kovac/shcsim/internal/metrics"
	"github.com/m-kovac/shcsim/internal/shc"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	drives      map[string]func(p map[string]float64) dynamo.DriveSource
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		drives:      make(map[string]func(p map[string]float64) dynamo.DriveSource),
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }

	r.drives["none"] = func(p map[string]float64) dynamo.DriveSource {
		return drive.NewNone(shc.NumDrives)
	}
	r.drives["step"] = func(p map[string]float64) dynamo.DriveSource {
		return drive.NewStep(shc.NumDrives, int(p["index"]), p["amp"], p["start"], p["stop"])
	}
	r.drives["ramp"] = func(p map[string]float64) dynamo.DriveSource {
		return drive.NewRamp(shc.NumDrives, int(p["index"]), p["slope"], p["start"], p["max"])
	}

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetDrive(name string, params map[string]float64) (dynamo.DriveSource, error) {
	fn, ok := r.drives[name]
	if !ok {
		return nil, fmt.Errorf("unknown drive: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics returns the standard run metrics for an SHC model.
func (r *Registry) DefaultMetrics(model *shc.Model) []dynamo.Metric {
	p := model.Params()
	return []dynamo.Metric{
		metrics.NewSaturation(50.0),
		metrics.NewMeanRate("ca3_rate", shc.CA3Pyr, p.CA3.Pyr, p.RateBase, p.RateScale),
		metrics.NewMeanRate("ca1_rate", shc.CA1Pyr, p.CA1.Pyr, p.RateBase, p.RateScale),
		metrics.NewDriveEffort(),
	}
}
