package dynamo

import (
	"fmt"
	"math"
)

// State is a vector of state variables. For the SHC model each index maps to a
// fixed population/variable; callers must not reorder entries.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Drive is a vector of external input currents, one per drivable population.
// A nil Drive means no external input.
type Drive []float64

// System is an ODE system dX/dt = f(X, u, t). Derive must be pure: no internal
// state, no I/O. NaN/Inf in x propagate through the returned derivative
// unmodified; the integrator does not correct them.
type System interface {
	Derive(x State, u Drive, t float64) State
	StateDim() int
	DriveDim() int
}

// Integrator advances a system state by one fixed step dt.
type Integrator interface {
	Step(sys System, x State, u Drive, t float64, dt float64) State
}

// DriveSource produces the external input vector at time t.
type DriveSource interface {
	At(t float64) Drive
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(x State, u Drive, t float64)
	Value() float64
	Reset()
}

// Observer is notified of every recorded state.
type Observer interface {
	OnStep(x State, u Drive, t float64)
}

// Configurable exposes named scalar parameters for sweeps.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Config controls a single run. Dt is the step size in milliseconds; Steps is
// the trajectory length N (column 0 is the initial condition, so Steps-1
// integration steps are taken). ValidateState stops the run when NaN/Inf
// appears; off by default so numeric degeneracy propagates as documented.
type Config struct {
	Dt            float64
	Steps         int
	ValidateState bool
}

// DurationMs returns the simulated time span covered by the trajectory.
func (c Config) DurationMs() float64 {
	if c.Steps < 1 {
		return 0
	}
	return float64(c.Steps-1) * c.Dt
}

// StepsFor converts a duration in milliseconds to a trajectory length.
func StepsFor(durationMs, dt float64) int {
	if dt <= 0 {
		return 0
	}
	return int(durationMs/dt) + 1
}

// Result is the trajectory produced by one run, immutable after construction.
type Result struct {
	States     []State
	Drives     []Drive
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Row extracts one state variable across the whole trajectory.
func (r *Result) Row(idx int) ([]float64, error) {
	if len(r.States) == 0 {
		return nil, fmt.Errorf("dynamo: empty trajectory")
	}
	if idx < 0 || idx >= len(r.States[0]) {
		return nil, fmt.Errorf("dynamo: state index %d out of range [0,%d)", idx, len(r.States[0]))
	}
	row := make([]float64, len(r.States))
	for i, s := range r.States {
		row[i] = s[idx]
	}
	return row, nil
}

// SimError reports where a run went numerically bad.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
