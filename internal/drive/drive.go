// Package drive provides time-varying external input schedules for the SHC
// model. A schedule produces the input-current vector u(t); index layout is
// defined by the model (shc.DriveCA3, shc.DriveCA1, shc.DriveACh).
package drive

import "github.com/m-kovac/shcsim/internal/dynamo"

// None supplies zero external input.
type None struct {
	dim int
}

func NewNone(dim int) *None {
	return &None{dim: dim}
}

func (n *None) At(t float64) dynamo.Drive {
	return make(dynamo.Drive, n.dim)
}

// Step injects a constant current into one population over [StartMs, StopMs).
// The canonical use is a cholinergic tone pulse to switch the circuit out of
// the ripple-generating regime mid-run.
type Step struct {
	Dim     int
	Index   int
	Amp     float64
	StartMs float64
	StopMs  float64
}

func NewStep(dim, index int, amp, startMs, stopMs float64) *Step {
	return &Step{Dim: dim, Index: index, Amp: amp, StartMs: startMs, StopMs: stopMs}
}

func (s *Step) At(t float64) dynamo.Drive {
	u := make(dynamo.Drive, s.Dim)
	if s.Index >= 0 && s.Index < s.Dim && t >= s.StartMs && t < s.StopMs {
		u[s.Index] = s.Amp
	}
	return u
}

// Ramp injects a linearly increasing current into one population from StartMs
// onward, saturating at Max.
type Ramp struct {
	Dim     int
	Index   int
	Slope   float64 // current units per millisecond
	StartMs float64
	Max     float64
}

func NewRamp(dim, index int, slope, startMs, max float64) *Ramp {
	return &Ramp{Dim: dim, Index: index, Slope: slope, StartMs: startMs, Max: max}
}

func (r *Ramp) At(t float64) dynamo.Drive {
	u := make(dynamo.Drive, r.Dim)
	if r.Index < 0 || r.Index >= r.Dim || t < r.StartMs {
		return u
	}
	v := r.Slope * (t - r.StartMs)
	if v > r.Max {
		v = r.Max
	}
	u[r.Index] = v
	return u
}
