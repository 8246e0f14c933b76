package shc

import (
	"errors"
	"fmt"
)

// ErrTimeConstant indicates a non-positive time constant; every τ is used as a
// divisor on each derivative evaluation.
var ErrTimeConstant = errors.New("shc: time constant must be strictly positive")

// ErrSigmoidGain indicates a zero sigmoid or gate gain (also a divisor).
var ErrSigmoidGain = errors.New("shc: sigmoid gain must be nonzero")

// Sigmoid parameterizes a firing-rate nonlinearity: a logistic centered on the
// reference potential Vref with slope set by Gain.
type Sigmoid struct {
	Vref float64 `yaml:"vref"`
	Gain float64 `yaml:"gain"`
}

// Gate parameterizes a depression gate: synaptic efficacy falls off as the
// depression variable rises past Cref.
type Gate struct {
	Cref float64 `yaml:"cref"`
	Gain float64 `yaml:"gain"`
}

// Projection describes one synaptic pathway: the number of afferent contacts,
// the connection probability, and the unitary synaptic weight.
type Projection struct {
	Count  int     `yaml:"count"`
	Prob   float64 `yaml:"prob"`
	Weight float64 `yaml:"weight"`
}

// Strength is the effective coupling coefficient Count*Prob*Weight.
func (p Projection) Strength() float64 {
	return float64(p.Count) * p.Prob * p.Weight
}

// CA3Params holds the CA3 circuit coefficients. The recurrent excitatory
// pathway is gated by the CA3 depression variable.
type CA3Params struct {
	Pyr Sigmoid `yaml:"pyr"`
	Inh Sigmoid `yaml:"inh"`

	Recurrent Projection `yaml:"recurrent"`
	PyrToInh  Projection `yaml:"pyr_to_inh"`
	InhToPyr  Projection `yaml:"inh_to_pyr"`
	InhToInh  Projection `yaml:"inh_to_inh"`

	DepGate Gate    `yaml:"dep_gate"`
	DepGain float64 `yaml:"dep_gain"`

	TauPyr float64 `yaml:"tau_pyr"`
	TauInh float64 `yaml:"tau_inh"`
	TauDep float64 `yaml:"tau_dep"`

	Drive float64 `yaml:"drive"`
}

// CA1Params holds the CA1 circuit coefficients. CA1 has no recurrent
// excitation; its pyramidal drive arrives over the Schaffer projection, gated
// by the CA1 depression variable, which in turn integrates both local
// pyramidal firing and cholinergic input.
type CA1Params struct {
	Pyr Sigmoid `yaml:"pyr"`
	Inh Sigmoid `yaml:"inh"`

	PyrToInh Projection `yaml:"pyr_to_inh"`
	InhToPyr Projection `yaml:"inh_to_pyr"`
	InhToInh Projection `yaml:"inh_to_inh"`

	DepGate    Gate    `yaml:"dep_gate"`
	DepGain    float64 `yaml:"dep_gain"`
	AChDepGain float64 `yaml:"ach_dep_gain"`

	TauPyr float64 `yaml:"tau_pyr"`
	TauInh float64 `yaml:"tau_inh"`
	TauDep float64 `yaml:"tau_dep"`

	Drive float64 `yaml:"drive"`
}

// AChParams holds the cholinergic population coefficients. Self-excitation is
// gated by its own depression variable, producing slow tonic oscillation when
// driven.
type AChParams struct {
	Exc Sigmoid `yaml:"exc"`

	Recurrent Projection `yaml:"recurrent"`

	DepGate Gate    `yaml:"dep_gate"`
	DepGain float64 `yaml:"dep_gain"`

	TauExc float64 `yaml:"tau_exc"`
	TauDep float64 `yaml:"tau_dep"`

	Drive float64 `yaml:"drive"`
}

// Params is the full immutable parameter set for one simulation run. It is
// passed by value into the model; Derive never mutates it. All time constants
// are in milliseconds, matching the integrator step unit.
type Params struct {
	// RateBase and RateScale are the global baseline and range of the
	// firing-rate sigmoid (r0 and r1).
	RateBase  float64 `yaml:"rate_base"`
	RateScale float64 `yaml:"rate_scale"`

	CA3 CA3Params `yaml:"ca3"`
	CA1 CA1Params `yaml:"ca1"`
	ACh AChParams `yaml:"ach"`

	// Schaffer is the CA3 pyramidal to CA1 pyramidal projection;
	// SchafferInh the feedforward CA3 pyramidal to CA1 interneuron branch.
	Schaffer    Projection `yaml:"schaffer"`
	SchafferInh Projection `yaml:"schaffer_inh"`
}

// DefaultParams returns the reference parameter set: quiescent cholinergic
// tone, CA3 tonically driven into the sharp-wave regime.
func DefaultParams() Params {
	return Params{
		RateBase:  0.0,
		RateScale: 1.0,
		CA3: CA3Params{
			Pyr: Sigmoid{Vref: 3.0, Gain: 1.0},
			Inh: Sigmoid{Vref: 4.0, Gain: 1.0},

			Recurrent: Projection{Count: 300, Prob: 0.05, Weight: 1.0},
			PyrToInh:  Projection{Count: 200, Prob: 0.10, Weight: 0.6},
			InhToPyr:  Projection{Count: 250, Prob: 0.20, Weight: 0.2},
			InhToInh:  Projection{Count: 100, Prob: 0.10, Weight: 0.5},

			DepGate: Gate{Cref: 0.5, Gain: 0.1},
			DepGain: 1.0,

			TauPyr: 6.0,
			TauInh: 3.0,
			TauDep: 250.0,

			Drive: 0.6,
		},
		CA1: CA1Params{
			Pyr: Sigmoid{Vref: 3.0, Gain: 1.0},
			Inh: Sigmoid{Vref: 4.0, Gain: 1.0},

			PyrToInh: Projection{Count: 200, Prob: 0.10, Weight: 0.5},
			InhToPyr: Projection{Count: 250, Prob: 0.20, Weight: 0.2},
			InhToInh: Projection{Count: 80, Prob: 0.10, Weight: 0.5},

			DepGate:    Gate{Cref: 0.5, Gain: 0.1},
			DepGain:    0.8,
			AChDepGain: 1.5,

			TauPyr: 6.0,
			TauInh: 3.0,
			TauDep: 250.0,

			Drive: 0.2,
		},
		ACh: AChParams{
			Exc: Sigmoid{Vref: 5.0, Gain: 1.0},

			Recurrent: Projection{Count: 100, Prob: 0.08, Weight: 1.0},

			DepGate: Gate{Cref: 0.6, Gain: 0.15},
			DepGain: 1.0,

			TauExc: 25.0,
			TauDep: 400.0,

			Drive: 0.0,
		},
		Schaffer:    Projection{Count: 400, Prob: 0.06, Weight: 0.5},
		SchafferInh: Projection{Count: 200, Prob: 0.10, Weight: 0.4},
	}
}

// Validate fails fast on configuration errors before any integration step is
// taken: non-positive time constants and zero sigmoid/gate gains would
// otherwise surface only as NaN/Inf mid-run.
func (p Params) Validate() error {
	taus := []struct {
		name string
		v    float64
	}{
		{"ca3.tau_pyr", p.CA3.TauPyr},
		{"ca3.tau_inh", p.CA3.TauInh},
		{"ca3.tau_dep", p.CA3.TauDep},
		{"ca1.tau_pyr", p.CA1.TauPyr},
		{"ca1.tau_inh", p.CA1.TauInh},
		{"ca1.tau_dep", p.CA1.TauDep},
		{"ach.tau_exc", p.ACh.TauExc},
		{"ach.tau_dep", p.ACh.TauDep},
	}
	for _, tc := range taus {
		if tc.v <= 0 {
			return fmt.Errorf("%w: %s = %g", ErrTimeConstant, tc.name, tc.v)
		}
	}

	gains := []struct {
		name string
		v    float64
	}{
		{"ca3.pyr.gain", p.CA3.Pyr.Gain},
		{"ca3.inh.gain", p.CA3.Inh.Gain},
		{"ca3.dep_gate.gain", p.CA3.DepGate.Gain},
		{"ca1.pyr.gain", p.CA1.Pyr.Gain},
		{"ca1.inh.gain", p.CA1.Inh.Gain},
		{"ca1.dep_gate.gain", p.CA1.DepGate.Gain},
		{"ach.exc.gain", p.ACh.Exc.Gain},
		{"ach.dep_gate.gain", p.ACh.DepGate.Gain},
	}
	for _, g := range gains {
		if g.v == 0 {
			return fmt.Errorf("%w: %s", ErrSigmoidGain, g.name)
		}
	}

	return nil
}
