package shc

import (
	"fmt"
	"math"

	"github.com/m-kovac/shcsim/internal/dynamo"
)

// State vector indices. The order is fixed and semantically meaningful; each
// trajectory row maps to one of these populations/variables.
const (
	CA3Pyr = iota // CA3 pyramidal membrane potential
	CA3Inh        // CA3 interneuron membrane potential
	CA3Dep        // CA3 synaptic depression
	CA1Pyr        // CA1 pyramidal membrane potential
	CA1Inh        // CA1 interneuron membrane potential
	CA1Dep        // CA1 synaptic depression
	AChExc        // cholinergic excitatory membrane potential
	AChDep        // cholinergic synaptic depression

	NumStates
)

// External drive vector indices (see the drive package).
const (
	DriveCA3 = iota
	DriveCA1
	DriveACh

	NumDrives
)

// StateNames gives the CSV/plot label for each state index.
var StateNames = [NumStates]string{
	"ca3_pyr", "ca3_inh", "ca3_dep",
	"ca1_pyr", "ca1_inh", "ca1_dep",
	"ach_exc", "ach_dep",
}

// StateIndex resolves a state label back to its index.
func StateIndex(name string) (int, error) {
	for i, n := range StateNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("shc: unknown state %q", name)
}

// DriveIndex resolves a drive target label to its index.
func DriveIndex(name string) (int, error) {
	switch name {
	case "ca3":
		return DriveCA3, nil
	case "ca1":
		return DriveCA1, nil
	case "ach":
		return DriveACh, nil
	}
	return 0, fmt.Errorf("shc: unknown drive target %q", name)
}

// FiringRate is the logistic firing-rate function
// r(V) = base + scale / (1 + exp((Vref - V) / gain)).
func FiringRate(v float64, s Sigmoid, base, scale float64) float64 {
	return base + scale/(1.0+math.Exp((s.Vref-v)/s.Gain))
}

// Efficacy is the depression gate 1 / (1 + exp((c - Cref) / gain)): synaptic
// efficacy decreases as the depression variable c rises past the reference.
func Efficacy(c float64, g Gate) float64 {
	return 1.0 / (1.0 + math.Exp((c-g.Cref)/g.Gain))
}

// Model implements dynamo.System for the 8-state SHC circuit.
type Model struct {
	p Params
}

// New builds a model after validating the parameter set.
func New(p Params) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Model{p: p}, nil
}

func (m *Model) StateDim() int { return NumStates }
func (m *Model) DriveDim() int { return NumDrives }

// Params returns a copy of the parameter set.
func (m *Model) Params() Params { return m.p }

// DefaultState is the resting initial condition: all populations at zero with
// a small CA3 kick so the sharp-wave cycle starts deterministically.
func (m *Model) DefaultState() dynamo.State {
	x := make(dynamo.State, NumStates)
	x[CA3Pyr] = 0.1
	return x
}

// Derive evaluates the 8 coupled equations. Each one is a leaky integrator
// relaxing toward its summed synaptic drive:
//
//	CA3Pyr: depression-gated recurrent excitation, feedback inhibition, tonic drive
//	CA3Inh: local pyramidal excitation, mutual inhibition
//	CA3Dep: integrates CA3 pyramidal firing
//	CA1Pyr: depression-gated Schaffer drive from CA3, feedback inhibition, tonic drive
//	CA1Inh: local and feedforward (Schaffer) excitation, mutual inhibition
//	CA1Dep: integrates CA1 pyramidal firing and cholinergic firing
//	AChExc: depression-gated self-excitation, tonic drive
//	AChDep: integrates cholinergic firing
//
// u carries optional external currents [DriveCA3, DriveCA1, DriveACh]; nil
// means no external input.
func (m *Model) Derive(x dynamo.State, u dynamo.Drive, _ float64) dynamo.State {
	p := &m.p

	re3 := FiringRate(x[CA3Pyr], p.CA3.Pyr, p.RateBase, p.RateScale)
	ri3 := FiringRate(x[CA3Inh], p.CA3.Inh, p.RateBase, p.RateScale)
	re1 := FiringRate(x[CA1Pyr], p.CA1.Pyr, p.RateBase, p.RateScale)
	ri1 := FiringRate(x[CA1Inh], p.CA1.Inh, p.RateBase, p.RateScale)
	ra := FiringRate(x[AChExc], p.ACh.Exc, p.RateBase, p.RateScale)

	var uCA3, uCA1, uACh float64
	if len(u) >= NumDrives {
		uCA3, uCA1, uACh = u[DriveCA3], u[DriveCA1], u[DriveACh]
	}

	rec3 := p.CA3.Recurrent.Strength() * Efficacy(x[CA3Dep], p.CA3.DepGate)
	sc := p.Schaffer.Strength() * Efficacy(x[CA1Dep], p.CA1.DepGate)
	aa := p.ACh.Recurrent.Strength() * Efficacy(x[AChDep], p.ACh.DepGate)

	dx := make(dynamo.State, NumStates)

	dx[CA3Pyr] = (-x[CA3Pyr] + rec3*re3 - p.CA3.InhToPyr.Strength()*ri3 + p.CA3.Drive + uCA3) / p.CA3.TauPyr
	dx[CA3Inh] = (-x[CA3Inh] + p.CA3.PyrToInh.Strength()*re3 - p.CA3.InhToInh.Strength()*ri3) / p.CA3.TauInh
	dx[CA3Dep] = (-x[CA3Dep] + p.CA3.DepGain*re3) / p.CA3.TauDep

	dx[CA1Pyr] = (-x[CA1Pyr] + sc*re3 - p.CA1.InhToPyr.Strength()*ri1 + p.CA1.Drive + uCA1) / p.CA1.TauPyr
	dx[CA1Inh] = (-x[CA1Inh] + p.CA1.PyrToInh.Strength()*re1 + p.SchafferInh.Strength()*re3 - p.CA1.InhToInh.Strength()*ri1) / p.CA1.TauInh
	dx[CA1Dep] = (-x[CA1Dep] + p.CA1.DepGain*re1 + p.CA1.AChDepGain*ra) / p.CA1.TauDep

	dx[AChExc] = (-x[AChExc] + aa*ra + p.ACh.Drive + uACh) / p.ACh.TauExc
	dx[AChDep] = (-x[AChDep] + p.ACh.DepGain*ra) / p.ACh.TauDep

	return dx
}

// GetParams implements dynamo.Configurable with the handful of coefficients
// worth sweeping from the CLI.
func (m *Model) GetParams() map[string]float64 {
	return map[string]float64{
		"ca3_drive":       m.p.CA3.Drive,
		"ca1_drive":       m.p.CA1.Drive,
		"ach_drive":       m.p.ACh.Drive,
		"schaffer_weight": m.p.Schaffer.Weight,
		"ca3_rec_weight":  m.p.CA3.Recurrent.Weight,
		"ach_dep_gain":    m.p.CA1.AChDepGain,
	}
}

// SetParam implements dynamo.Configurable.
func (m *Model) SetParam(name string, value float64) error {
	switch name {
	case "ca3_drive":
		m.p.CA3.Drive = value
	case "ca1_drive":
		m.p.CA1.Drive = value
	case "ach_drive":
		m.p.ACh.Drive = value
	case "schaffer_weight":
		m.p.Schaffer.Weight = value
	case "ca3_rec_weight":
		m.p.CA3.Recurrent.Weight = value
	case "ach_dep_gain":
		m.p.CA1.AChDepGain = value
	default:
		return fmt.Errorf("shc: unknown parameter %q", name)
	}
	return nil
}
