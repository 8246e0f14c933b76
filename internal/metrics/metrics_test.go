package metrics

import (
	"math"
	"testing"

	"github.com/m-kovac/shcsim/internal/dynamo"
	"github.com/m-kovac/shcsim/internal/shc"
)

func TestSaturationCleanRun(t *testing.T) {
	m := NewSaturation(50.0)
	for i := 0; i < 10; i++ {
		m.Observe(dynamo.State{1, -2, 3}, nil, float64(i))
	}
	if got := m.Value(); got != 1.0 {
		t.Errorf("clean run saturation %f, want 1", got)
	}
}

func TestSaturationViolations(t *testing.T) {
	m := NewSaturation(50.0)
	m.Observe(dynamo.State{1}, nil, 0)
	m.Observe(dynamo.State{100}, nil, 1)
	m.Observe(dynamo.State{math.NaN()}, nil, 2)
	m.Observe(dynamo.State{1}, nil, 3)

	if got := m.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("saturation %f, want 0.5", got)
	}

	m.Reset()
	if got := m.Value(); got != 1.0 {
		t.Errorf("after reset: %f, want 1", got)
	}
}

func TestMeanRate(t *testing.T) {
	sig := shc.Sigmoid{Vref: 3.0, Gain: 1.0}
	m := NewMeanRate("ca3_rate", 0, sig, 0, 1)

	// Two samples at Vref: rate is exactly 0.5 each.
	m.Observe(dynamo.State{3.0}, nil, 0)
	m.Observe(dynamo.State{3.0}, nil, 1)

	if got := m.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("mean rate %f, want 0.5", got)
	}
	if m.Name() != "ca3_rate" {
		t.Errorf("name %q", m.Name())
	}
}

func TestMeanRateIgnoresShortState(t *testing.T) {
	m := NewMeanRate("r", 5, shc.Sigmoid{Vref: 0, Gain: 1}, 0, 1)
	m.Observe(dynamo.State{1, 2}, nil, 0)
	if got := m.Value(); got != 0 {
		t.Errorf("expected 0 for out-of-range index, got %f", got)
	}
}

func TestDriveEffort(t *testing.T) {
	m := NewDriveEffort()
	m.Observe(nil, dynamo.Drive{1, -2, 0}, 0)
	m.Observe(nil, dynamo.Drive{0, 0, 1}, 1)

	// (3 + 1) / 2 samples
	if got := m.Value(); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("drive effort %f, want 2", got)
	}

	m.Reset()
	if got := m.Value(); got != 0 {
		t.Errorf("after reset: %f, want 0", got)
	}
}
