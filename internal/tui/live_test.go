package tui

import (
	"testing"

	"github.com/m-kovac/shcsim/internal/dynamo"
	"github.com/m-kovac/shcsim/internal/integrators"
	"github.com/m-kovac/shcsim/internal/shc"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	sys, err := shc.New(shc.DefaultParams())
	if err != nil {
		t.Fatalf("model failed: %v", err)
	}
	return NewModel(sys, integrators.NewRK4(), nil, sys.DefaultState(), 0.1)
}

func TestResetRestoresInitialParams(t *testing.T) {
	m := newTestModel(t)

	// ach_drive starts at exactly zero in the default parameter set.
	if got := m.params["ach_drive"]; got != 0 {
		t.Fatalf("ach_drive starts at %g, want 0", got)
	}

	for i, k := range m.paramKeys {
		if k == "ach_drive" {
			m.selected = i
		}
	}
	m.adjustParam(1.05)
	if m.params["ach_drive"] == 0 {
		t.Fatal("tuning up a zero parameter should seed it")
	}

	m.reset()
	if got := m.params["ach_drive"]; got != 0 {
		t.Errorf("reset left ach_drive at %g, want its true initial 0", got)
	}
	if c, ok := m.sys.(dynamo.Configurable); ok {
		if got := c.GetParams()["ach_drive"]; got != 0 {
			t.Errorf("reset left the system's ach_drive at %g, want 0", got)
		}
	}
}

func TestAdjustParamScales(t *testing.T) {
	m := newTestModel(t)

	for i, k := range m.paramKeys {
		if k == "ca3_drive" {
			m.selected = i
		}
	}
	before := m.params["ca3_drive"]
	m.adjustParam(1.05)
	if got := m.params["ca3_drive"]; got != before*1.05 {
		t.Errorf("expected %g after tuning, got %g", before*1.05, got)
	}
}
