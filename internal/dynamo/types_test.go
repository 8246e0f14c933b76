package dynamo

import (
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()

	c[0] = 99
	if s[0] != 1 {
		t.Errorf("clone shares backing array with original")
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"finite", State{1, -2, 0}, true},
		{"empty", State{}, true},
		{"nan", State{1, math.NaN()}, false},
		{"pos inf", State{math.Inf(1)}, false},
		{"neg inf", State{0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateNorm(t *testing.T) {
	s := State{3, 4}
	if got := s.Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("expected norm 5, got %f", got)
	}
}

func TestStepsFor(t *testing.T) {
	tests := []struct {
		name  string
		durMs float64
		dt    float64
		want  int
	}{
		{"exact", 10.0, 0.1, 101},
		{"truncating", 9.95, 0.1, 100},
		{"one step", 0.05, 0.1, 1},
		{"zero dt", 10.0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StepsFor(tt.durMs, tt.dt); got != tt.want {
				t.Errorf("StepsFor(%g, %g) = %d, want %d", tt.durMs, tt.dt, got, tt.want)
			}
		})
	}
}

func TestConfigDurationMs(t *testing.T) {
	cfg := Config{Dt: 0.1, Steps: 101}
	if got := cfg.DurationMs(); math.Abs(got-10.0) > 1e-9 {
		t.Errorf("expected 10 ms, got %f", got)
	}

	cfg = Config{Dt: 0.1, Steps: 0}
	if got := cfg.DurationMs(); got != 0 {
		t.Errorf("expected 0 for empty trajectory, got %f", got)
	}
}

func TestResultRow(t *testing.T) {
	r := &Result{
		States: []State{{1, 10}, {2, 20}, {3, 30}},
	}

	row, err := r.Row(1)
	if err != nil {
		t.Fatalf("row failed: %v", err)
	}
	want := []float64{10, 20, 30}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %f, want %f", i, row[i], want[i])
		}
	}

	if _, err := r.Row(2); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if _, err := r.Row(-1); err == nil {
		t.Error("expected error for negative index")
	}

	empty := &Result{}
	if _, err := empty.Row(0); err == nil {
		t.Error("expected error for empty trajectory")
	}
}
