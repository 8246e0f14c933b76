package dsp

import (
	"errors"
	"math"
	"testing"
)

func sine(freqHz, fsHz float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freqHz * float64(i) / fsHz)
	}
	return x
}

// rms over the middle half of the signal, away from edge transients.
func interiorRMS(x []float64) float64 {
	lo, hi := len(x)/4, 3*len(x)/4
	sum := 0.0
	for i := lo; i < hi; i++ {
		sum += x[i] * x[i]
	}
	return math.Sqrt(sum / float64(hi-lo))
}

func TestBandpassPassesInBand(t *testing.T) {
	fs := 1000.0
	x := sine(180, fs, 2000)

	y, err := Bandpass(x, 120, 250, fs, 4)
	if err != nil {
		t.Fatalf("bandpass failed: %v", err)
	}
	if len(y) != len(x) {
		t.Fatalf("output length %d, want %d", len(y), len(x))
	}

	in := interiorRMS(x)
	out := interiorRMS(y)
	if out < 0.85*in || out > 1.1*in {
		t.Errorf("in-band amplitude not preserved: rms %f vs %f", out, in)
	}
}

func TestBandpassRejectsOutOfBand(t *testing.T) {
	fs := 1000.0

	for _, freq := range []float64{10.0, 400.0} {
		x := sine(freq, fs, 2000)
		y, err := Bandpass(x, 120, 250, fs, 4)
		if err != nil {
			t.Fatalf("bandpass failed: %v", err)
		}
		in := interiorRMS(x)
		out := interiorRMS(y)
		if out > in/20 {
			t.Errorf("%g Hz insufficiently attenuated: rms %f vs %f", freq, out, in)
		}
	}
}

func TestBandpassZeroPhase(t *testing.T) {
	fs := 1000.0
	x := sine(180, fs, 2000)

	y, err := Bandpass(x, 120, 250, fs, 4)
	if err != nil {
		t.Fatalf("bandpass failed: %v", err)
	}

	// Forward-backward filtering leaves an in-band sine aligned with the
	// input; any residual phase shift would show up as a large pointwise
	// difference even with matched amplitude.
	maxDiff := 0.0
	for i := len(x) / 4; i < 3*len(x)/4; i++ {
		d := math.Abs(y[i] - x[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	if maxDiff > 0.2 {
		t.Errorf("in-band sine shifted or distorted: max pointwise diff %f", maxDiff)
	}
}

func TestBandpassSeparatesComponents(t *testing.T) {
	fs := 1000.0
	n := 2000
	inBand := sine(180, fs, n)
	x := make([]float64, n)
	for i := range x {
		x[i] = inBand[i] + 2*math.Sin(2*math.Pi*20*float64(i)/fs)
	}

	y, err := Bandpass(x, 120, 250, fs, 4)
	if err != nil {
		t.Fatalf("bandpass failed: %v", err)
	}

	// The recovered signal should track the in-band component alone.
	maxDiff := 0.0
	for i := n / 4; i < 3*n/4; i++ {
		d := math.Abs(y[i] - inBand[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	if maxDiff > 0.25 {
		t.Errorf("slow component not removed: max diff from in-band part %f", maxDiff)
	}
}

func TestBandpassSpecErrors(t *testing.T) {
	x := make([]float64, 1000)

	tests := []struct {
		name  string
		low   float64
		high  float64
		fs    float64
		order int
	}{
		{"zero low", 0, 250, 1000, 4},
		{"inverted band", 250, 120, 1000, 4},
		{"high at nyquist", 120, 500, 1000, 4},
		{"zero fs", 120, 250, 0, 4},
		{"zero order", 120, 250, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bandpass(x, tt.low, tt.high, tt.fs, tt.order)
			if !errors.Is(err, ErrFilterSpec) {
				t.Errorf("expected ErrFilterSpec, got %v", err)
			}
		})
	}
}

func TestBandpassShortSignal(t *testing.T) {
	x := make([]float64, 10)
	_, err := Bandpass(x, 120, 250, 1000, 4)
	if !errors.Is(err, ErrFilterSpec) {
		t.Errorf("expected ErrFilterSpec for short signal, got %v", err)
	}
}

func TestPolyFromRoots(t *testing.T) {
	// (z-1)(z+1) = z^2 - 1
	coeffs := polyFromRoots([]complex128{1, -1})
	want := []float64{1, 0, -1}
	if len(coeffs) != len(want) {
		t.Fatalf("got %d coefficients, want %d", len(coeffs), len(want))
	}
	for i := range want {
		if math.Abs(coeffs[i]-want[i]) > 1e-12 {
			t.Errorf("coeff %d = %f, want %f", i, coeffs[i], want[i])
		}
	}
}

func TestLfilterMovingSum(t *testing.T) {
	// b = [1, 1], a = [1]: y[i] = x[i] + x[i-1].
	x := []float64{1, 2, 3, 4}
	y := lfilter([]float64{1, 1}, []float64{1}, x)
	want := []float64{1, 3, 5, 7}
	for i := range want {
		if math.Abs(y[i]-want[i]) > 1e-12 {
			t.Errorf("y[%d] = %f, want %f", i, y[i], want[i])
		}
	}
}
