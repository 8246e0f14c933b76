package dsp

import (
	"math"
	"testing"
)

func TestConvolveSameIdentity(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	y := ConvolveSame(x, []float64{1})
	for i := range x {
		if y[i] != x[i] {
			t.Errorf("identity kernel changed sample %d: %f", i, y[i])
		}
	}

	// Centered unit impulse of odd length also reproduces the input.
	y = ConvolveSame(x, []float64{0, 1, 0})
	for i := range x {
		if math.Abs(y[i]-x[i]) > 1e-12 {
			t.Errorf("centered impulse kernel changed sample %d: %f", i, y[i])
		}
	}
}

func TestConvolveSameLength(t *testing.T) {
	x := make([]float64, 17)
	for _, klen := range []int{1, 2, 5, 16, 40} {
		k := make([]float64, klen)
		if got := len(ConvolveSame(x, k)); got != len(x) {
			t.Errorf("kernel len %d: output len %d, want %d", klen, got, len(x))
		}
	}

	if got := len(ConvolveSame(nil, []float64{1})); got != 0 {
		t.Errorf("empty input: output len %d", got)
	}
}

func TestMovingAverageConstant(t *testing.T) {
	x := make([]float64, 20)
	for i := range x {
		x[i] = 3.0
	}

	y := MovingAverage(x, 5)
	// Interior samples see the full window; edges see a truncated one.
	for i := 2; i < 18; i++ {
		if math.Abs(y[i]-3.0) > 1e-12 {
			t.Errorf("interior sample %d: %f, want 3", i, y[i])
		}
	}
	if y[0] >= 3.0 {
		t.Errorf("edge sample should be attenuated by the truncated window, got %f", y[0])
	}
}

func TestGaussWin(t *testing.T) {
	w := GaussWin(51, 0.65)

	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-12 {
		t.Errorf("window area %f, want 1", sum)
	}

	for i := 0; i < len(w)/2; i++ {
		if math.Abs(w[i]-w[len(w)-1-i]) > 1e-15 {
			t.Errorf("window not symmetric at %d", i)
		}
	}

	mid := len(w) / 2
	for i := range w {
		if w[i] > w[mid] {
			t.Errorf("sample %d exceeds center", i)
		}
	}
}

func TestGaussWinDegenerate(t *testing.T) {
	if w := GaussWin(1, 0.65); len(w) != 1 || w[0] != 1 {
		t.Errorf("n=1 window should be [1], got %v", w)
	}
	if w := GaussWin(0, 0.65); w != nil {
		t.Errorf("n=0 window should be nil, got %v", w)
	}
}

func TestGaussWinShape(t *testing.T) {
	// Larger alpha means a narrower bell: more mass at the center.
	narrow := GaussWin(51, 2.5)
	wide := GaussWin(51, 0.65)
	if narrow[25] <= wide[25] {
		t.Errorf("narrow window center %f should exceed wide %f", narrow[25], wide[25])
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want float64
	}{
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"single", []float64{7}, 7},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.x); got != tt.want {
				t.Errorf("Median(%v) = %f, want %f", tt.x, got, tt.want)
			}
		})
	}
}

func TestMedianDoesNotMutate(t *testing.T) {
	x := []float64{3, 1, 2}
	Median(x)
	if x[0] != 3 || x[1] != 1 || x[2] != 2 {
		t.Errorf("input mutated: %v", x)
	}
}

func TestStdDev(t *testing.T) {
	// Population stddev of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2.
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := StdDev(x); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("StdDev = %f, want 2", got)
	}

	if got := StdDev([]float64{5, 5, 5}); got != 0 {
		t.Errorf("constant signal stddev %f, want 0", got)
	}
	if got := StdDev(nil); got != 0 {
		t.Errorf("empty stddev %f, want 0", got)
	}
}
