package dsp

import (
	"math"
	"sort"
)

// ConvolveSame convolves x with kernel k and returns the centered "same"
// segment: output has len(x) samples and output[i] corresponds to the kernel
// centered on x[i] (full-convolution index i + (len(k)-1)/2).
func ConvolveSame(x, k []float64) []float64 {
	n := len(x)
	m := len(k)
	y := make([]float64, n)
	if n == 0 || m == 0 {
		return y
	}

	start := (m - 1) / 2
	for i := 0; i < n; i++ {
		t := i + start
		lo := t - m + 1
		if lo < 0 {
			lo = 0
		}
		hi := t
		if hi > n-1 {
			hi = n - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += x[j] * k[t-j]
		}
		y[i] = sum
	}
	return y
}

// MovingAverage smooths x with a centered boxcar of w samples (w >= 1).
func MovingAverage(x []float64, w int) []float64 {
	if w < 1 {
		w = 1
	}
	k := make([]float64, w)
	inv := 1.0 / float64(w)
	for i := range k {
		k[i] = inv
	}
	return ConvolveSame(x, k)
}

// GaussWin returns a symmetric Gaussian window of n samples with shape
// parameter alpha (inverse width, gausswin convention):
//
//	w[k] = exp(-0.5 * (alpha * d / ((n-1)/2))^2), d = k - (n-1)/2
//
// normalized to unit area so convolution preserves signal scale.
func GaussWin(n int, alpha float64) []float64 {
	if n < 1 {
		return nil
	}
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}

	half := float64(n-1) / 2.0
	sum := 0.0
	for i := 0; i < n; i++ {
		d := float64(i) - half
		v := math.Exp(-0.5 * math.Pow(alpha*d/half, 2))
		w[i] = v
		sum += v
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// Median returns the middle value of x (mean of the two middle values for even
// lengths). x is not modified.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, x)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}

// StdDev returns the population standard deviation of x.
func StdDev(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}
