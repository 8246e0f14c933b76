package dsp

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrFilterSpec indicates invalid bandpass parameters.
var ErrFilterSpec = errors.New("dsp: invalid filter parameters")

// Bandpass applies a zero-phase (forward-backward) Butterworth bandpass of the
// given order to signal. Cutoffs and sampling rate are in Hz; the effective
// filter order is doubled by the two passes and the phase response cancels.
func Bandpass(signal []float64, lowHz, highHz, fsHz float64, order int) ([]float64, error) {
	b, a, err := butterBandpass(lowHz, highHz, fsHz, order)
	if err != nil {
		return nil, err
	}
	return filtFilt(b, a, signal)
}

// butterBandpass designs digital Butterworth bandpass coefficients via the
// analog prototype, lowpass-to-bandpass transform, and bilinear transform with
// frequency pre-warping.
func butterBandpass(lowHz, highHz, fsHz float64, order int) (b, a []float64, err error) {
	if order < 1 {
		return nil, nil, fmt.Errorf("%w: order %d", ErrFilterSpec, order)
	}
	if fsHz <= 0 {
		return nil, nil, fmt.Errorf("%w: sampling rate %g Hz", ErrFilterSpec, fsHz)
	}
	nyq := fsHz / 2
	if lowHz <= 0 || highHz <= lowHz || highHz >= nyq {
		return nil, nil, fmt.Errorf("%w: band [%g, %g] Hz outside (0, %g)", ErrFilterSpec, lowHz, highHz, nyq)
	}

	// Pre-warped analog band edges.
	fs2 := 2 * fsHz
	w1 := fs2 * math.Tan(math.Pi*lowHz/fsHz)
	w2 := fs2 * math.Tan(math.Pi*highHz/fsHz)
	bw := w2 - w1
	wo := math.Sqrt(w1 * w2)

	// Analog Butterworth prototype: order poles on the unit circle, left half
	// plane, no zeros, unit gain.
	proto := make([]complex128, order)
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		proto[k] = cmplx.Exp(complex(0, theta))
	}

	// Lowpass-to-bandpass: each prototype pole splits into a conjugate pair;
	// order zeros appear at s=0; gain scales by bw^order.
	poles := make([]complex128, 0, 2*order)
	for _, p := range proto {
		ps := p * complex(bw/2, 0)
		d := cmplx.Sqrt(ps*ps - complex(wo*wo, 0))
		poles = append(poles, ps+d, ps-d)
	}
	zeros := make([]complex128, order) // all at s = 0
	gain := math.Pow(bw, float64(order))

	// Bilinear transform s -> z. Degree shortfall of the zeros maps to z=-1.
	c := complex(fs2, 0)
	zPoles := make([]complex128, len(poles))
	num := complex(gain, 0)
	for i, p := range poles {
		zPoles[i] = (c + p) / (c - p)
		num /= (c - p)
	}
	zZeros := make([]complex128, 0, len(poles))
	for _, z := range zeros {
		zZeros = append(zZeros, (c+z)/(c-z))
		num *= (c - z)
	}
	for len(zZeros) < len(zPoles) {
		zZeros = append(zZeros, -1)
	}
	k := real(num)

	b = polyFromRoots(zZeros)
	a = polyFromRoots(zPoles)
	for i := range b {
		b[i] *= k
	}
	return b, a, nil
}

// polyFromRoots expands prod(z - r_i) into real coefficients, highest degree
// first. Roots must come in conjugate pairs (or be real) for the imaginary
// parts to cancel.
func polyFromRoots(roots []complex128) []float64 {
	coeffs := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = real(c)
	}
	return out
}

// lfilter runs a direct form II transposed IIR filter with zero initial state.
func lfilter(b, a, x []float64) []float64 {
	n := len(b)
	if len(a) > n {
		n = len(a)
	}
	bp := make([]float64, n)
	ap := make([]float64, n)
	copy(bp, b)
	copy(ap, a)

	a0 := ap[0]
	for i := range bp {
		bp[i] /= a0
		ap[i] /= a0
	}

	z := make([]float64, n-1)
	y := make([]float64, len(x))
	for i, xi := range x {
		yi := bp[0]*xi + z[0]
		for j := 0; j < n-2; j++ {
			z[j] = bp[j+1]*xi + z[j+1] - ap[j+1]*yi
		}
		z[n-2] = bp[n-1]*xi - ap[n-1]*yi
		y[i] = yi
	}
	return y
}

// filtFilt applies the filter forward and backward over an odd-extended copy
// of x, cancelling phase distortion. The extension length follows the usual
// 3*(filter length - 1) convention.
func filtFilt(b, a, x []float64) ([]float64, error) {
	n := len(b)
	if len(a) > n {
		n = len(a)
	}
	ext := 3 * (n - 1)
	if len(x) <= ext {
		return nil, fmt.Errorf("%w: signal of %d samples too short for order (needs > %d)", ErrFilterSpec, len(x), ext)
	}

	padded := make([]float64, 0, len(x)+2*ext)
	for i := ext; i >= 1; i-- {
		padded = append(padded, 2*x[0]-x[i])
	}
	padded = append(padded, x...)
	last := len(x) - 1
	for i := 1; i <= ext; i++ {
		padded = append(padded, 2*x[last]-x[last-i])
	}

	y := lfilter(b, a, padded)
	reverse(y)
	y = lfilter(b, a, y)
	reverse(y)

	return y[ext : ext+len(x)], nil
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
