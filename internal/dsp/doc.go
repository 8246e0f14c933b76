// Package dsp provides the signal-processing primitives used by the ripple
// detector: same-mode convolution, moving-average and Gaussian smoothing
// windows, robust statistics, and a zero-phase Butterworth bandpass filter.
package dsp
