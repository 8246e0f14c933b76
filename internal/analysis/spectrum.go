package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided magnitude spectrum of x and the matching
// frequency axis in Hz for a sampling rate fsHz.
func PowerSpectrum(x []float64, fsHz float64) (freqs, power []float64) {
	n := len(x)
	if n == 0 {
		return nil, nil
	}

	spec := fft.FFTReal(x)
	half := n / 2
	freqs = make([]float64, half)
	power = make([]float64, half)
	for k := 0; k < half; k++ {
		freqs[k] = float64(k) * fsHz / float64(n)
		power[k] = cmplx.Abs(spec[k])
	}
	return freqs, power
}

// DominantFrequency returns the frequency of the largest non-DC spectral peak.
func DominantFrequency(x []float64, fsHz float64) float64 {
	freqs, power := PowerSpectrum(x, fsHz)
	if len(power) < 2 {
		return 0
	}
	best := 1
	for k := 2; k < len(power); k++ {
		if power[k] > power[best] {
			best = k
		}
	}
	return freqs[best]
}

// BandPower sums spectral magnitude over [lowHz, highHz].
func BandPower(x []float64, fsHz, lowHz, highHz float64) float64 {
	freqs, power := PowerSpectrum(x, fsHz)
	sum := 0.0
	for k := range freqs {
		if freqs[k] >= lowHz && freqs[k] <= highHz {
			sum += power[k]
		}
	}
	return sum
}
