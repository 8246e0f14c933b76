package analysis

import (
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

func TestDominantFrequency(t *testing.T) {
	fs := 1000.0
	n := 1024
	freq := 128.0 * fs / float64(n) // bin-aligned, 125 Hz exactly

	x := sine(freq, fs, n)
	got := DominantFrequency(x, fs)
	if math.Abs(got-freq) > fs/float64(n) {
		t.Errorf("dominant frequency %f, want %f", got, freq)
	}
}

func TestPowerSpectrumShape(t *testing.T) {
	fs := 1000.0
	x := sine(100, fs, 512)

	freqs, power := PowerSpectrum(x, fs)
	if len(freqs) != 256 || len(power) != 256 {
		t.Fatalf("one-sided spectrum length %d/%d, want 256", len(freqs), len(power))
	}
	if freqs[0] != 0 {
		t.Errorf("first bin %f, want 0 (DC)", freqs[0])
	}
	if math.Abs(freqs[255]-255*fs/512) > 1e-9 {
		t.Errorf("last bin %f", freqs[255])
	}

	freqs, power = PowerSpectrum(nil, fs)
	if freqs != nil || power != nil {
		t.Error("empty input should produce nil spectrum")
	}
}

func TestBandPower(t *testing.T) {
	fs := 1000.0
	n := 1024
	freq := 128.0 * fs / float64(n)
	x := sine(freq, fs, n)

	inBand := BandPower(x, fs, 100, 150)
	outBand := BandPower(x, fs, 300, 400)
	if inBand <= 10*outBand {
		t.Errorf("in-band power %f not dominant over out-of-band %f", inBand, outBand)
	}
}
