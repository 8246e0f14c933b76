package ripple

import (
	"errors"
	"fmt"
	"math"

	"github.com/m-kovac/shcsim/internal/dsp"
)

// ErrBadSamplingStep indicates a non-positive dt.
var ErrBadSamplingStep = errors.New("ripple: sampling step must be positive")

// Event is one detected ripple: Start is the sample index of the first
// supra-threshold sample, Duration the number of samples until the envelope
// fell back below threshold. Events never overlap.
type Event struct {
	Start    int
	Duration int
}

// StartMs converts the event onset to milliseconds given the sampling step.
func (e Event) StartMs(dt float64) float64 { return float64(e.Start) * dt }

// DurationMs converts the event length to milliseconds.
func (e Event) DurationMs(dt float64) float64 { return float64(e.Duration) * dt }

// Detector holds the detection parameters. All durations are in milliseconds
// and converted to sample counts with a single truncating rule, so dt must use
// the same unit as the windows.
type Detector struct {
	// SmoothMs is the short moving-average window for the RMS estimate.
	SmoothMs float64
	// EnvelopeMs is the long Gaussian smoothing window.
	EnvelopeMs float64
	// GaussShape is the Gaussian window shape parameter (inverse width).
	GaussShape float64
	// MinDurMs is the minimum supra-threshold duration for a valid event.
	MinDurMs float64
	// ThresholdK scales the standard deviation added to the envelope median.
	ThresholdK float64
}

// NewDetector returns the reference configuration: 10 ms RMS window, 50 ms
// Gaussian envelope with shape 0.65, 30 ms minimum duration, median + 1.2*sd
// threshold.
func NewDetector() *Detector {
	return &Detector{
		SmoothMs:   10.0,
		EnvelopeMs: 50.0,
		GaussShape: 0.65,
		MinDurMs:   30.0,
		ThresholdK: 1.2,
	}
}

// samples converts a duration to a sample count, truncating toward zero. The
// same rule applies to every derived window so off-by-one behavior stays
// consistent across the pipeline.
func samples(durMs, dt float64) int {
	return int(durMs / dt)
}

// Envelope computes the smoothed ripple-power envelope: square, centered
// moving average, square root, then same-mode convolution with a unit-area
// Gaussian window. The result has the same length as the input.
func (d *Detector) Envelope(signal []float64, dt float64) ([]float64, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadSamplingStep, dt)
	}

	w := samples(d.SmoothMs, dt)
	if w < 1 {
		w = 1
	}
	g := samples(d.EnvelopeMs, dt)
	if g < 1 {
		g = 1
	}

	sq := make([]float64, len(signal))
	for i, v := range signal {
		sq[i] = v * v
	}

	rms := dsp.MovingAverage(sq, w)
	for i, v := range rms {
		if v < 0 {
			v = 0 // negative rounding residue from the convolution
		}
		rms[i] = math.Sqrt(v)
	}

	return dsp.ConvolveSame(rms, dsp.GaussWin(g, d.GaussShape)), nil
}

// Threshold is the adaptive cut: median + ThresholdK * stddev, computed once
// over the entire envelope.
func (d *Detector) Threshold(envelope []float64) float64 {
	return dsp.Median(envelope) + d.ThresholdK*dsp.StdDev(envelope)
}

// MinRun is the minimum-duration window in samples for sampling step dt.
// Callers that already hold an envelope can pass this to Segment directly
// instead of rerunning the pipeline through Detect.
func (d *Detector) MinRun(dt float64) int {
	m := samples(d.MinDurMs, dt)
	if m < 1 {
		m = 1
	}
	return m
}

// Detect runs the full pipeline over a raw (typically bandpassed) signal and
// returns the events in increasing start order. An envelope that never
// sustains the threshold yields an empty, non-nil slice; that is success.
func (d *Detector) Detect(signal []float64, dt float64) ([]Event, error) {
	env, err := d.Envelope(signal, dt)
	if err != nil {
		return nil, err
	}
	if len(env) == 0 {
		return []Event{}, nil
	}
	return Segment(env, d.Threshold(env), d.MinRun(dt)), nil
}

// Segment scans the envelope with a one-sample cursor and two states
// (scanning, inside-event).
//
// Scanning: when envelope[i] >= threshold, the next minRun samples must all
// meet the threshold; otherwise the candidate is rejected and the cursor
// advances one sample, so a candidate starting one sample later is still
// tested. Candidates whose mandatory window would run past the end of the
// signal are rejected the same way.
//
// Inside-event: the end extends sample by sample while the envelope stays at
// or above threshold. If the extension never moves past the mandatory window
// the candidate is discarded and the cursor advances one sample; this
// conservative boundary rule drops events that meet but never exceed the
// minimum duration. On confirmation the cursor jumps to the event end, which
// is what makes events non-overlapping by construction.
func Segment(envelope []float64, threshold float64, minRun int) []Event {
	events := make([]Event, 0)
	n := len(envelope)

	i := 0
	for i < n {
		if envelope[i] < threshold {
			i++
			continue
		}

		end := i + minRun
		if end > n {
			i++
			continue
		}

		sustained := true
		for j := i; j < end; j++ {
			if envelope[j] < threshold {
				sustained = false
				break
			}
		}
		if !sustained {
			i++
			continue
		}

		j := end
		for j < n && envelope[j] >= threshold {
			j++
		}
		if j == end {
			i++
			continue
		}

		events = append(events, Event{Start: i, Duration: j - i})
		i = j
	}

	return events
}
