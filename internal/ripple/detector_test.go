package ripple_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/m-kovac/shcsim/internal/ripple"
)

// burst writes an oscillatory burst of the given frequency into x.
func burst(x []float64, from, to int, freqHz, fsHz, amp float64) {
	for i := from; i < to && i < len(x); i++ {
		x[i] = amp * math.Sin(2*math.Pi*freqHz*float64(i)/fsHz)
	}
}

var _ = Describe("Detector", func() {
	const dt = 1.0 // ms, fs = 1 kHz

	var det *ripple.Detector

	BeforeEach(func() {
		det = ripple.NewDetector()
	})

	Describe("Envelope", func() {
		It("rejects a non-positive sampling step", func() {
			_, err := det.Envelope([]float64{1, 2, 3}, 0)
			Expect(err).To(MatchError(ripple.ErrBadSamplingStep))

			_, err = det.Envelope([]float64{1, 2, 3}, -0.1)
			Expect(err).To(MatchError(ripple.ErrBadSamplingStep))
		})

		It("preserves signal length", func() {
			signal := make([]float64, 500)
			env, err := det.Envelope(signal, dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(env).To(HaveLen(500))
		})

		It("is non-negative everywhere", func() {
			signal := make([]float64, 1000)
			burst(signal, 200, 400, 180, 1000, 1.0)
			env, err := det.Envelope(signal, dt)
			Expect(err).NotTo(HaveOccurred())
			for _, v := range env {
				Expect(v).To(BeNumerically(">=", 0))
			}
		})

		It("peaks inside an oscillatory burst", func() {
			signal := make([]float64, 2000)
			burst(signal, 800, 1200, 180, 1000, 1.0)

			env, err := det.Envelope(signal, dt)
			Expect(err).NotTo(HaveOccurred())

			peak := 0
			for i, v := range env {
				if v > env[peak] {
					peak = i
				}
			}
			Expect(peak).To(BeNumerically(">", 750))
			Expect(peak).To(BeNumerically("<", 1250))
		})
	})

	Describe("Detect", func() {
		It("returns an empty non-nil slice for an all-zero signal", func() {
			signal := make([]float64, 1000)
			events, err := det.Detect(signal, dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).NotTo(BeNil())
			Expect(events).To(BeEmpty())
		})

		It("returns an empty slice for an empty signal", func() {
			events, err := det.Detect([]float64{}, dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).NotTo(BeNil())
			Expect(events).To(BeEmpty())
		})

		It("finds one event for one long isolated burst", func() {
			signal := make([]float64, 5000)
			burst(signal, 2000, 2200, 180, 1000, 1.0)

			events, err := det.Detect(signal, dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(1))

			// Onset within one smoothing window of the true burst start.
			slack := int(det.EnvelopeMs / dt)
			Expect(events[0].Start).To(BeNumerically("~", 2000, slack))
			Expect(events[0].DurationMs(dt)).To(BeNumerically(">", det.MinDurMs))
		})

		It("misses a brief weak burst next to a strong one", func() {
			signal := make([]float64, 5000)
			burst(signal, 2000, 2200, 180, 1000, 1.0)
			burst(signal, 4000, 4008, 180, 1000, 0.35) // 8 ms, well under threshold

			events, err := det.Detect(signal, dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(1))
			Expect(events[0].Start).To(BeNumerically("<", 2500))
		})

		It("produces ordered, non-overlapping events on noisy input", func() {
			rng := rand.New(rand.NewSource(7))
			signal := make([]float64, 20000)
			for i := range signal {
				signal[i] = 0.1 * rng.NormFloat64()
			}
			burst(signal, 3000, 3150, 180, 1000, 1.5)
			burst(signal, 9000, 9200, 180, 1000, 1.5)
			burst(signal, 15000, 15100, 180, 1000, 1.5)

			events, err := det.Detect(signal, dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(len(events)).To(BeNumerically(">=", 2))

			for i := 1; i < len(events); i++ {
				prevEnd := events[i-1].Start + events[i-1].Duration
				Expect(events[i].Start).To(BeNumerically(">=", prevEnd))
			}
		})

		It("merges bursts closer than the smoothing window", func() {
			signal := make([]float64, 10000)
			burst(signal, 3000, 3100, 180, 1000, 1.0)
			burst(signal, 3120, 3220, 180, 1000, 1.0) // 20 ms gap, under the 50 ms Gaussian

			events, err := det.Detect(signal, dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(1))
		})
	})

	Describe("MinRun", func() {
		It("segments a precomputed envelope exactly like Detect", func() {
			signal := make([]float64, 10000)
			burst(signal, 2000, 2200, 180, 1000, 1.0)
			burst(signal, 6000, 6150, 180, 1000, 1.2)

			env, err := det.Envelope(signal, dt)
			Expect(err).NotTo(HaveOccurred())
			fromEnv := ripple.Segment(env, det.Threshold(env), det.MinRun(dt))

			fromSignal, err := det.Detect(signal, dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(fromEnv).To(Equal(fromSignal))
		})

		It("truncates the duration and clamps to one sample", func() {
			Expect(det.MinRun(0.1)).To(Equal(300))
			Expect(det.MinRun(1.0)).To(Equal(30))
			Expect(det.MinRun(100.0)).To(Equal(1))
		})
	})

	Describe("Segment", func() {
		It("confirms a run that exceeds the mandatory window", func() {
			env := make([]float64, 200)
			for i := 50; i < 100; i++ {
				env[i] = 1.0
			}
			events := ripple.Segment(env, 0.5, 30)
			Expect(events).To(HaveLen(1))
			Expect(events[0].Start).To(Equal(50))
			Expect(events[0].Duration).To(Equal(50))
		})

		It("discards a run that exactly meets the minimum and never extends", func() {
			env := make([]float64, 200)
			for i := 50; i < 80; i++ { // exactly minRun samples
				env[i] = 1.0
			}
			events := ripple.Segment(env, 0.5, 30)
			Expect(events).To(BeEmpty())
		})

		It("discards a candidate whose window would run past the signal end", func() {
			env := make([]float64, 100)
			for i := 90; i < 100; i++ {
				env[i] = 1.0
			}
			events := ripple.Segment(env, 0.5, 30)
			Expect(events).To(BeEmpty())
		})

		It("retries one sample later after a broken run", func() {
			env := make([]float64, 200)
			env[40] = 1.0 // lone spike, then a gap
			for i := 50; i < 100; i++ {
				env[i] = 1.0
			}
			events := ripple.Segment(env, 0.5, 30)
			Expect(events).To(HaveLen(1))
			Expect(events[0].Start).To(Equal(50))
		})

		It("jumps the cursor past a confirmed event", func() {
			env := make([]float64, 400)
			for i := 50; i < 120; i++ {
				env[i] = 1.0
			}
			for i := 200; i < 280; i++ {
				env[i] = 1.0
			}
			events := ripple.Segment(env, 0.5, 30)
			Expect(events).To(HaveLen(2))
			Expect(events[0].Start).To(Equal(50))
			Expect(events[0].Duration).To(Equal(70))
			Expect(events[1].Start).To(Equal(200))
			Expect(events[1].Duration).To(Equal(80))
		})
	})

	Describe("Event", func() {
		It("converts samples to milliseconds with the sampling step", func() {
			e := ripple.Event{Start: 300, Duration: 45}
			Expect(e.StartMs(0.1)).To(BeNumerically("~", 30.0, 1e-12))
			Expect(e.DurationMs(0.1)).To(BeNumerically("~", 4.5, 1e-12))
		})
	})
})
