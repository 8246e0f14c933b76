// Package metrics provides run-level scalar metrics computed by observing the
// trajectory as it is produced.
package metrics

import (
	"math"

	"github.com/m-kovac/shcsim/internal/dynamo"
)

// Saturation reports the fraction of samples where every state variable stays
// within a magnitude bound. Values near 1 mean the run stayed in a
// physiological range; a drop signals divergence or a bad parameter set.
type Saturation struct {
	name       string
	bound      float64
	violations int
	samples    int
}

func NewSaturation(bound float64) *Saturation {
	return &Saturation{
		name:  "saturation",
		bound: bound,
	}
}

func (s *Saturation) Name() string { return s.name }

func (s *Saturation) Observe(x dynamo.State, u dynamo.Drive, t float64) {
	s.samples++
	for _, val := range x {
		if math.Abs(val) > s.bound || math.IsNaN(val) {
			s.violations++
			break
		}
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Saturation) Reset() {
	s.violations = 0
	s.samples = 0
}
