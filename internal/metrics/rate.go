package metrics

import (
	"github.com/m-kovac/shcsim/internal/dynamo"
	"github.com/m-kovac/shcsim/internal/shc"
)

// MeanRate tracks the time-averaged firing rate of one population, mapping its
// membrane potential through the model's own sigmoid.
type MeanRate struct {
	name    string
	index   int
	sigmoid shc.Sigmoid
	base    float64
	scale   float64
	sum     float64
	samples int
}

func NewMeanRate(name string, index int, sigmoid shc.Sigmoid, base, scale float64) *MeanRate {
	return &MeanRate{
		name:    name,
		index:   index,
		sigmoid: sigmoid,
		base:    base,
		scale:   scale,
	}
}

func (m *MeanRate) Name() string { return m.name }

func (m *MeanRate) Observe(x dynamo.State, u dynamo.Drive, t float64) {
	if m.index >= len(x) {
		return
	}
	m.sum += shc.FiringRate(x[m.index], m.sigmoid, m.base, m.scale)
	m.samples++
}

func (m *MeanRate) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanRate) Reset() {
	m.sum = 0
	m.samples = 0
}
