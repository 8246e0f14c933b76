package metrics

import (
	"math"

	"github.com/m-kovac/shcsim/internal/dynamo"
)

// DriveEffort accumulates the mean absolute external current injected over the
// run, summed across drive channels.
type DriveEffort struct {
	name    string
	sum     float64
	samples int
}

func NewDriveEffort() *DriveEffort {
	return &DriveEffort{name: "drive_effort"}
}

func (d *DriveEffort) Name() string { return d.name }

func (d *DriveEffort) Observe(x dynamo.State, u dynamo.Drive, t float64) {
	for _, val := range u {
		d.sum += math.Abs(val)
	}
	d.samples++
}

func (d *DriveEffort) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *DriveEffort) Reset() {
	d.sum = 0
	d.samples = 0
}
