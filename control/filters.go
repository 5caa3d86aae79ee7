package control

import (
	"math"
)

var _ filter = &lowPassFilter{}

type filter interface {
	Reset() error
	Next(x float64) (float64, bool)
}

// lowPassFilter is a first order IIR low-pass filter, y += alpha * (x - y).
type lowPassFilter struct {
	alpha  float64
	y      float64
	primed bool
}

// newLowPassFilter returns a filter with cutoff fc (Hz) sampled every dt seconds.
// A zero cutoff disables filtering.
func newLowPassFilter(fc, dt float64) *lowPassFilter {
	f := &lowPassFilter{}
	f.setCutoff(fc, dt)
	return f
}

func (f *lowPassFilter) setCutoff(fc, dt float64) {
	if fc <= 0 || dt <= 0 {
		f.alpha = 1
		return
	}
	rc := 1 / (2 * math.Pi * fc)
	f.alpha = dt / (dt + rc)
}

// Next returns false on the first sample after a reset, which only seeds the output.
func (f *lowPassFilter) Next(x float64) (float64, bool) {
	if !f.primed {
		f.y = x
		f.primed = true
		return f.y, false
	}
	f.y += f.alpha * (x - f.y)
	return f.y, true
}

func (f *lowPassFilter) Reset() error {
	f.y = 0
	f.primed = false
	return nil
}
