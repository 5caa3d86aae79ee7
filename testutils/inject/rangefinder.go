package inject

import (
	"go.viam.com/pitchguard/rangefinder"
)

// Rangefinder is an injected rangefinder.
type Rangefinder struct {
	rangefinder.Rangefinder
	DistanceCmFunc func(instance int) float64
	Reads          int
}

// DistanceCm calls the injected DistanceCm or the real version.
func (r *Rangefinder) DistanceCm(instance int) float64 {
	r.Reads++
	if r.DistanceCmFunc == nil {
		return r.Rangefinder.DistanceCm(instance)
	}
	return r.DistanceCmFunc(instance)
}
