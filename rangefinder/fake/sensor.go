// Package fake implements a fake range sensor whose distance is set directly.
package fake

import (
	"go.uber.org/atomic"

	"go.viam.com/pitchguard/rangefinder"
)

var _ rangefinder.Sensor = (*Sensor)(nil)

// Sensor is a fake range sensor that always returns the set distance.
type Sensor struct {
	distance atomic.Float64
	reads    atomic.Int64
}

// NewSensor returns a fake sensor reading distanceCm.
func NewSensor(distanceCm float64) *Sensor {
	s := &Sensor{}
	s.distance.Store(distanceCm)
	return s
}

// DistanceCm returns the set distance.
func (s *Sensor) DistanceCm() float64 {
	s.reads.Inc()
	return s.distance.Load()
}

// SetDistanceCm changes the distance returned by subsequent reads.
func (s *Sensor) SetDistanceCm(distanceCm float64) {
	s.distance.Store(distanceCm)
}

// Reads returns how many times the distance has been read.
func (s *Sensor) Reads() int64 {
	return s.reads.Load()
}
