// Package rangefinder defines the range sensor contract the obstacle guard reads.
package rangefinder

// A Sensor is a single-beam range sensor. DistanceCm returns the most recent
// distance in centimeters without blocking. Disconnected or timed out sensors
// report an implausible value, usually 0, rather than an error.
type Sensor interface {
	DistanceCm() float64
}

// A Rangefinder serves distances for one or more sensor instances.
type Rangefinder interface {
	DistanceCm(instance int) float64
}

// Set is a Rangefinder backed by an ordered list of sensors. Instance i is the
// i-th sensor; unknown instances read 0.
type Set []Sensor

// DistanceCm implements Rangefinder.
func (s Set) DistanceCm(instance int) float64 {
	if instance < 0 || instance >= len(s) || s[instance] == nil {
		return 0
	}
	return s[instance].DistanceCm()
}
