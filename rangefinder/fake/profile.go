package fake

import (
	"math"

	"github.com/pkg/errors"
)

// Profile is a scripted sequence of distances, one per tick.
type Profile []float64

// Approach returns a profile that closes from fromCm to closestCm in steps of
// stepCm, holds for hold ticks and then retreats back to fromCm.
func Approach(fromCm, closestCm, stepCm float64, hold int) (Profile, error) {
	if stepCm <= 0 {
		return nil, errors.Errorf("step must be positive got %v", stepCm)
	}
	if closestCm > fromCm {
		return nil, errors.Errorf("closest distance %v beyond start %v", closestCm, fromCm)
	}
	if hold < 0 {
		hold = 0
	}
	n := int(math.Ceil((fromCm - closestCm) / stepCm))
	p := make(Profile, 0, 2*n+hold+1)
	for i := 0; i < n; i++ {
		p = append(p, fromCm-float64(i)*stepCm)
	}
	for i := 0; i <= hold; i++ {
		p = append(p, closestCm)
	}
	for i := n - 1; i >= 0; i-- {
		p = append(p, fromCm-float64(i)*stepCm)
	}
	return p, nil
}

// Play sets the next distance of the profile on s. It returns false once the
// profile is exhausted.
func (p *Profile) Play(s *Sensor) bool {
	if len(*p) == 0 {
		return false
	}
	s.SetDistanceCm((*p)[0])
	*p = (*p)[1:]
	return true
}
