package inject

import (
	"go.viam.com/pitchguard/motor"
)

// Arming is an injected motor arming source.
type Arming struct {
	motor.Arming
	ArmedFunc     func() bool
	InterlockFunc func() bool
}

// NewArming returns an injected arming source backed by a real State.
func NewArming(armed, interlock bool) *Arming {
	return &Arming{Arming: motor.NewState(armed, interlock)}
}

// Armed calls the injected Armed or the real version.
func (a *Arming) Armed() bool {
	if a.ArmedFunc == nil {
		return a.Arming.Armed()
	}
	return a.ArmedFunc()
}

// Interlock calls the injected Interlock or the real version.
func (a *Arming) Interlock() bool {
	if a.InterlockFunc == nil {
		return a.Arming.Interlock()
	}
	return a.InterlockFunc()
}
