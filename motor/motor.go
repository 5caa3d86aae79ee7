// Package motor exposes the arming state of the vehicle's motors.
package motor

import (
	"go.uber.org/atomic"
)

// Arming reports whether the motors may be driven. Both calls must return the
// latest cached value without blocking.
type Arming interface {
	// Armed is true once the motors have been armed.
	Armed() bool

	// Interlock is true when the motor interlock is engaged, i.e. the motors are
	// allowed to spin.
	Interlock() bool
}

// State is an Arming source updated by the host flight stack. The zero value is
// disarmed with the interlock released.
type State struct {
	armed     atomic.Bool
	interlock atomic.Bool
}

// NewState returns a State with the given initial flags.
func NewState(armed, interlock bool) *State {
	s := &State{}
	s.armed.Store(armed)
	s.interlock.Store(interlock)
	return s
}

// Armed implements Arming.
func (s *State) Armed() bool {
	return s.armed.Load()
}

// Interlock implements Arming.
func (s *State) Interlock() bool {
	return s.interlock.Load()
}

// SetArmed arms or disarms the motors. Disarming also releases the interlock.
func (s *State) SetArmed(armed bool) {
	s.armed.Store(armed)
	if !armed {
		s.interlock.Store(false)
	}
}

// SetInterlock engages or releases the motor interlock.
func (s *State) SetInterlock(engaged bool) {
	s.interlock.Store(engaged)
}
