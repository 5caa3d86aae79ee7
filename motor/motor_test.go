package motor

import (
	"testing"

	"go.viam.com/test"
)

func TestState(t *testing.T) {
	var s State
	test.That(t, s.Armed(), test.ShouldBeFalse)
	test.That(t, s.Interlock(), test.ShouldBeFalse)

	s.SetArmed(true)
	s.SetInterlock(true)
	test.That(t, s.Armed(), test.ShouldBeTrue)
	test.That(t, s.Interlock(), test.ShouldBeTrue)

	s.SetArmed(false)
	test.That(t, s.Armed(), test.ShouldBeFalse)
	test.That(t, s.Interlock(), test.ShouldBeFalse)

	var arming Arming = NewState(true, false)
	test.That(t, arming.Armed(), test.ShouldBeTrue)
	test.That(t, arming.Interlock(), test.ShouldBeFalse)
}
