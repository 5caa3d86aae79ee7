package fake

import (
	"testing"

	"go.viam.com/test"
)

func TestApproach(t *testing.T) {
	p, err := Approach(100, 70, 10, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p, test.ShouldResemble, Profile{100, 90, 80, 70, 70, 80, 90, 100})

	p, err = Approach(100, 75, 10, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p, test.ShouldResemble, Profile{100, 90, 80, 75, 80, 90, 100})

	_, err = Approach(100, 70, 0, 0)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = Approach(50, 70, 10, 0)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPlay(t *testing.T) {
	s := NewSensor(0)
	p := Profile{300, 200}
	test.That(t, p.Play(s), test.ShouldBeTrue)
	test.That(t, s.DistanceCm(), test.ShouldEqual, 300.0)
	test.That(t, p.Play(s), test.ShouldBeTrue)
	test.That(t, s.DistanceCm(), test.ShouldEqual, 200.0)
	test.That(t, p.Play(s), test.ShouldBeFalse)
	test.That(t, s.DistanceCm(), test.ShouldEqual, 200.0)
}
