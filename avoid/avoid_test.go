package avoid

import (
	"math"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/pitchguard/control"
	"go.viam.com/pitchguard/rangefinder"
	"go.viam.com/pitchguard/rangefinder/fake"
	"go.viam.com/pitchguard/testutils/inject"
)

const testPeriod = 10 * time.Millisecond

func newTestGuard(t *testing.T, distanceCm float64) (*Guard, *fake.Sensor, *inject.Arming) {
	t.Helper()
	sensor := fake.NewSensor(distanceCm)
	arming := inject.NewArming(true, true)
	g, err := NewGuard(testConfig(), arming, rangefinder.Set{sensor}, testPeriod)
	test.That(t, err, test.ShouldBeNil)
	return g, sensor, arming
}

func newInjectedGuard(t *testing.T, distanceCm float64) (*Guard, *fake.Sensor, *inject.PID) {
	t.Helper()
	base, err := control.NewPID(DefaultGains, testPeriod)
	test.That(t, err, test.ShouldBeNil)
	pid := &inject.PID{PID: base}
	sensor := fake.NewSensor(distanceCm)
	g := NewGuardWithController(testConfig(), inject.NewArming(true, true), rangefinder.Set{sensor}, pid, testPeriod)
	return g, sensor, pid
}

func TestNewGuardBadPeriod(t *testing.T) {
	_, err := NewGuard(testConfig(), inject.NewArming(true, true), rangefinder.Set{}, 0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "pitch pid")
}

func TestMonitorGate(t *testing.T) {
	for _, c := range []struct {
		name      string
		armed     bool
		interlock bool
		enable    bool
	}{
		{"disarmed", false, true, true},
		{"interlock released", true, false, true},
		{"disabled", true, true, false},
	} {
		t.Run(c.name, func(t *testing.T) {
			g, _, arming := newTestGuard(t, 50)
			arming.ArmedFunc = func() bool { return c.armed }
			arming.InterlockFunc = func() bool { return c.interlock }
			cfg := g.Config()
			cfg.Enable = c.enable
			g.SetConfig(cfg)

			test.That(t, g.Monitor(), test.ShouldBeFalse)
			test.That(t, g.Status(), test.ShouldResemble, Status{})

			// a held latch is left alone, not reset
			g.status = Status{State: Active, Previous: true}
			test.That(t, g.MonitorAt(10), test.ShouldBeFalse)
			test.That(t, g.Status(), test.ShouldResemble, Status{State: Active, Previous: true})
		})
	}
}

func TestMonitorIdempotent(t *testing.T) {
	g, sensor, _ := newTestGuard(t, 80)
	first := g.Monitor()
	st := g.Status()
	test.That(t, g.Monitor(), test.ShouldEqual, first)
	test.That(t, g.Status(), test.ShouldResemble, st)

	sensor.SetDistanceCm(20)
	first = g.Monitor()
	st = g.Status()
	test.That(t, g.Monitor(), test.ShouldEqual, first)
	test.That(t, g.Status(), test.ShouldResemble, st)
}

func TestApproachAndRecover(t *testing.T) {
	g, sensor, _ := newTestGuard(t, 80)
	cfg := g.Config()

	test.That(t, g.Monitor(), test.ShouldBeTrue)
	pitch := g.Correct(0)
	test.That(t, pitch, test.ShouldNotEqual, 0.0)
	test.That(t, math.Abs(pitch), test.ShouldBeLessThanOrEqualTo, cfg.PitchLimitCd)
	test.That(t, g.Status(), test.ShouldResemble, Status{State: Active, Previous: true})

	// inside the hysteresis band the latch holds
	sensor.SetDistanceCm(150)
	test.That(t, g.Monitor(), test.ShouldBeTrue)
	g.Correct(0)
	test.That(t, g.Status().State, test.ShouldEqual, Active)

	sensor.SetDistanceCm(250)
	test.That(t, g.Monitor(), test.ShouldBeTrue)
	test.That(t, g.Correct(37), test.ShouldEqual, 37.0)
	test.That(t, g.Status(), test.ShouldResemble, Status{})

	test.That(t, g.Monitor(), test.ShouldBeFalse)
}

func TestTick(t *testing.T) {
	g, sensor, _ := newTestGuard(t, 300)

	d := g.Tick(120)
	test.That(t, d, test.ShouldResemble, Decision{PitchCd: 120, DistanceCm: 300, State: Inactive})

	sensor.SetDistanceCm(90)
	d = g.Tick(120)
	test.That(t, d.Run, test.ShouldBeTrue)
	test.That(t, d.State, test.ShouldEqual, Active)
	test.That(t, d.DistanceCm, test.ShouldEqual, 90.0)
	// 10cm inside the standoff pushes the nose back
	test.That(t, d.PitchCd, test.ShouldBeLessThan, 0.0)

	sensor.SetDistanceCm(200)
	d = g.Tick(120)
	test.That(t, d.Run, test.ShouldBeTrue)
	test.That(t, d.PitchCd, test.ShouldEqual, 120.0)
	test.That(t, d.State, test.ShouldEqual, Inactive)
}

func TestTickSamplesOnce(t *testing.T) {
	ranges := &inject.Rangefinder{}
	instances := []int{}
	ranges.DistanceCmFunc = func(instance int) float64 {
		instances = append(instances, instance)
		return 60
	}
	g, err := NewGuard(testConfig(), inject.NewArming(true, true), ranges, testPeriod)
	test.That(t, err, test.ShouldBeNil)

	d := g.Tick(0)
	test.That(t, d.Run, test.ShouldBeTrue)
	test.That(t, ranges.Reads, test.ShouldEqual, 1)
	test.That(t, instances, test.ShouldResemble, []int{SensorInstance})
}

func TestPilotOverride(t *testing.T) {
	for _, d := range []float64{20, 50, 80, 120, 400} {
		for _, pitch := range []float64{-500.01, -900, -4500} {
			g, _, _ := newTestGuard(t, d)
			g.Detect(80)
			test.That(t, g.CorrectAt(d, pitch), test.ShouldEqual, pitch)
		}
	}

	// at the dead zone edge the guard still takes over
	g, _, _ := newTestGuard(t, 80)
	g.Detect(80)
	test.That(t, g.CorrectAt(80, -500), test.ShouldNotEqual, -500.0)
}

func TestOutputClamp(t *testing.T) {
	for _, out := range []float64{1e6, -1e6, 999.5, -3000} {
		g, _, pid := newInjectedGuard(t, 80)
		pid.PIFunc = func() float64 { return out }
		limit := g.Config().PitchLimitCd

		g.Detect(80)
		pitch := g.CorrectAt(80, 0)
		test.That(t, math.Abs(pitch), test.ShouldBeLessThanOrEqualTo, limit)
		if math.Abs(out) <= limit {
			test.That(t, pitch, test.ShouldEqual, out)
		}
	}
}

func TestIntegratorReset(t *testing.T) {
	g, sensor, pid := newInjectedGuard(t, 80)

	// first tick of an episode resets before feeding the error
	g.Tick(0)
	test.That(t, pid.Calls, test.ShouldResemble, []string{"ResetI", "SetInputFilterD", "PI"})
	test.That(t, pid.Inputs, test.ShouldResemble, []float64{-20})

	pid.Calls = nil
	g.Tick(0)
	test.That(t, pid.Calls, test.ShouldResemble, []string{"SetInputFilterD", "PI"})
	test.That(t, pid.Integrator(), test.ShouldNotEqual, 0.0)

	// leave, then come back
	sensor.SetDistanceCm(400)
	g.Tick(0)
	sensor.SetDistanceCm(70)
	pid.Calls = nil
	g.Tick(0)
	test.That(t, pid.Calls[0], test.ShouldEqual, "ResetI")
}

func TestSetConfigRetunes(t *testing.T) {
	g, _, pid := newInjectedGuard(t, 80)
	var tuned []control.Gains
	pid.SetGainsFunc = func(gains control.Gains) { tuned = append(tuned, gains) }

	cfg := g.Config()
	cfg.StandoffCm = 120
	g.SetConfig(cfg)
	g.Tick(0)
	test.That(t, tuned, test.ShouldBeEmpty)
	test.That(t, pid.Inputs[len(pid.Inputs)-1], test.ShouldEqual, -40.0)

	cfg.PID.P = 3
	g.SetConfig(cfg)
	test.That(t, g.Config().PID.P, test.ShouldEqual, 3.0)
	g.Tick(0)
	test.That(t, tuned, test.ShouldResemble, []control.Gains{cfg.PID})
}
