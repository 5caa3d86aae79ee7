// Package avoid implements the pitch-axis obstacle guard: a hysteresis detector
// on a forward range sensor that latches avoidance, and a PID stabilizer that
// replaces the pitch command while the latch is held.
//
// A Guard is driven once per control tick from a single goroutine:
//
//	d := guard.Tick(pitchCd)
//	setPitch(d.PitchCd)
//
// Monitor and Correct remain available for hosts that sequence the two halves
// themselves.
package avoid

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"go.viam.com/pitchguard/control"
	"go.viam.com/pitchguard/motor"
	"go.viam.com/pitchguard/rangefinder"
	"go.viam.com/pitchguard/utils"
)

// PilotOverrideCd is the pitch command below which the pilot is taken to be
// backing away from the obstacle already. It includes a 5 degree dead zone.
const PilotOverrideCd = -500.0

// SensorInstance is the rangefinder instance the guard reads.
const SensorInstance = 0

// A PitchController closes the loop on the distance error.
type PitchController interface {
	// SetInputFilterD feeds the error for this tick.
	SetInputFilterD(input float64)
	// PI returns the proportional plus integral output.
	PI() float64
	// ResetI zeroes the integrator.
	ResetI()
}

type gainSetter interface {
	SetGains(gains control.Gains)
}

// Decision is the outcome of one tick.
type Decision struct {
	// PitchCd is the pitch command to apply.
	PitchCd float64
	// Run is true when the stabilizer computed this tick.
	Run bool
	// State is the latch after the tick.
	State State
	// DistanceCm is the reading both halves of the tick used.
	DistanceCm float64
}

// Guard is the obstacle guard for one axis. It is not safe for concurrent use
// except for SetConfig, which can be called from any goroutine.
type Guard struct {
	arming motor.Arming
	ranges rangefinder.Rangefinder
	pid    PitchController
	dt     time.Duration

	cfg     atomic.Pointer[Config]
	applied *Config
	status  Status
}

// NewGuard returns a guard stepped every dt with its own pitch PID.
func NewGuard(cfg Config, arming motor.Arming, ranges rangefinder.Rangefinder, dt time.Duration) (*Guard, error) {
	pid, err := control.NewPID(cfg.PID, dt)
	if err != nil {
		return nil, errors.Wrap(err, "pitch pid")
	}
	return NewGuardWithController(cfg, arming, ranges, pid, dt), nil
}

// NewGuardWithController returns a guard that drives the given controller.
func NewGuardWithController(
	cfg Config,
	arming motor.Arming,
	ranges rangefinder.Rangefinder,
	pid PitchController,
	dt time.Duration,
) *Guard {
	g := &Guard{
		arming: arming,
		ranges: ranges,
		pid:    pid,
		dt:     dt,
	}
	g.cfg.Store(&cfg)
	g.applied = g.cfg.Load()
	return g
}

// Period returns the tick period the guard was built for.
func (g *Guard) Period() time.Duration {
	return g.dt
}

// Config returns the current configuration.
func (g *Guard) Config() Config {
	return *g.cfg.Load()
}

// SetConfig replaces the configuration. It takes effect on the next tick,
// including new PID gains when the controller supports retuning.
func (g *Guard) SetConfig(cfg Config) {
	g.cfg.Store(&cfg)
}

// Status returns the latch carried into the next tick.
func (g *Guard) Status() Status {
	return g.status
}

func (g *Guard) config() *Config {
	cfg := g.cfg.Load()
	if cfg != g.applied {
		if setter, ok := g.pid.(gainSetter); ok && cfg.PID != g.applied.PID {
			setter.SetGains(cfg.PID)
		}
		g.applied = cfg
	}
	return cfg
}

func (g *Guard) gated(cfg *Config) bool {
	return !g.arming.Armed() || !g.arming.Interlock() || !cfg.Enable
}

// Monitor reads the sensor and reports whether avoidance should act this tick.
// Disarmed, interlock released or disabled returns false without touching the
// latch.
func (g *Guard) Monitor() bool {
	return g.MonitorAt(g.ranges.DistanceCm(SensorInstance))
}

// MonitorAt is Monitor for an already sampled reading.
func (g *Guard) MonitorAt(distanceCm float64) bool {
	if g.gated(g.config()) {
		return false
	}
	return g.Detect(distanceCm)
}

// Detect runs the hysteresis detector on a reading, bypassing the arming gate.
func (g *Guard) Detect(distanceCm float64) bool {
	var run bool
	g.status, run = Detect(g.config(), g.status, distanceCm)
	return run
}

// Correct reads the sensor and returns the pitch command to apply in place of pitchCd.
func (g *Guard) Correct(pitchCd float64) float64 {
	return g.CorrectAt(g.ranges.DistanceCm(SensorInstance), pitchCd)
}

// CorrectAt is Correct for an already sampled reading. The command passes
// through untouched when the pilot is already backing away or the vehicle is
// past the exit distance; otherwise it is the PI output clamped to the pitch
// limit.
func (g *Guard) CorrectAt(distanceCm, pitchCd float64) float64 {
	cfg := g.config()

	if !g.status.Previous {
		g.pid.ResetI()
	}
	// positive when farther than the standoff distance
	g.pid.SetInputFilterD(-(cfg.StandoffCm - distanceCm))

	pilotAvoiding := pitchCd < PilotOverrideCd
	pastExit := distanceCm > cfg.ExitDistanceCm()
	if !pilotAvoiding && !pastExit {
		pitchCd = utils.Clamp(g.pid.PI(), -cfg.PitchLimitCd, cfg.PitchLimitCd)
	}

	g.status = Settle(cfg, g.status, distanceCm)
	return pitchCd
}

// Tick samples the sensor once and runs the monitor, then the stabilizer when
// the monitor says to act.
func (g *Guard) Tick(pitchCd float64) Decision {
	distanceCm := g.ranges.DistanceCm(SensorInstance)
	d := Decision{PitchCd: pitchCd, DistanceCm: distanceCm}
	if d.Run = g.MonitorAt(distanceCm); d.Run {
		d.PitchCd = g.CorrectAt(distanceCm, pitchCd)
	}
	d.State = g.status.State
	return d
}
