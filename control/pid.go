// Package control implements the PID primitive used to close the avoidance loop.
package control

import (
	"time"

	"github.com/pkg/errors"
)

// Gains holds the tunable PID terms. IMax clamps the integrator contribution and
// FiltHz is the cutoff of the low-pass filter applied to the input derivative.
type Gains struct {
	P      float64 `json:"p" mapstructure:"P"`
	I      float64 `json:"i" mapstructure:"I"`
	IMax   float64 `json:"imax" mapstructure:"IMAX"`
	D      float64 `json:"d" mapstructure:"D"`
	FiltHz float64 `json:"filt_hz" mapstructure:"FILT"`
}

// Validate ensures the gains describe a usable controller.
func (g Gains) Validate() error {
	if g.P < 0 || g.I < 0 || g.D < 0 {
		return errors.Errorf("pid gains should be positive got P=%v I=%v D=%v", g.P, g.I, g.D)
	}
	if g.IMax < 0 {
		return errors.Errorf("pid imax should be positive got %v", g.IMax)
	}
	if g.FiltHz < 0 {
		return errors.Errorf("pid filter frequency should be positive got %v", g.FiltHz)
	}
	return nil
}

// PID is a discrete PID controller stepped at a fixed period. The caller feeds
// the error with SetInputFilterD and reads the terms it needs; the integrator
// only advances when I (or PI/Output) is read.
//
// Not safe for concurrent use.
type PID struct {
	gains      Gains
	dt         float64
	input      float64
	integrator float64
	derivative float64
	seeded     bool
	dFilter    *lowPassFilter
}

// NewPID returns a controller stepped every dt.
func NewPID(gains Gains, dt time.Duration) (*PID, error) {
	if dt <= 0 {
		return nil, errors.Errorf("pid period should be positive got %v", dt)
	}
	if err := gains.Validate(); err != nil {
		return nil, err
	}
	p := &PID{gains: gains, dt: dt.Seconds()}
	p.dFilter = newLowPassFilter(gains.FiltHz, p.dt)
	return p, nil
}

// Gains returns the current gains.
func (p *PID) Gains() Gains {
	return p.gains
}

// SetGains retunes the controller. The integrator is kept but re-clamped.
func (p *PID) SetGains(gains Gains) {
	p.gains = gains
	p.dFilter.setCutoff(gains.FiltHz, p.dt)
	p.integrator = clampAbs(p.integrator, gains.IMax)
}

// SetInputFilterD records the new input and updates the filtered derivative.
// The first sample after ResetFilter only seeds the derivative history.
func (p *PID) SetInputFilterD(input float64) {
	if !p.seeded {
		p.seeded = true
		p.input = input
		p.derivative = 0
		//nolint:errcheck
		p.dFilter.Reset()
		p.dFilter.Next(0)
		return
	}
	raw := (input - p.input) / p.dt
	p.derivative, _ = p.dFilter.Next(raw)
	p.input = input
}

// P returns the proportional term.
func (p *PID) P() float64 {
	return p.input * p.gains.P
}

// I advances the integrator by one period and returns it, clamped to ±IMax.
func (p *PID) I() float64 {
	if p.gains.I != 0 {
		p.integrator += p.input * p.gains.I * p.dt
		p.integrator = clampAbs(p.integrator, p.gains.IMax)
	}
	return p.integrator
}

// D returns the filtered derivative term.
func (p *PID) D() float64 {
	return p.derivative * p.gains.D
}

// PI returns P() + I().
func (p *PID) PI() float64 {
	return p.P() + p.I()
}

// Output returns P() + I() + D().
func (p *PID) Output() float64 {
	return p.P() + p.I() + p.D()
}

// Integrator returns the accumulated integral without advancing it.
func (p *PID) Integrator() float64 {
	return p.integrator
}

// ResetI zeroes the integrator.
func (p *PID) ResetI() {
	p.integrator = 0
}

// ResetFilter discards the derivative history so the next input does not kick.
func (p *PID) ResetFilter() {
	p.seeded = false
}

func clampAbs(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
