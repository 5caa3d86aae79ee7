package avoid

import (
	"go.viam.com/pitchguard/control"
)

// Defaults used when the parameter store has no value.
const (
	DefaultStandoffCm   = 100.0
	DefaultExitBufferCm = 50.0
	DefaultMinValidCm   = 31.0
	DefaultPitchLimitCd = 1000.0
)

// DefaultGains are the pitch PID defaults.
var DefaultGains = control.Gains{P: 1.0, I: 0.5, IMax: 100, D: 0, FiltHz: 20}

// Config is the guard's tunable configuration. Distances are in centimeters
// and angles in centi-degrees. Values are not range checked here; the parameter
// layer rejects out of range values before they reach the guard.
type Config struct {
	Enable       bool          `json:"enable" mapstructure:"ENABLE"`
	StandoffCm   float64       `json:"standoff_cm" mapstructure:"DIST"`
	ExitBufferCm float64       `json:"exit_buffer_cm" mapstructure:"DIST_BUFF"`
	MinValidCm   float64       `json:"min_valid_cm" mapstructure:"RNG_VALID"`
	PitchLimitCd float64       `json:"pitch_limit_cd" mapstructure:"PIT_LIM"`
	PID          control.Gains `json:"pid" mapstructure:"PIT"`
}

// DefaultConfig returns the configuration used when nothing is stored. The
// guard ships disabled.
func DefaultConfig() Config {
	return Config{
		StandoffCm:   DefaultStandoffCm,
		ExitBufferCm: DefaultExitBufferCm,
		MinValidCm:   DefaultMinValidCm,
		PitchLimitCd: DefaultPitchLimitCd,
		PID:          DefaultGains,
	}
}

// ExitDistanceCm is the distance the vehicle must exceed before avoidance ends.
func (cfg *Config) ExitDistanceCm() float64 {
	return cfg.StandoffCm + cfg.ExitBufferCm
}

func (cfg *Config) valid(distanceCm float64) bool {
	return distanceCm > cfg.MinValidCm
}
