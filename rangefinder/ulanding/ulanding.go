// Package ulanding implements the Aerotenna uLanding radar altimeter, a single
// beam UART range sensor, as a rangefinder.Sensor.
package ulanding

import (
	"context"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	goutils "go.viam.com/utils"

	"go.viam.com/pitchguard/logging"
	"go.viam.com/pitchguard/rangefinder"
	"go.viam.com/pitchguard/serial"
	"go.viam.com/pitchguard/utils"
)

var _ rangefinder.Sensor = (*Sensor)(nil)

const defaultTimeoutMs = 200

// Config is used for converting config attributes.
type Config struct {
	SerialPath string         `json:"serial_path"`
	Serial     serial.Options `json:"serial,omitempty"`
	TimeoutMs  uint           `json:"timeout_ms,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.SerialPath == "" {
		return goutils.NewConfigValidationFieldRequiredError(path, "serial_path")
	}
	if _, err := cfg.Serial.Normalize(); err != nil {
		return errors.Wrapf(err, "%s.serial", path)
	}
	return nil
}

func (cfg *Config) timeout() time.Duration {
	if cfg.TimeoutMs == 0 {
		return defaultTimeoutMs * time.Millisecond
	}
	return time.Duration(cfg.TimeoutMs) * time.Millisecond
}

// Stats counts the frames seen by the reader.
type Stats struct {
	Frames    uint64
	BadFrames uint64
}

// Sensor is a uLanding radar read over a serial port. A background reader
// keeps the latest sample; DistanceCm never touches the port.
type Sensor struct {
	logger  logging.Logger
	port    io.ReadCloser
	clk     clock.Clock
	timeout time.Duration

	distance  atomic.Float64
	seen      atomic.Bool
	lastFrame atomic.Int64
	frames    atomic.Uint64
	badFrames atomic.Uint64

	closing atomic.Bool
	workers *utils.StoppableWorkers
}

// NewSensor opens the configured serial port and starts reading frames.
func NewSensor(ctx context.Context, cfg *Config, logger logging.Logger) (*Sensor, error) {
	if err := cfg.Validate("ulanding"); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	port, err := serial.Open(cfg.SerialPath, cfg.Serial)
	if err != nil {
		return nil, errors.Wrap(err, "ulanding")
	}
	logger.Debugw("opened radar", "path", cfg.SerialPath, "timeout", cfg.timeout())
	return newSensor(port, cfg.timeout(), clock.New(), logger), nil
}

func newSensor(port io.ReadCloser, timeout time.Duration, clk clock.Clock, logger logging.Logger) *Sensor {
	s := &Sensor{
		logger:  logger,
		port:    port,
		clk:     clk,
		timeout: timeout,
	}
	s.workers = utils.NewStoppableWorkers(s.readLoop)
	return s
}

func (s *Sensor) readLoop(ctx context.Context) {
	dec := newDecoder(s.port)
	for {
		f, err := dec.next()
		switch {
		case err == nil:
		case errors.Is(err, errBadChecksum):
			s.badFrames.Inc()
			continue
		case errors.Is(err, io.ErrNoProgress):
			// read timeouts surface as empty reads
			continue
		default:
			if !s.closing.Load() && ctx.Err() == nil && !errors.Is(err, io.EOF) {
				s.logger.Errorw("radar read failed", "error", err)
			}
			return
		}
		s.frames.Inc()
		s.distance.Store(float64(f.DistanceCm))
		s.lastFrame.Store(s.clk.Now().UnixNano())
		s.seen.Store(true)
	}
}

// DistanceCm returns the latest distance, or 0 when no frame arrived within the timeout.
func (s *Sensor) DistanceCm() float64 {
	if !s.seen.Load() {
		return 0
	}
	if s.clk.Now().Sub(time.Unix(0, s.lastFrame.Load())) > s.timeout {
		return 0
	}
	return s.distance.Load()
}

// Stats returns the frame counters.
func (s *Sensor) Stats() Stats {
	return Stats{Frames: s.frames.Load(), BadFrames: s.badFrames.Load()}
}

// Close closes the port, which unblocks the reader, and waits for it to exit.
func (s *Sensor) Close() error {
	s.closing.Store(true)
	err := s.port.Close()
	s.workers.Stop()
	return errors.Wrap(err, "ulanding: closing port")
}
