package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"go.viam.com/pitchguard/avoid"
	"go.viam.com/pitchguard/motor"
	"go.viam.com/pitchguard/param"
	"go.viam.com/pitchguard/rangefinder"
	"go.viam.com/pitchguard/rangefinder/ulanding"
	"go.viam.com/pitchguard/serial"
)

// RunAction drives the guard from a uLanding radar until interrupted or the
// duration elapses. Parameters kept in a JSON file are reloaded when the file
// changes.
func RunAction(c *cli.Context) (err error) {
	logger := newLogger(c)
	defer func() {
		//nolint:errcheck
		logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if d := c.Duration(runFlagDuration); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	period, err := periodFromRate(c.Float64(flagRate))
	if err != nil {
		return err
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, store.Close())
	}()
	cfg, err := param.LoadConfig(ctx, store)
	if err != nil {
		return err
	}
	if !cfg.Enable {
		warningf(c.App.ErrWriter, "%sENABLE is off; the guard will pass pitch through", param.Prefix)
	}

	radar, err := ulanding.NewSensor(ctx, &ulanding.Config{
		SerialPath: c.String(runFlagSerial),
		Serial:     serial.Options{BaudRate: c.Int(runFlagBaud)},
		TimeoutMs:  uint(c.Duration(runFlagTimeout).Milliseconds()),
	}, logger.Sublogger("ulanding"))
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, radar.Close())
	}()

	armed := c.Bool(runFlagArmed)
	guard, err := avoid.NewGuard(cfg, motor.NewState(armed, armed), rangefinder.Set{radar}, period)
	if err != nil {
		return err
	}

	if fs, ok := store.(*param.FileStore); ok {
		w, watchErr := param.Watch(fs, logger.Sublogger("params"), func(cfg avoid.Config) {
			guard.SetConfig(cfg)
			logger.Infow("parameters applied", "enable", cfg.Enable, "standoff_cm", cfg.StandoffCm)
		})
		if watchErr != nil {
			return watchErr
		}
		defer func() {
			err = multierr.Combine(err, w.Close())
		}()
	}

	pitch := c.Float64(flagPitch)
	var corrected atomic.Uint64
	loop := avoid.NewLoop(guard, nil, func() float64 { return pitch }, func(d avoid.Decision) {
		if d.Run {
			corrected.Inc()
		}
		logger.Debugw("tick", "distance_cm", d.DistanceCm, "state", d.State, "run", d.Run, "pitch_cd", d.PitchCd)
	}, logger.Sublogger("loop"))

	logger.Infow("guard running", "serial", c.String(runFlagSerial), "period", period, "armed", armed, "enable", cfg.Enable)
	loop.Start()
	<-ctx.Done()
	loop.Stop()

	stats := radar.Stats()
	printf(c.App.Writer, "ticks: %d corrected: %d frames: %d bad frames: %d",
		loop.Ticks(), corrected.Load(), stats.Frames, stats.BadFrames)
	return nil
}
