package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/pitchguard/avoid"
	"go.viam.com/pitchguard/motor"
	"go.viam.com/pitchguard/param"
	"go.viam.com/pitchguard/rangefinder"
	"go.viam.com/pitchguard/rangefinder/fake"
)

// SimAction runs the guard with armed motors against a scripted approach and
// prints one row per tick. The stored parameters are used with the guard
// forced on.
func SimAction(c *cli.Context) (err error) {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, store.Close())
	}()
	cfg, err := param.LoadConfig(c.Context, store)
	if err != nil {
		return err
	}
	if !cfg.Enable {
		warningf(c.App.ErrWriter, "%sENABLE is off in %s; enabling for the simulation", param.Prefix, c.Path(flagParams))
		cfg.Enable = true
	}

	period, err := periodFromRate(c.Float64(flagRate))
	if err != nil {
		return err
	}
	profile, err := fake.Approach(
		c.Float64(simFlagFrom),
		c.Float64(simFlagClosest),
		c.Float64(simFlagStep),
		c.Int(simFlagHold),
	)
	if err != nil {
		return err
	}

	sensor := fake.NewSensor(0)
	guard, err := avoid.NewGuard(cfg, motor.NewState(true, true), rangefinder.Set{sensor}, period)
	if err != nil {
		return err
	}

	pitch := c.Float64(flagPitch)
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Tick", "Distance (cm)", "State", "Run", "Pitch in (cd)", "Pitch out (cd)"})
	for tick := 1; profile.Play(sensor); tick++ {
		d := guard.Tick(pitch)
		t.AppendRow(table.Row{
			tick,
			formatValue(d.DistanceCm),
			d.State.String(),
			d.Run,
			formatValue(pitch),
			formatPitch(d.PitchCd),
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}
