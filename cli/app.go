// Package cli contains all business logic needed by the pitchguard command.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Global flags.
	flagDebug  = "debug"
	flagParams = "params"

	// Shared command flags.
	flagRate  = "rate"
	flagPitch = "pitch"

	simFlagFrom    = "from"
	simFlagClosest = "closest"
	simFlagStep    = "step"
	simFlagHold    = "hold"

	runFlagSerial   = "serial"
	runFlagBaud     = "baud"
	runFlagTimeout  = "timeout"
	runFlagArmed    = "armed"
	runFlagDuration = "duration"

	defaultParamsPath = "pitchguard.json"
	defaultRateHz     = 50.0
)

// NewApp returns the pitchguard app writing to out and errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "pitchguard",
		Usage:           "pitch axis obstacle guard for a uLanding radar",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    flagParams,
				Aliases: []string{"p"},
				Value:   defaultParamsPath,
				Usage:   "parameter store `FILE`; a .db or .sqlite suffix selects SQLite",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "sim",
				Usage:     "run the guard against a scripted approach and print every tick",
				UsageText: "pitchguard sim [--from CM] [--closest CM] [--step CM] [--hold TICKS]",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  simFlagFrom,
						Value: 300,
						Usage: "starting distance in cm",
					},
					&cli.Float64Flag{
						Name:  simFlagClosest,
						Value: 60,
						Usage: "closest distance in cm",
					},
					&cli.Float64Flag{
						Name:  simFlagStep,
						Value: 20,
						Usage: "distance closed per tick in cm",
					},
					&cli.IntFlag{
						Name:  simFlagHold,
						Value: 3,
						Usage: "ticks to hold at the closest distance",
					},
					&cli.Float64Flag{
						Name:  flagPitch,
						Usage: "incoming pitch command in centi-degrees",
					},
					&cli.Float64Flag{
						Name:  flagRate,
						Value: defaultRateHz,
						Usage: "loop rate in Hz",
					},
				},
				Action: SimAction,
			},
			{
				Name:      "run",
				Usage:     "run the guard against a uLanding radar on a serial port",
				UsageText: "pitchguard run --serial PATH [other options]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     runFlagSerial,
						Required: true,
						Usage:    "serial device of the radar",
					},
					&cli.IntFlag{
						Name:  runFlagBaud,
						Value: 115200,
						Usage: "serial baud rate",
					},
					&cli.DurationFlag{
						Name:  runFlagTimeout,
						Usage: "report no reading when the radar is silent this long",
					},
					&cli.BoolFlag{
						Name:  runFlagArmed,
						Usage: "treat the motors as armed with the interlock engaged",
					},
					&cli.Float64Flag{
						Name:  flagPitch,
						Usage: "constant incoming pitch command in centi-degrees",
					},
					&cli.Float64Flag{
						Name:  flagRate,
						Value: defaultRateHz,
						Usage: "loop rate in Hz",
					},
					&cli.DurationFlag{
						Name:  runFlagDuration,
						Usage: "stop after this long; runs until interrupted when unset",
					},
				},
				Action: RunAction,
			},
			{
				Name:            "params",
				Usage:           "work with the guard's parameters",
				HideHelpCommand: true,
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "list parameters with their current values",
						Action: ParamsListAction,
					},
					{
						Name:      "set",
						Usage:     "store a parameter value",
						ArgsUsage: "NAME VALUE",
						Action:    ParamsSetAction,
					},
				},
			},
		},
	}
}
