package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/pitchguard/logging"
	"go.viam.com/pitchguard/param"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a message prefixed with "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, "Warning: "+format+"\n", a...)
}

func newLogger(c *cli.Context) logging.Logger {
	if c.Bool(flagDebug) {
		return logging.NewDebugLogger("pitchguard")
	}
	return logging.NewLogger("pitchguard")
}

// openStore opens the parameter store named by the params flag.
func openStore(c *cli.Context) (param.Store, error) {
	path := c.Path(flagParams)
	if path == "" {
		return nil, errors.New("no parameter store given")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		store, err := param.OpenSQLiteStore(c.Context, path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return param.NewFileStore(path), nil
	}
}

// periodFromRate turns a loop rate in Hz into a tick period.
func periodFromRate(hz float64) (time.Duration, error) {
	if hz <= 0 {
		return 0, errors.Errorf("rate must be positive got %v", hz)
	}
	period := time.Duration(float64(time.Second) / hz)
	if period <= 0 {
		return 0, errors.Errorf("rate %v Hz is too high", hz)
	}
	return period, nil
}

func formatPitch(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
