// Package serial opens the UART devices range sensors are attached to.
package serial

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	ser "go.bug.st/serial"
)

// Options describes the serial connection parameters used when opening a port.
// Unset fields take the defaults applied by Normalize.
type Options struct {
	BaudRate      int    `json:"baud_rate,omitempty"`
	DataBits      int    `json:"data_bits,omitempty"`
	StopBits      int    `json:"stop_bits,omitempty"`
	Parity        string `json:"parity,omitempty"`
	ReadTimeoutMs int    `json:"read_timeout_ms,omitempty"`
}

// DefaultBaudRate is the uLanding radar's factory UART rate.
const DefaultBaudRate = 115200

// Normalize validates the options and applies defaults for any unset values.
func (o Options) Normalize() (Options, error) {
	opts := o

	if opts.BaudRate <= 0 {
		opts.BaudRate = DefaultBaudRate
	}

	if opts.DataBits == 0 {
		opts.DataBits = 8
	}
	if opts.DataBits < 5 || opts.DataBits > 8 {
		return opts, errors.Errorf("invalid data bits %d: must be between 5 and 8", opts.DataBits)
	}

	if opts.StopBits == 0 {
		opts.StopBits = 1
	}
	if opts.StopBits != 1 && opts.StopBits != 2 {
		return opts, errors.Errorf("invalid stop bits %d: supported values are 1 or 2", opts.StopBits)
	}

	if opts.ReadTimeoutMs < 0 {
		return opts, errors.Errorf("invalid read timeout %dms", opts.ReadTimeoutMs)
	}

	switch strings.TrimSpace(strings.ToUpper(opts.Parity)) {
	case "", "N", "NONE":
		opts.Parity = "N"
	case "E", "EVEN":
		opts.Parity = "E"
	case "O", "ODD":
		opts.Parity = "O"
	default:
		return opts, errors.Errorf("unsupported parity %q: expected N, E, or O", opts.Parity)
	}
	return opts, nil
}

// Mode converts the options into the structure go.bug.st/serial opens a port with.
func (o Options) Mode() (*ser.Mode, error) {
	opts, err := o.Normalize()
	if err != nil {
		return nil, err
	}

	mode := &ser.Mode{
		BaudRate: opts.BaudRate,
		DataBits: opts.DataBits,
		Parity:   ser.NoParity,
		StopBits: ser.OneStopBit,
	}
	if opts.StopBits == 2 {
		mode.StopBits = ser.TwoStopBits
	}
	switch opts.Parity {
	case "E":
		mode.Parity = ser.EvenParity
	case "O":
		mode.Parity = ser.OddParity
	}
	return mode, nil
}

// Open attempts to open a serial device on the given path. It's a variable
// in case you need to override it during tests.
var Open = func(devicePath string, options Options) (io.ReadWriteCloser, error) {
	mode, err := options.Mode()
	if err != nil {
		return nil, err
	}

	device, err := ser.Open(devicePath, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open serial device %q", devicePath)
	}
	if options.ReadTimeoutMs > 0 {
		if err := device.SetReadTimeout(time.Duration(options.ReadTimeoutMs) * time.Millisecond); err != nil {
			return nil, errors.Wrap(err, "cannot set serial read timeout")
		}
	}
	return device, nil
}
