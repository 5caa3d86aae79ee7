package serial

import (
	"testing"

	ser "go.bug.st/serial"
	"go.viam.com/test"
)

func TestNormalize(t *testing.T) {
	opts, err := Options{}.Normalize()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts, test.ShouldResemble, Options{BaudRate: DefaultBaudRate, DataBits: 8, StopBits: 1, Parity: "N"})

	opts, err = Options{BaudRate: 9600, Parity: " even "}.Normalize()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts.BaudRate, test.ShouldEqual, 9600)
	test.That(t, opts.Parity, test.ShouldEqual, "E")

	for _, c := range []struct {
		opts Options
		err  string
	}{
		{Options{DataBits: 9}, "invalid data bits 9: must be between 5 and 8"},
		{Options{StopBits: 3}, "invalid stop bits 3: supported values are 1 or 2"},
		{Options{Parity: "mark"}, `unsupported parity "mark": expected N, E, or O`},
		{Options{ReadTimeoutMs: -1}, "invalid read timeout -1ms"},
	} {
		_, err := c.opts.Normalize()
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldEqual, c.err)
	}
}

func TestMode(t *testing.T) {
	mode, err := Options{StopBits: 2, Parity: "O"}.Mode()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mode.BaudRate, test.ShouldEqual, DefaultBaudRate)
	test.That(t, mode.DataBits, test.ShouldEqual, 8)
	test.That(t, mode.StopBits, test.ShouldEqual, ser.TwoStopBits)
	test.That(t, mode.Parity, test.ShouldEqual, ser.OddParity)

	_, err = Options{DataBits: 2}.Mode()
	test.That(t, err, test.ShouldNotBeNil)
}

func TestOpenMissingDevice(t *testing.T) {
	_, err := Open("/dev/does-not-exist-uland", Options{})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot open serial device")
}
