package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/pitchguard/rangefinder/ulanding"
	"go.viam.com/pitchguard/serial"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"pitchguard"}, args...))
	return out.String(), errOut.String(), err
}

func TestParamsSetList(t *testing.T) {
	for _, name := range []string{"params.json", "params.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			out, _, err := runApp(t, "--params", path, "params", "set", "ULAND_DIST", "150")
			test.That(t, err, test.ShouldBeNil)
			test.That(t, out, test.ShouldContainSubstring, "ULAND_DIST set to 150")

			_, _, err = runApp(t, "--params", path, "params", "set", "ULAND_PIT_LIM", "20")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")

			_, _, err = runApp(t, "--params", path, "params", "set", "ULAND_DIST", "far")
			test.That(t, err, test.ShouldNotBeNil)

			_, _, err = runApp(t, "--params", path, "params", "set", "ULAND_DIST")
			test.That(t, err, test.ShouldNotBeNil)

			out, _, err = runApp(t, "--params", path, "params", "list")
			test.That(t, err, test.ShouldBeNil)
			var distLine, enableLine string
			for _, line := range strings.Split(out, "\n") {
				switch {
				case strings.Contains(line, "ULAND_DIST "):
					distLine = line
				case strings.Contains(line, "ULAND_ENABLE "):
					enableLine = line
				}
			}
			test.That(t, distLine, test.ShouldContainSubstring, "150")
			test.That(t, distLine, test.ShouldNotContainSubstring, "(default)")
			test.That(t, enableLine, test.ShouldContainSubstring, "(default)")
		})
	}
}

func TestSim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	out, errOut, err := runApp(t, "--params", path, "sim", "--from", "200", "--closest", "60", "--step", "20", "--hold", "1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "ENABLE is off")
	test.That(t, out, test.ShouldContainSubstring, "PITCH OUT (CD)")
	test.That(t, out, test.ShouldContainSubstring, "| active ")
	test.That(t, out, test.ShouldContainSubstring, "| inactive ")

	_, _, err = runApp(t, "--params", path, "sim", "--step", "0")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, "--params", path, "sim", "--rate", "0")
	test.That(t, err, test.ShouldNotBeNil)
}

type pipePort struct {
	*io.PipeReader
}

func (p pipePort) Write(b []byte) (int, error) {
	return len(b), nil
}

func TestRun(t *testing.T) {
	pr, pw := io.Pipe()
	prevOpen := serial.Open
	serial.Open = func(path string, opts serial.Options) (io.ReadWriteCloser, error) {
		if path != "/dev/radar" {
			return nil, errors.Errorf("no such device %q", path)
		}
		return pipePort{pr}, nil
	}
	defer func() {
		serial.Open = prevOpen
	}()

	go func() {
		frame := ulanding.Frame{Version: 1, DistanceCm: 80, SNR: 40}.Bytes()
		for {
			if _, err := pw.Write(frame); err != nil {
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	path := filepath.Join(t.TempDir(), "params.json")
	_, _, err := runApp(t, "--params", path, "params", "set", "ULAND_ENABLE", "1")
	test.That(t, err, test.ShouldBeNil)

	out, _, err := runApp(t, "--params", path, "run",
		"--serial", "/dev/radar", "--armed", "--rate", "100", "--duration", "300ms")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "ticks:")
	test.That(t, out, test.ShouldNotContainSubstring, "frames: 0 ")

	_, _, err = runApp(t, "--params", path, "run", "--serial", "/dev/missing", "--duration", "10ms")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no such device")
}

func TestPeriodFromRate(t *testing.T) {
	period, err := periodFromRate(50)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, period, test.ShouldEqual, 20*time.Millisecond)

	_, err = periodFromRate(0)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = periodFromRate(-1)
	test.That(t, err, test.ShouldNotBeNil)
}
