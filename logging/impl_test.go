package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"go.viam.com/test"
)

func TestSublogger(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	sub := logger.Sublogger("ulanding")
	sub.Infow("frame", "distance_cm", 87.0)

	entries := observed.All()
	test.That(t, len(entries), test.ShouldEqual, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "ulanding")
	test.That(t, entries[0].Message, test.ShouldEqual, "frame")
	test.That(t, entries[0].ContextMap()["distance_cm"], test.ShouldEqual, 87.0)

	subsub := sub.Sublogger("reader")
	subsub.Debug("tick")
	test.That(t, observed.All()[1].LoggerName, test.ShouldEqual, "ulanding.reader")
}

func TestSetLevel(t *testing.T) {
	level := zap.NewAtomicLevelAt(DEBUG.AsZap())
	observerCore, observed := observer.New(level)
	logger := newImpl("guard", level, observerCore)

	logger.Debug("visible")
	logger.SetLevel(WARN)
	test.That(t, logger.GetLevel(), test.ShouldEqual, WARN)
	logger.Info("hidden")
	logger.Warnf("visible %d", 2)

	entries := observed.All()
	test.That(t, len(entries), test.ShouldEqual, 2)
	test.That(t, entries[1].Level, test.ShouldEqual, zapcore.WarnLevel)
	test.That(t, entries[1].Message, test.ShouldEqual, "visible 2")
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected Level
		err      bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"Warning", WARN, false},
		{"error", ERROR, false},
		{"loud", DEBUG, true},
	} {
		level, err := LevelFromString(tc.input)
		if tc.err {
			test.That(t, err, test.ShouldNotBeNil)
			continue
		}
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
		test.That(t, levelFromZap(level.AsZap()), test.ShouldEqual, level)
	}
}
