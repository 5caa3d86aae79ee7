package param

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/pitchguard/avoid"
	"go.viam.com/pitchguard/logging"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "params.json"))
	changes := make(chan avoid.Config, 8)

	w, err := Watch(store, logging.NewTestLogger(t), func(cfg avoid.Config) { changes <- cfg })
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, w.Close(), test.ShouldBeNil)
	}()

	// unrelated files are ignored
	test.That(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o600), test.ShouldBeNil)

	test.That(t, store.Set(context.Background(), "ULAND_DIST", 240), test.ShouldBeNil)
	select {
	case cfg := <-changes:
		test.That(t, cfg.StandoffCm, test.ShouldEqual, 240.0)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for parameter reload")
	}
}

func TestWatchMissingDir(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "gone", "params.json"))
	_, err := Watch(store, logging.NewTestLogger(t), func(avoid.Config) {})
	test.That(t, err, test.ShouldNotBeNil)
}
