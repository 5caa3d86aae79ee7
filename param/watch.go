package param

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"go.viam.com/pitchguard/avoid"
	"go.viam.com/pitchguard/logging"
	"go.viam.com/pitchguard/utils"
)

// Watcher reloads a FileStore whenever its file changes and hands the new
// configuration to a callback. Files that fail to load or decode are logged
// and skipped; the previous configuration stays in effect.
type Watcher struct {
	store   *FileStore
	fsw     *fsnotify.Watcher
	logger  logging.Logger
	workers *utils.StoppableWorkers
}

// Watch starts watching store's file. The directory is watched so that atomic
// replacement through rename is seen.
func Watch(store *FileStore, logger logging.Logger, onChange func(avoid.Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watching parameters")
	}
	if err := fsw.Add(filepath.Dir(store.Path())); err != nil {
		//nolint:errcheck
		fsw.Close()
		return nil, errors.Wrapf(err, "watching %q", store.Path())
	}
	w := &Watcher{store: store, fsw: fsw, logger: logger}
	w.workers = utils.NewStoppableWorkers(func(ctx context.Context) {
		w.run(ctx, onChange)
	})
	return w, nil
}

func (w *Watcher) run(ctx context.Context, onChange func(avoid.Config)) {
	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("parameter watcher error", "error", err)
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			cfg, err := LoadConfig(ctx, w.store)
			if err != nil {
				w.logger.Warnw("ignoring parameter file", "path", target, "error", err)
				continue
			}
			w.logger.Debugw("parameters reloaded", "path", target)
			onChange(cfg)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.workers.Stop()
	return w.fsw.Close()
}
