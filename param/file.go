package param

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStore keeps parameters in a JSON object on disk, e.g.
//
//	{"ULAND_ENABLE": 1, "ULAND_DIST": 120}
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created on the first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (fs *FileStore) Path() string {
	return fs.path
}

// Load implements Store. A missing file loads as empty.
func (fs *FileStore) Load(ctx context.Context) (map[string]float64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.load()
}

func (fs *FileStore) load() (map[string]float64, error) {
	values := map[string]float64{}
	//nolint:gosec
	data, err := os.ReadFile(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading parameters from %q", fs.path)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrapf(err, "parsing parameters in %q", fs.path)
	}
	return values, nil
}

// Set implements Store. The file is replaced atomically.
func (fs *FileStore) Set(ctx context.Context, name string, value float64) error {
	if err := Check(name, value); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	values[name] = value
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fs.path), filepath.Base(fs.path)+".*")
	if err != nil {
		return errors.Wrap(err, "writing parameters")
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		//nolint:errcheck
		tmp.Close()
		//nolint:errcheck
		os.Remove(tmp.Name())
		return errors.Wrap(err, "writing parameters")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "writing parameters")
	}
	return errors.Wrap(os.Rename(tmp.Name(), fs.path), "writing parameters")
}

// Close implements Store.
func (fs *FileStore) Close() error {
	return nil
}
