package param

import (
	"context"

	"go.viam.com/pitchguard/avoid"
)

// A Store persists parameter values by name.
type Store interface {
	// Load returns every stored value. Parameters never set are absent.
	Load(ctx context.Context) (map[string]float64, error)
	// Set stores a value after checking it against the table.
	Set(ctx context.Context, name string, value float64) error
	Close() error
}

// LoadConfig loads and decodes the guard configuration from a store.
func LoadConfig(ctx context.Context, store Store) (avoid.Config, error) {
	values, err := store.Load(ctx)
	if err != nil {
		return avoid.Config{}, err
	}
	return Decode(values)
}
