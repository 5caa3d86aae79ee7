// Package param holds the guard's persisted, runtime tunable parameters: their
// metadata, range checks, storage and decoding into an avoid.Config.
package param

import (
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/pitchguard/avoid"
)

// Prefix is prepended to every parameter name.
const Prefix = "ULAND_"

// Param describes one parameter.
type Param struct {
	Name        string
	DisplayName string
	Description string
	Units       string
	Min         float64
	Max         float64
	Increment   float64
	Default     float64

	// path into the mapstructure tags of avoid.Config
	path []string
}

// Check reports whether v is inside the documented range.
func (p Param) Check(v float64) error {
	if v < p.Min || v > p.Max {
		return errors.Errorf("%s=%v out of range [%v, %v]", p.Name, v, p.Min, p.Max)
	}
	return nil
}

var defaults = avoid.DefaultConfig()

// Table lists every parameter in registration order.
var Table = []Param{
	{
		Name:        Prefix + "ENABLE",
		DisplayName: "uLanding avoidance enable",
		Description: "Enable or disable pitch avoidance based on uLanding feedback",
		Min:         0, Max: 1, Increment: 1,
		Default: 0,
		path:    []string{"ENABLE"},
	},
	{
		Name:        Prefix + "DIST",
		DisplayName: "uLanding avoidance standoff distance",
		Description: "Distance to maintain from an obstacle",
		Units:       "cm",
		Min:         0, Max: 1000, Increment: 1,
		Default: defaults.StandoffCm,
		path:    []string{"DIST"},
	},
	{
		Name:        Prefix + "DIST_BUFF",
		DisplayName: "uLanding avoidance buffer distance",
		Description: "Distance beyond the standoff required before exiting avoidance",
		Units:       "cm",
		Min:         0, Max: 1000, Increment: 1,
		Default: defaults.ExitBufferCm,
		path:    []string{"DIST_BUFF"},
	},
	{
		Name:        Prefix + "RNG_VALID",
		DisplayName: "uLanding avoidance valid distance",
		Description: "Minimum reading required before a measurement is considered valid",
		Units:       "cm",
		Min:         31, Max: 100, Increment: 1,
		Default: defaults.MinValidCm,
		path:    []string{"RNG_VALID"},
	},
	{
		Name:        Prefix + "PIT_LIM",
		DisplayName: "uLanding avoidance pitch limit",
		Description: "Largest pitch correction the guard commands",
		Units:       "cdeg",
		Min:         1000, Max: 4500, Increment: 10,
		Default: defaults.PitchLimitCd,
		path:    []string{"PIT_LIM"},
	},
	{
		Name:        Prefix + "PIT_P",
		DisplayName: "Avoidance pitch controller P gain",
		Description: "Converts distance error into a pitch correction",
		Min:         0, Max: 12, Increment: 0.01,
		Default: defaults.PID.P,
		path:    []string{"PIT", "P"},
	},
	{
		Name:        Prefix + "PIT_I",
		DisplayName: "Avoidance pitch controller I gain",
		Description: "Corrects long-term difference in distance error",
		Min:         0, Max: 5, Increment: 0.01,
		Default: defaults.PID.I,
		path:    []string{"PIT", "I"},
	},
	{
		Name:        Prefix + "PIT_IMAX",
		DisplayName: "Avoidance pitch controller I gain maximum",
		Description: "Constrains the pitch correction the I gain will output",
		Units:       "cdeg",
		Min:         0, Max: 100, Increment: 0.01,
		Default: defaults.PID.IMax,
		path:    []string{"PIT", "IMAX"},
	},
	{
		Name:        Prefix + "PIT_D",
		DisplayName: "Avoidance pitch controller D gain",
		Description: "Compensates for short-term change in distance error",
		Min:         0, Max: 5, Increment: 0.001,
		Default: defaults.PID.D,
		path:    []string{"PIT", "D"},
	},
	{
		Name:        Prefix + "PIT_FILT",
		DisplayName: "Avoidance pitch controller input frequency",
		Description: "Cutoff of the filter applied to the distance error derivative",
		Units:       "Hz",
		Min:         1, Max: 100, Increment: 1,
		Default: defaults.PID.FiltHz,
		path:    []string{"PIT", "FILT"},
	},
}

var byName = func() map[string]Param {
	m := make(map[string]Param, len(Table))
	for _, p := range Table {
		m[p.Name] = p
	}
	return m
}()

// Lookup returns the named parameter.
func Lookup(name string) (Param, bool) {
	p, ok := byName[name]
	return p, ok
}

// Check validates a name/value pair against the table.
func Check(name string, v float64) error {
	p, ok := Lookup(name)
	if !ok {
		return errors.Errorf("unknown parameter %q", name)
	}
	return p.Check(v)
}

// Names returns the sorted parameter names present in values.
func Names(values map[string]float64) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decode builds a config from stored values. Missing parameters take their
// defaults; unknown names are an error. Ranges are not checked here, stores
// check on write.
func Decode(values map[string]float64) (avoid.Config, error) {
	tree := map[string]interface{}{}
	for _, p := range Table {
		v, ok := values[p.Name]
		if !ok {
			v = p.Default
		}
		insert(tree, p.path, v)
	}
	for _, name := range Names(values) {
		if _, ok := byName[name]; !ok {
			return avoid.Config{}, errors.Errorf("unknown parameter %q", name)
		}
	}

	var cfg avoid.Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return avoid.Config{}, err
	}
	if err := decoder.Decode(tree); err != nil {
		return avoid.Config{}, errors.Wrap(err, "decoding parameters")
	}
	return cfg, nil
}

// Encode flattens a config back into parameter values.
func Encode(cfg avoid.Config) map[string]float64 {
	enable := 0.0
	if cfg.Enable {
		enable = 1
	}
	return map[string]float64{
		Prefix + "ENABLE":    enable,
		Prefix + "DIST":      cfg.StandoffCm,
		Prefix + "DIST_BUFF": cfg.ExitBufferCm,
		Prefix + "RNG_VALID": cfg.MinValidCm,
		Prefix + "PIT_LIM":   cfg.PitchLimitCd,
		Prefix + "PIT_P":     cfg.PID.P,
		Prefix + "PIT_I":     cfg.PID.I,
		Prefix + "PIT_IMAX":  cfg.PID.IMax,
		Prefix + "PIT_D":     cfg.PID.D,
		Prefix + "PIT_FILT":  cfg.PID.FiltHz,
	}
}

func insert(tree map[string]interface{}, path []string, v float64) {
	for _, key := range path[:len(path)-1] {
		child, ok := tree[key].(map[string]interface{})
		if !ok {
			child = map[string]interface{}{}
			tree[key] = child
		}
		tree = child
	}
	tree[path[len(path)-1]] = v
}
