// Package config holds the settings of a sweep and the ways of loading
// them: defaults, flag-style key/value maps, command line flags and YAML
// files.
package config

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/juju/gnuflag"
	errgo "gopkg.in/errgo.v1"
	yaml "gopkg.in/yaml.v2"

	"turmites/internal/core"
	"turmites/internal/palette"
)

// ErrInvalid is the cause of every validation and parse failure.
var ErrInvalid = errgo.New("invalid configuration")

const (
	// MinGridSize and MaxGridSize bound the side of the square grid.
	MinGridSize = 2
	MaxGridSize = 65535
)

// Keys accepted by FromMap, in display order. Flag names match.
const (
	KeyStart         = "start"
	KeyCount         = "count"
	KeyInvert        = "invert"
	KeyReverse       = "reverse"
	KeyMaxIterations = "max_iterations"
	KeyThreads       = "threads"
	KeyGrid          = "grid"
	KeyDepth         = "depth"
	KeySeed          = "seed"
	KeySink          = "sink"
	KeyOut           = "out"
	KeyZstdLevel     = "zstd_level"
	KeyLog           = "log"
)

// Config controls a sweep.
type Config struct {
	StartID        uint64
	PatternCount   uint64
	InvertPattern  bool
	ReversePattern bool
	MaxIterations  uint64
	// ThreadCount below zero means one worker per CPU; zero means one.
	ThreadCount int
	GridSize    int
	ColorDepth  palette.Depth

	// Seed for the palette generators; zero picks a random seed.
	Seed uint64

	Sink      string
	OutDir    string
	ZstdLevel string
	LogLevel  string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		StartID:       0,
		PatternCount:  100,
		MaxIterations: 100000000,
		ThreadCount:   -1,
		GridSize:      1024,
		ColorDepth:    palette.Depth8,
		Sink:          "dir",
		OutDir:        ".",
		ZstdLevel:     "default",
		LogLevel:      "<root>=INFO",
	}
}

// FromMap returns the default configuration updated with the values in
// cfg.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if err := c.Apply(cfg); err != nil {
		return Config{}, errgo.Mask(err, errgo.Is(ErrInvalid))
	}
	return c, nil
}

// Apply updates c from flag-style key/value pairs. Unknown keys are an
// error so that typos in configuration files do not go unnoticed.
func (c *Config) Apply(cfg map[string]string) error {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.set(k, cfg[k]); err != nil {
			return errgo.WithCausef(err, ErrInvalid, "bad value %q for %s", cfg[k], k)
		}
	}
	return nil
}

func (c *Config) set(key, v string) error {
	var err error
	switch key {
	case KeyStart:
		c.StartID, err = strconv.ParseUint(v, 10, 64)
	case KeyCount:
		c.PatternCount, err = strconv.ParseUint(v, 10, 64)
	case KeyInvert:
		c.InvertPattern, err = strconv.ParseBool(v)
	case KeyReverse:
		c.ReversePattern, err = strconv.ParseBool(v)
	case KeyMaxIterations:
		c.MaxIterations, err = strconv.ParseUint(v, 10, 64)
	case KeyThreads:
		c.ThreadCount, err = strconv.Atoi(v)
	case KeyGrid:
		c.GridSize, err = strconv.Atoi(v)
	case KeyDepth:
		err = c.ColorDepth.Set(v)
	case KeySeed:
		c.Seed, err = strconv.ParseUint(v, 10, 64)
	case KeySink:
		c.Sink = v
	case KeyOut:
		c.OutDir = v
	case KeyZstdLevel:
		c.ZstdLevel = v
	case KeyLog:
		c.LogLevel = v
	default:
		return errgo.New("unknown key")
	}
	return err
}

// Validate reports the first setting that cannot be used for a sweep.
func (c Config) Validate() error {
	switch {
	case c.GridSize < MinGridSize || c.GridSize > MaxGridSize:
		return errgo.WithCausef(nil, ErrInvalid, "grid size %d out of range [%d, %d]", c.GridSize, MinGridSize, MaxGridSize)
	case !c.ColorDepth.Valid():
		return errgo.WithCausef(nil, ErrInvalid, "unsupported color depth %d", c.ColorDepth)
	case c.PatternCount == 0:
		return errgo.WithCausef(nil, ErrInvalid, "pattern count must be at least 1")
	case c.PatternCount-1 > math.MaxUint64-c.StartID:
		return errgo.WithCausef(nil, ErrInvalid, "%d patterns starting at %d overflow the identifier range", c.PatternCount, c.StartID)
	case c.Sink == "":
		return errgo.WithCausef(nil, ErrInvalid, "no sink configured")
	}
	return nil
}

// SinkOptions returns the options passed to the sink factory.
func (c Config) SinkOptions() map[string]string {
	return map[string]string{
		"dir":   c.OutDir,
		"level": c.ZstdLevel,
	}
}

// Bind registers one flag per configuration key on fs, writing into c.
// The flags default to the current values of c.
func (c *Config) Bind(fs *gnuflag.FlagSet) {
	fs.Uint64Var(&c.StartID, KeyStart, c.StartID, "first pattern identifier")
	fs.Uint64Var(&c.PatternCount, KeyCount, c.PatternCount, "number of identifiers to sweep")
	fs.BoolVar(&c.InvertPattern, KeyInvert, c.InvertPattern, "flip every turn of the derived rules")
	fs.BoolVar(&c.ReversePattern, KeyReverse, c.ReversePattern, "reverse the state order of the derived rules")
	fs.Uint64Var(&c.MaxIterations, KeyMaxIterations, c.MaxIterations, "step cap per pattern")
	fs.IntVar(&c.ThreadCount, KeyThreads, c.ThreadCount, "worker count (negative: one per CPU)")
	fs.IntVar(&c.GridSize, KeyGrid, c.GridSize, "grid side in cells")
	fs.Var(&c.ColorDepth, KeyDepth, "bits per pixel of the output (8 or 24)")
	fs.Uint64Var(&c.Seed, KeySeed, c.Seed, "palette seed (0: random)")
	fs.StringVar(&c.Sink, KeySink, c.Sink, "output sink (dir, zstd, memory, discard)")
	fs.StringVar(&c.OutDir, KeyOut, c.OutDir, "output directory")
	fs.StringVar(&c.ZstdLevel, KeyZstdLevel, c.ZstdLevel, "zstd level (fastest, default, better, best)")
	fs.StringVar(&c.LogLevel, KeyLog, c.LogLevel, "logging configuration, e.g. <root>=DEBUG")
}

// Parameters returns the settings of c for display.
func (c Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Range",
		Params: []core.Parameter{
			{Key: KeyStart, Label: "Start", Value: strconv.FormatUint(c.StartID, 10)},
			{Key: KeyCount, Label: "Count", Value: strconv.FormatUint(c.PatternCount, 10)},
			{Key: KeyInvert, Label: "Invert", Value: strconv.FormatBool(c.InvertPattern)},
			{Key: KeyReverse, Label: "Reverse", Value: strconv.FormatBool(c.ReversePattern)},
		},
	}, {
		Name: "Simulation",
		Params: []core.Parameter{
			{Key: KeyMaxIterations, Label: "Max iterations", Value: strconv.FormatUint(c.MaxIterations, 10)},
			{Key: KeyThreads, Label: "Threads", Value: strconv.Itoa(c.ThreadCount)},
			{Key: KeyGrid, Label: "Grid", Value: strconv.Itoa(c.GridSize)},
			{Key: KeyDepth, Label: "Depth", Value: c.ColorDepth.String()},
			{Key: KeySeed, Label: "Seed", Value: strconv.FormatUint(c.Seed, 10)},
		},
	}, {
		Name: "Output",
		Params: []core.Parameter{
			{Key: KeySink, Label: "Sink", Value: c.Sink},
			{Key: KeyOut, Label: "Directory", Value: c.OutDir},
			{Key: KeyZstdLevel, Label: "Zstd level", Value: c.ZstdLevel},
		},
	}}}
}

// LoadFile reads a YAML mapping of configuration keys to scalar values.
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errgo.Notef(err, "cannot read configuration")
	}
	return parseYAML(data)
}

func parseYAML(data []byte) (map[string]string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errgo.WithCausef(err, ErrInvalid, "cannot parse configuration")
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v.(type) {
		case map[interface{}]interface{}, []interface{}:
			return nil, errgo.WithCausef(nil, ErrInvalid, "value for %s is not a scalar", k)
		case nil:
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out, nil
}
