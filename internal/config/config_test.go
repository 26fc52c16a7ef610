package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/juju/gnuflag"
	errgo "gopkg.in/errgo.v1"

	"turmites/internal/palette"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	c.Assert(cfg.Validate(), qt.IsNil)
	c.Assert(cfg.GridSize, qt.Equals, 1024)
	c.Assert(cfg.ColorDepth, qt.Equals, palette.Depth8)
	c.Assert(cfg.MaxIterations, qt.Equals, uint64(100000000))
}

func TestFromMap(t *testing.T) {
	c := qt.New(t)
	cfg, err := FromMap(map[string]string{
		"start":          "12",
		"count":          "500",
		"invert":         "true",
		"reverse":        "1",
		"max_iterations": "2000",
		"threads":        "3",
		"grid":           "257",
		"depth":          "24",
		"seed":           "42",
		"sink":           "zstd",
		"out":            "/tmp/patterns",
		"zstd_level":     "best",
		"log":            "<root>=DEBUG",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, Config{
		StartID:        12,
		PatternCount:   500,
		InvertPattern:  true,
		ReversePattern: true,
		MaxIterations:  2000,
		ThreadCount:    3,
		GridSize:       257,
		ColorDepth:     palette.Depth24,
		Seed:           42,
		Sink:           "zstd",
		OutDir:         "/tmp/patterns",
		ZstdLevel:      "best",
		LogLevel:       "<root>=DEBUG",
	})
	c.Assert(cfg.SinkOptions(), qt.DeepEquals, map[string]string{"dir": "/tmp/patterns", "level": "best"})
}

func TestFromMapNil(t *testing.T) {
	c := qt.New(t)
	cfg, err := FromMap(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, DefaultConfig())
}

func TestFromMapErrors(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		in      map[string]string
		message string
	}{
		{map[string]string{"grid": "big"}, `bad value "big" for grid.*`},
		{map[string]string{"count": "-1"}, `bad value "-1" for count.*`},
		{map[string]string{"depth": "16"}, `bad value "16" for depth.*`},
		{map[string]string{"invert": "maybe"}, `bad value "maybe" for invert.*`},
		{map[string]string{"colour": "8"}, `bad value "8" for colour: unknown key`},
	}
	for _, test := range tests {
		_, err := FromMap(test.in)
		c.Check(err, qt.ErrorMatches, test.message)
		c.Check(errgo.Cause(err), qt.Equals, ErrInvalid)
	}
}

func TestValidate(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		about   string
		mutate  func(*Config)
		message string
	}{{
		about:   "grid too small",
		mutate:  func(cfg *Config) { cfg.GridSize = 1 },
		message: `grid size 1 out of range \[2, 65535\].*`,
	}, {
		about:   "grid too large",
		mutate:  func(cfg *Config) { cfg.GridSize = 65536 },
		message: `grid size 65536 out of range \[2, 65535\].*`,
	}, {
		about:   "depth",
		mutate:  func(cfg *Config) { cfg.ColorDepth = 32 },
		message: `unsupported color depth 32.*`,
	}, {
		about:   "empty range",
		mutate:  func(cfg *Config) { cfg.PatternCount = 0 },
		message: `pattern count must be at least 1.*`,
	}, {
		about: "overflow",
		mutate: func(cfg *Config) {
			cfg.StartID = math.MaxUint64 - 1
			cfg.PatternCount = 3
		},
		message: `3 patterns starting at 18446744073709551614 overflow the identifier range.*`,
	}, {
		about:   "no sink",
		mutate:  func(cfg *Config) { cfg.Sink = "" },
		message: `no sink configured.*`,
	}}
	for _, test := range tests {
		c.Run(test.about, func(c *qt.C) {
			cfg := DefaultConfig()
			test.mutate(&cfg)
			err := cfg.Validate()
			c.Assert(err, qt.ErrorMatches, test.message)
			c.Assert(errgo.Cause(err), qt.Equals, ErrInvalid)
		})
	}
}

func TestValidateRangeEdges(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	cfg.StartID = math.MaxUint64
	cfg.PatternCount = 1
	c.Assert(cfg.Validate(), qt.IsNil)

	cfg.StartID = 0
	cfg.PatternCount = math.MaxUint64
	c.Assert(cfg.Validate(), qt.IsNil)

	cfg.GridSize = 2
	c.Assert(cfg.Validate(), qt.IsNil)
	cfg.GridSize = 65535
	c.Assert(cfg.Validate(), qt.IsNil)
}

func TestBind(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	fs := gnuflag.NewFlagSet("test", gnuflag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse(true, []string{"--start", "100", "--count=7", "--depth", "24", "--invert", "extra"})
	c.Assert(err, qt.IsNil)
	c.Assert(fs.Args(), qt.DeepEquals, []string{"extra"})
	c.Assert(cfg.StartID, qt.Equals, uint64(100))
	c.Assert(cfg.PatternCount, qt.Equals, uint64(7))
	c.Assert(cfg.ColorDepth, qt.Equals, palette.Depth24)
	c.Assert(cfg.InvertPattern, qt.IsTrue)
	c.Assert(cfg.GridSize, qt.Equals, 1024)

	var set []string
	fs.Visit(func(f *gnuflag.Flag) { set = append(set, f.Name) })
	c.Assert(set, qt.DeepEquals, []string{"count", "depth", "invert", "start"})
}

func TestParameters(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	cfg.StartID = 5
	snap := cfg.Parameters()
	c.Assert(snap.Groups, qt.HasLen, 3)
	c.Assert(snap.Inline(), qt.Equals,
		"start=5 count=100 invert=false reverse=false max_iterations=100000000 threads=-1 grid=1024 depth=8 seed=0 sink=dir out=. zstd_level=default")
}

func TestLoadFile(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "sweep.yaml")
	err := os.WriteFile(path, []byte(`
start: 4096
count: 64
reverse: true
grid: 512
depth: 24
out: patterns
seed: 18446744073709551615
log:
`), 0o644)
	c.Assert(err, qt.IsNil)

	m, err := LoadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(m, qt.DeepEquals, map[string]string{
		"start":   "4096",
		"count":   "64",
		"reverse": "true",
		"grid":    "512",
		"depth":   "24",
		"out":     "patterns",
		"seed":    "18446744073709551615",
	})

	cfg, err := FromMap(m)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.StartID, qt.Equals, uint64(4096))
	c.Assert(cfg.ReversePattern, qt.IsTrue)
	c.Assert(cfg.ColorDepth, qt.Equals, palette.Depth24)
	c.Assert(cfg.Seed, qt.Equals, uint64(math.MaxUint64))
}

func TestLoadFileErrors(t *testing.T) {
	c := qt.New(t)
	_, err := LoadFile(filepath.Join(c.TempDir(), "missing.yaml"))
	c.Assert(err, qt.ErrorMatches, "cannot read configuration: .*")

	_, err = parseYAML([]byte("grid: [1, 2]"))
	c.Assert(err, qt.ErrorMatches, "value for grid is not a scalar.*")
	c.Assert(errgo.Cause(err), qt.Equals, ErrInvalid)

	_, err = parseYAML([]byte("grid: {"))
	c.Assert(err, qt.ErrorMatches, "cannot parse configuration: .*")
	c.Assert(errgo.Cause(err), qt.Equals, ErrInvalid)
}
