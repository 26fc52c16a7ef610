package app

import (
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/juju/gnuflag"
	"github.com/juju/loggo"
	"golang.org/x/image/bmp"
	errgo "gopkg.in/errgo.v1"

	"turmites/internal/config"
	"turmites/internal/core"
	"turmites/internal/palette"
	"turmites/internal/render"
	"turmites/internal/rule"
	"turmites/internal/turmite"
)

var logger = loggo.GetLogger("turmites.app")

// Config controls the pattern viewer.
type Config struct {
	ID            uint64
	File          string
	Grid          int
	MaxIterations uint64
	Depth         palette.Depth
	Invert        bool
	Reverse       bool
	Seed          uint64
	Scale         int
	HUDWidth      int
	LogLevel      string
}

// NewConfig returns the default viewer configuration.
func NewConfig() Config {
	return Config{
		ID:            2,
		Grid:          256,
		MaxIterations: 10000000,
		Depth:         palette.Depth24,
		Seed:          1,
		Scale:         3,
		HUDWidth:      220,
		LogLevel:      "<root>=INFO",
	}
}

// Bind registers the viewer flags on fs.
func (c *Config) Bind(fs *gnuflag.FlagSet) {
	fs.Uint64Var(&c.ID, "id", c.ID, "pattern identifier to simulate")
	fs.StringVar(&c.File, "file", c.File, "show a bitmap file instead of simulating")
	fs.IntVar(&c.Grid, "grid", c.Grid, "grid side in cells")
	fs.Uint64Var(&c.MaxIterations, "max_iterations", c.MaxIterations, "step cap per pattern")
	fs.Var(&c.Depth, "depth", "palette depth (8 or 24)")
	fs.BoolVar(&c.Invert, "invert", c.Invert, "flip every turn of the rule")
	fs.BoolVar(&c.Reverse, "reverse", c.Reverse, "reverse the state order of the rule")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "palette seed")
	fs.IntVar(&c.Scale, "scale", c.Scale, "screen pixels per cell")
	fs.StringVar(&c.LogLevel, "log", c.LogLevel, "logging configuration")
}

// Validate reports settings the viewer cannot use.
func (c Config) Validate() error {
	if c.Grid < config.MinGridSize || c.Grid > config.MaxGridSize {
		return errgo.WithCausef(nil, config.ErrInvalid, "grid size %d out of range [%d, %d]", c.Grid, config.MinGridSize, config.MaxGridSize)
	}
	if !c.Depth.Valid() {
		return errgo.WithCausef(nil, config.ErrInvalid, "unsupported color depth %d", c.Depth)
	}
	if c.Scale < 1 {
		return errgo.WithCausef(nil, config.ErrInvalid, "scale must be at least 1")
	}
	return nil
}

// Pattern is the finished pattern currently on display.
type Pattern struct {
	// Source is the file the pattern was loaded from; empty when simulated.
	Source string
	ID     uint64
	Rule   rule.Rule
	Result turmite.Result
	Image  *image.RGBA
}

// Viewer simulates patterns to completion and renders them. It holds no
// display state and works without a window.
type Viewer struct {
	cfg     Config
	engine  *turmite.Engine
	palette *palette.Palette
	rng     *core.RNG
	pattern Pattern
}

// NewViewer returns a viewer for cfg. Nothing is shown until Show or Load
// is called.
func NewViewer(cfg Config) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errgo.Mask(err, errgo.Is(config.ErrInvalid))
	}
	return &Viewer{
		cfg:     cfg,
		engine:  turmite.New(cfg.Grid, cfg.MaxIterations),
		palette: palette.New(cfg.Depth),
		rng:     core.NewRNG(int64(cfg.Seed)),
	}, nil
}

// Pattern returns the pattern on display.
func (v *Viewer) Pattern() Pattern { return v.pattern }

// Size returns the dimensions of the pattern on display, or of the grid
// when nothing is shown yet.
func (v *Viewer) Size() core.Size {
	if v.pattern.Image != nil {
		b := v.pattern.Image.Bounds()
		return core.Size{W: b.Dx(), H: b.Dy()}
	}
	return v.engine.Grid().Size()
}

// Show runs the turmite of id to completion and renders its final grid.
func (v *Viewer) Show(id uint64) error {
	r, err := rule.Derive(id, v.cfg.Invert, v.cfg.Reverse)
	if err != nil {
		return errgo.Mask(err, errgo.Is(rule.ErrIneligible))
	}
	v.engine.Reset(r)
	res := v.engine.Run()
	res.ID = id
	logger.Debugf("pattern %d: %s after %d steps", id, res.Outcome, res.Steps)
	v.pattern = Pattern{ID: id, Rule: v.engine.Rule(), Result: res}
	return v.repaint()
}

// Next shows the next eligible identifier.
func (v *Viewer) Next() error {
	id, ok := rule.NextEligible(v.pattern.ID)
	if !ok {
		return errgo.Newf("no eligible identifier after %d", v.pattern.ID)
	}
	return v.Show(id)
}

// Prev shows the previous eligible identifier.
func (v *Viewer) Prev() error {
	id, ok := rule.PrevEligible(v.pattern.ID)
	if !ok {
		return errgo.Newf("no eligible identifier before %d", v.pattern.ID)
	}
	return v.Show(id)
}

// Reroll paints the simulated pattern with a fresh palette. Loaded files
// keep their colors.
func (v *Viewer) Reroll() error {
	if v.pattern.Source != "" || v.pattern.Image == nil {
		return nil
	}
	return v.repaint()
}

func (v *Viewer) repaint() error {
	if err := v.palette.Fill(v.rng, v.engine.Rule().States()); err != nil {
		return errgo.Mask(err)
	}
	v.pattern.Image = render.Image(v.engine.Grid(), v.palette)
	return nil
}

// Load shows a bitmap file. When the file name is a decimal identifier,
// such as the ones written by a sweep, it becomes the current identifier
// so Next and Prev continue from there.
func (v *Viewer) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errgo.Notef(err, "cannot open pattern")
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		return errgo.Notef(err, "cannot decode %s", path)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			rgba.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	p := Pattern{Source: path, Image: rgba}
	if id, ok := idFromName(path); ok {
		p.ID = id
		if r, err := rule.Derive(id, v.cfg.Invert, v.cfg.Reverse); err == nil {
			p.Rule = r
		}
	}
	v.pattern = p
	return nil
}

func idFromName(path string) (uint64, bool) {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	id, err := strconv.ParseUint(name, 10, 64)
	return id, err == nil
}

// Parameters describes the pattern on display for the HUD.
func (v *Viewer) Parameters() core.ParameterSnapshot {
	p := v.pattern
	info := []core.Parameter{
		{Key: "id", Label: "Identifier", Value: strconv.FormatUint(p.ID, 10)},
	}
	if n := p.Rule.States(); n > 0 {
		info = append(info,
			core.Parameter{Key: "rule", Label: "Rule", Value: p.Rule.String()},
			core.Parameter{Key: "states", Label: "States", Value: strconv.Itoa(n)},
		)
	}
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{{Name: "Pattern", Params: info}}}
	if p.Source != "" {
		snap.Groups = append(snap.Groups, core.ParameterGroup{
			Name:   "File",
			Params: []core.Parameter{{Key: "file", Label: "Name", Value: filepath.Base(p.Source)}},
		})
		return snap
	}
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "Run",
		Params: []core.Parameter{
			{Key: "steps", Label: "Steps", Value: strconv.FormatUint(p.Result.Steps, 10)},
			{Key: "outcome", Label: "Outcome", Value: p.Result.Outcome.String()},
			{Key: "grid", Label: "Grid", Value: strconv.Itoa(v.cfg.Grid)},
		},
	})
	return snap
}
