package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	errgo "gopkg.in/errgo.v1"

	"turmites/internal/config"
	"turmites/internal/palette"
)

func TestParseConfigPrecedence(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "sweep.yaml")
	err := os.WriteFile(path, []byte("start: 100\ncount: 20\ngrid: 64\ndepth: 24\n"), 0o644)
	c.Assert(err, qt.IsNil)

	cfg, err := parseConfig([]string{"--count", "5", "--config", path, "--invert"})
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.StartID, qt.Equals, uint64(100))
	c.Assert(cfg.PatternCount, qt.Equals, uint64(5))
	c.Assert(cfg.GridSize, qt.Equals, 64)
	c.Assert(cfg.ColorDepth, qt.Equals, palette.Depth24)
	c.Assert(cfg.InvertPattern, qt.IsTrue)
	c.Assert(cfg.ReversePattern, qt.IsFalse)
}

func TestParseConfigErrors(t *testing.T) {
	c := qt.New(t)
	_, err := parseConfig([]string{"--grid", "1"})
	c.Assert(err, qt.ErrorMatches, "grid size 1 out of range.*")
	c.Assert(errgo.Cause(err), qt.Equals, config.ErrInvalid)

	_, err = parseConfig([]string{"stray"})
	c.Assert(err, qt.ErrorMatches, `unexpected arguments \["stray"\]`)

	path := filepath.Join(c.TempDir(), "bad.yaml")
	c.Assert(os.WriteFile(path, []byte("colour: 8\n"), 0o644), qt.IsNil)
	_, err = parseConfig([]string{"--config", path})
	c.Assert(err, qt.ErrorMatches, `.*bad.yaml: bad value "8" for colour: unknown key`)
}

func TestRunWritesFiles(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()
	var stderr bytes.Buffer
	code := run([]string{
		"--start", "2", "--count", "3", "--grid", "8", "--max_iterations", "500",
		"--out", dir, "--sink", "zstd", "--seed", "3", "--log", "<root>=ERROR",
	}, &stderr)
	c.Assert(code, qt.Equals, 0, qt.Commentf("stderr: %s", stderr.String()))

	entries, err := os.ReadDir(dir)
	c.Assert(err, qt.IsNil)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	c.Assert(names, qt.DeepEquals, []string{"2.bmp.zst", "4.bmp.zst"})
}

func TestRunUnknownSink(t *testing.T) {
	c := qt.New(t)
	var stderr bytes.Buffer
	code := run([]string{"--sink", "tape", "--log", "<root>=ERROR"}, &stderr)
	c.Assert(code, qt.Equals, 1)
	c.Assert(stderr.String(), qt.Matches, `turmite-sweep: unknown sink "tape" \(have dir, discard, memory, zstd\)\n`)
}

func TestRunSinkFailuresKeepExitCode(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()
	// A directory in the way makes the write of 2.bmp fail.
	c.Assert(os.Mkdir(filepath.Join(dir, "2.bmp"), 0o755), qt.IsNil)
	var stderr bytes.Buffer
	code := run([]string{
		"--start", "2", "--count", "3", "--grid", "8", "--max_iterations", "500",
		"--out", dir, "--seed", "3", "--log", "<root>=ERROR",
	}, &stderr)
	c.Assert(code, qt.Equals, 0, qt.Commentf("stderr: %s", stderr.String()))

	info, err := os.Stat(filepath.Join(dir, "4.bmp"))
	c.Assert(err, qt.IsNil)
	c.Assert(info.Mode().IsRegular(), qt.IsTrue)
}

func TestRunBadLogConfig(t *testing.T) {
	c := qt.New(t)
	var stderr bytes.Buffer
	code := run([]string{"--log", "<root>=LOUD"}, &stderr)
	c.Assert(code, qt.Equals, 1)
	c.Assert(stderr.String(), qt.Matches, `turmite-sweep: bad log configuration: .*\n`)
}
