// Package sink provides the durable destinations sweep workers write
// encoded patterns to. Every sink registers itself with core.RegisterSink
// under its name.
package sink

import (
	"os"
	"path/filepath"

	"github.com/juju/loggo"
	errgo "gopkg.in/errgo.v1"

	"turmites/internal/core"
)

var logger = loggo.GetLogger("turmites.sink")

func init() {
	core.RegisterSink("dir", func(cfg map[string]string) (core.Sink, error) {
		return NewDir(cfg["dir"])
	})
}

// Dir writes each pattern to its own file in a directory.
type Dir struct {
	root string
}

// NewDir returns a sink writing into root, creating it if needed. An empty
// root means the working directory.
func NewDir(root string) (*Dir, error) {
	if root == "" {
		root = "."
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errgo.Notef(err, "cannot create output directory")
	}
	logger.Debugf("writing patterns to %q", root)
	return &Dir{root: root}, nil
}

// Root returns the output directory.
func (d *Dir) Root() string { return d.root }

// Write creates or truncates the named file and writes data to it.
func (d *Dir) Write(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(d.root, name), data, 0o644); err != nil {
		return errgo.Notef(err, "cannot write %s", name)
	}
	return nil
}
