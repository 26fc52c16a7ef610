//go:build ebiten

// Command turmite-view shows finished turmite patterns, either simulated
// on the spot or loaded from bitmap files written by turmite-sweep.
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo"

	"turmites/internal/app"
)

var logger = loggo.GetLogger("turmites")

func main() {
	cfg := app.NewConfig()
	fs := gnuflag.NewFlagSet("turmite-view", gnuflag.ExitOnError)
	cfg.Bind(fs)
	fs.Parse(true, os.Args[1:])
	if err := loggo.ConfigureLoggers(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "turmite-view: bad log configuration: %v\n", err)
		os.Exit(1)
	}

	v, err := app.NewViewer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "turmite-view: %v\n", err)
		os.Exit(1)
	}
	if cfg.File != "" {
		err = v.Load(cfg.File)
	} else {
		err = v.Show(cfg.ID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "turmite-view: %v\n", err)
		os.Exit(1)
	}

	game := app.New(v, cfg.Scale, cfg.HUDWidth)
	ebiten.SetWindowTitle("turmite-view")
	ebiten.SetWindowSize(game.Layout(0, 0))
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
