// Command turmite-sweep simulates a range of turmite identifiers and writes
// the final grid of each one as a bitmap.
//
// Settings come from defaults, then an optional YAML file given with
// --config, then flags given on the command line:
//
//	turmite-sweep --config sweep.yaml --start 4096 --count 1000 --depth 24
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/juju/gnuflag"
	"github.com/juju/loggo"
	"github.com/kr/pretty"
	errgo "gopkg.in/errgo.v1"

	"turmites/internal/config"
	"turmites/internal/core"
	_ "turmites/internal/sink"
	"turmites/internal/sweep"
)

var logger = loggo.GetLogger("turmites")

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	cfg, err := parseConfig(args)
	if err == gnuflag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "turmite-sweep: %v\n", err)
		return 1
	}
	if err := loggo.ConfigureLoggers(cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "turmite-sweep: bad log configuration: %v\n", err)
		return 1
	}
	logger.Tracef("configuration: %# v", pretty.Formatter(cfg))
	logger.Infof("%s", cfg.Parameters().Inline())

	sink, err := openSink(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "turmite-sweep: %v\n", err)
		return 1
	}
	if c, ok := sink.(io.Closer); ok {
		defer c.Close()
	}

	st, err := sweep.Run(cfg, sink)
	if err != nil {
		logger.Errorf("sweep stopped: %v", err)
		return 1
	}
	logger.Infof("%d patterns written, %d failed, %d capped, %d exited, %d steps in %v",
		st.Written, st.Failed, st.Capped, st.Exited, st.Steps, st.Elapsed)
	return 0
}

// parseConfig merges the defaults, the --config file and the explicit
// flags, in increasing order of precedence.
func parseConfig(args []string) (config.Config, error) {
	cfg := config.DefaultConfig()
	fs := gnuflag.NewFlagSet("turmite-sweep", gnuflag.ContinueOnError)
	cfg.Bind(fs)
	var file string
	fs.StringVar(&file, "config", "", "YAML file with configuration keys")
	if err := fs.Parse(true, args); err != nil {
		return config.Config{}, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, errgo.Newf("unexpected arguments %q", fs.Args())
	}
	if file != "" {
		values, err := config.LoadFile(file)
		if err != nil {
			return config.Config{}, errgo.Mask(err, errgo.Any)
		}
		fs.Visit(func(f *gnuflag.Flag) {
			delete(values, f.Name)
		})
		if err := cfg.Apply(values); err != nil {
			return config.Config{}, errgo.Notef(err, "%s", file)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, errgo.Mask(err, errgo.Any)
	}
	return cfg, nil
}

func openSink(cfg config.Config) (core.Sink, error) {
	factories := core.Sinks()
	factory, ok := factories[cfg.Sink]
	if !ok {
		names := make([]string, 0, len(factories))
		for name := range factories {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, errgo.Newf("unknown sink %q (have %s)", cfg.Sink, strings.Join(names, ", "))
	}
	sink, err := factory(cfg.SinkOptions())
	if err != nil {
		return nil, errgo.Notef(err, "cannot open %s sink", cfg.Sink)
	}
	return sink, nil
}
