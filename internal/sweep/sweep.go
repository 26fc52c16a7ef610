// Package sweep runs the turmites of a range of identifiers on a fixed pool
// of workers and hands every finished pattern to a sink.
//
// The range is cut into one contiguous shard per worker. A worker owns
// every piece of mutable state it touches (grid, engine, palette, encode
// buffer and random stream) and only shares the sink, so the hot loop
// takes no locks. Results are gathered once all workers have returned.
package sweep

import (
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/juju/loggo"
	"golang.org/x/sync/errgroup"
	errgo "gopkg.in/errgo.v1"

	"turmites/internal/bitmap"
	"turmites/internal/config"
	"turmites/internal/core"
	"turmites/internal/palette"
	"turmites/internal/rule"
	"turmites/internal/turmite"
)

var logger = loggo.GetLogger("turmites.sweep")

// progressInterval is how often a busy worker reports how far it got.
var progressInterval = 30 * time.Second

// Shard is the contiguous block of identifiers assigned to one worker.
type Shard struct {
	Worker int
	Start  uint64
	Count  uint64
}

// Last returns the final identifier of a non-empty shard.
func (s Shard) Last() uint64 { return s.Start + s.Count - 1 }

// Workers resolves a requested worker count. A negative count means one
// worker per CPU; zero still gets one worker.
func Workers(requested int) int {
	if requested < 0 {
		return runtime.NumCPU()
	}
	return max(requested, 1)
}

// Partition splits count identifiers starting at start into at most workers
// shards. Shard sizes differ by at most one, the larger shards come first,
// and together they cover the range exactly once.
func Partition(start, count uint64, workers int) []Shard {
	if count == 0 {
		return nil
	}
	n := uint64(1)
	if workers > 1 {
		n = uint64(workers)
	}
	if n > count {
		n = count
	}
	per, rem := count/n, count%n
	shards := make([]Shard, 0, n)
	next := start
	for i := uint64(0); i < n; i++ {
		size := per
		if i < rem {
			size++
		}
		shards = append(shards, Shard{Worker: int(i), Start: next, Count: size})
		next += size
	}
	return shards
}

// Stats counts what a sweep did.
type Stats struct {
	// Processed is the number of eligible identifiers simulated.
	Processed uint64
	// Skipped is the number of ineligible identifiers.
	Skipped uint64
	Written uint64
	Failed  uint64
	Exited  uint64
	Capped  uint64
	// Steps is the total number of automaton steps taken.
	Steps   uint64
	Elapsed time.Duration
}

func (s *Stats) add(o Stats) {
	s.Processed += o.Processed
	s.Skipped += o.Skipped
	s.Written += o.Written
	s.Failed += o.Failed
	s.Exited += o.Exited
	s.Capped += o.Capped
	s.Steps += o.Steps
}

// Run sweeps the identifiers described by cfg and writes one bitmap per
// eligible identifier to sink. Sink failures are logged and counted but do
// not stop the sweep; the returned error reports an unusable configuration
// or a pattern that could not be encoded.
func Run(cfg config.Config, sink core.Sink) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, errgo.Mask(err, errgo.Is(config.ErrInvalid))
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	shards := Partition(cfg.StartID, cfg.PatternCount, Workers(cfg.ThreadCount))
	logger.Infof("sweeping %d identifiers from %d on %d workers (grid %d, depth %v, seed %d)",
		cfg.PatternCount, cfg.StartID, len(shards), cfg.GridSize, cfg.ColorDepth, seed)

	start := time.Now()
	results := make([]Stats, len(shards))
	var g errgroup.Group
	for i, sh := range shards {
		g.Go(func() error {
			w := newWorker(cfg, seed, sh.Worker, sink)
			return w.run(sh, &results[i])
		})
	}
	err := g.Wait()

	var total Stats
	for _, r := range results {
		total.add(r)
	}
	total.Elapsed = time.Since(start)
	if err != nil {
		return total, errgo.Mask(err)
	}
	logger.Infof("sweep done in %v: %d written, %d failed, %d skipped, %d exited, %d capped",
		total.Elapsed.Round(time.Millisecond), total.Written, total.Failed, total.Skipped, total.Exited, total.Capped)
	return total, nil
}

type worker struct {
	index   int
	invert  bool
	reverse bool
	engine  *turmite.Engine
	palette *palette.Palette
	rng     *core.RNG
	sink    core.Sink
	buf     []byte
}

func newWorker(cfg config.Config, seed uint64, index int, sink core.Sink) *worker {
	return &worker{
		index:   index,
		invert:  cfg.InvertPattern,
		reverse: cfg.ReversePattern,
		engine:  turmite.New(cfg.GridSize, cfg.MaxIterations),
		palette: palette.New(cfg.ColorDepth),
		rng:     core.NewStreamRNG(seed, uint64(index)),
		sink:    sink,
	}
}

func (w *worker) run(sh Shard, st *Stats) error {
	logger.Infof("worker %d: identifiers %d to %d", w.index, sh.Start, sh.Last())
	progress := core.NewThrottle(progressInterval)
	for i := uint64(0); i < sh.Count; i++ {
		if err := w.process(sh.Start+i, st); err != nil {
			return errgo.Mask(err)
		}
		if progress.Ready() {
			logger.Infof("worker %d: %d of %d identifiers done", w.index, i+1, sh.Count)
		}
	}
	logger.Infof("worker %d: finished, %d written, %d failed", w.index, st.Written, st.Failed)
	return nil
}

func (w *worker) process(id uint64, st *Stats) error {
	if !rule.Eligible(id) {
		st.Skipped++
		return nil
	}
	r, err := rule.Derive(id, w.invert, w.reverse)
	if err != nil {
		return errgo.Mask(err)
	}
	w.engine.Reset(r)
	res := w.engine.Run()
	st.Processed++
	st.Steps += res.Steps
	switch res.Outcome {
	case turmite.Capped:
		st.Capped++
		logger.Debugf("pattern %d capped after %d steps", id, res.Steps)
	default:
		st.Exited++
	}

	if err := w.palette.Fill(w.rng, r.States()); err != nil {
		return errgo.Notef(err, "pattern %d", id)
	}
	w.buf, err = bitmap.AppendEncode(w.buf[:0], w.engine.Grid(), w.palette)
	if err != nil {
		return errgo.Notef(err, "cannot encode pattern %d", id)
	}
	name := bitmap.Name(id)
	if err := w.sink.Write(name, w.buf); err != nil {
		st.Failed++
		logger.Warningf("cannot store %s: %v", name, err)
		return nil
	}
	st.Written++
	return nil
}
