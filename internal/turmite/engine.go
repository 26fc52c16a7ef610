// Package turmite runs a single generalized Langton's ant over a bounded
// grid.
//
// On every step the ant reads the state of its cell, turns clockwise or
// counter-clockwise as the rule says for that state, advances the cell to
// the next state (wrapping to zero after the last one) and moves one cell
// forward. The grid edge is absorbing: the run ends when the ant steps off
// the grid, or when the iteration budget runs out.
package turmite

import (
	"fmt"

	"turmites/internal/core"
	"turmites/internal/rule"
)

// Outcome describes the state of a run.
type Outcome uint8

const (
	// Running means the ant is still on the grid with budget left.
	Running Outcome = iota
	// Exited means the ant stepped off the grid.
	Exited
	// Capped means the iteration budget ran out first. The grid is a
	// snapshot of a pattern that was still evolving.
	Capped
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Exited:
		return "exited"
	case Capped:
		return "capped"
	default:
		return "unknown"
	}
}

// Result summarizes a finished run.
type Result struct {
	ID      uint64
	Steps   uint64
	Outcome Outcome
}

// InvariantError reports a defect in the engine itself. It is only ever
// raised with panic.
type InvariantError struct {
	What   string
	X, Y   int
	State  uint8
	States int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("turmite invariant violated: %s at (%d, %d) state %d of %d", e.What, e.X, e.Y, e.State, e.States)
}

// Engine simulates one ant at a time. The grid is allocated once and
// cleared by Reset, so an Engine can be reused for many rules but must not
// be shared between goroutines.
type Engine struct {
	grid    *core.ByteGrid
	rule    rule.Rule
	last    uint8
	maxIter uint64

	x, y    int
	idx     int
	dir     Direction
	steps   uint64
	outcome Outcome
}

// New returns an engine for a size×size grid that stops after at most
// maxIterations steps. Call Reset before stepping.
func New(size int, maxIterations uint64) *Engine {
	return &Engine{
		grid:    core.NewSquareGrid(size),
		maxIter: maxIterations,
		outcome: Exited,
	}
}

// Reset clears the grid and puts a fresh ant, facing Up, on the center
// cell, ready to run r.
func (e *Engine) Reset(r rule.Rule) {
	if r.States() < 2 {
		panic(&InvariantError{What: "rule with fewer than two states", States: r.States()})
	}
	e.grid.Clear()
	e.rule = r
	e.last = uint8(r.States() - 1)
	e.x, e.y = e.grid.Center()
	e.idx = e.grid.Index(e.x, e.y)
	e.dir = Up
	e.steps = 0
	e.outcome = Running
	if e.maxIter == 0 {
		e.outcome = Capped
	}
}

// Step advances the ant once and reports whether it can keep going.
func (e *Engine) Step() bool {
	if e.outcome != Running {
		return false
	}
	cells := e.grid.Cells()
	s := cells[e.idx]
	if s > e.last {
		panic(&InvariantError{What: "cell state out of range", X: e.x, Y: e.y, State: s, States: e.rule.States()})
	}
	e.dir = e.dir.Turn(e.rule.Turn(s))
	if s == e.last {
		cells[e.idx] = 0
	} else {
		cells[e.idx] = s + 1
	}
	dx, dy := e.dir.Delta()
	e.x += dx
	e.y += dy
	e.steps++
	if !e.grid.Contains(e.x, e.y) {
		e.outcome = Exited
		return false
	}
	e.idx += e.dir.Offset(e.grid.W)
	if e.steps >= e.maxIter {
		e.outcome = Capped
		return false
	}
	return true
}

// Run steps until the ant leaves the grid or the budget is spent.
func (e *Engine) Run() Result {
	for e.Step() {
	}
	return e.Result()
}

// Result reports the current progress of the run.
func (e *Engine) Result() Result {
	return Result{ID: e.rule.ID(), Steps: e.steps, Outcome: e.outcome}
}

// Grid exposes the cell states. The grid is overwritten by the next Reset.
func (e *Engine) Grid() *core.ByteGrid { return e.grid }

// Rule returns the rule being simulated.
func (e *Engine) Rule() rule.Rule { return e.rule }

// Ant returns the ant's position and heading. After the ant has exited
// the position is the first cell off the grid.
func (e *Engine) Ant() (x, y int, dir Direction) { return e.x, e.y, e.dir }

// Outcome reports whether the run is still going and, if not, why it
// stopped.
func (e *Engine) Outcome() Outcome { return e.outcome }
