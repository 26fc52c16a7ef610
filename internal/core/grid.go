package core

// ByteGrid stores a 2D grid of byte-sized cell states in row-major order.
// Row 0 is the bottom row of a rendered bitmap.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a zeroed grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// NewSquareGrid allocates a zeroed size×size grid.
func NewSquareGrid(size int) *ByteGrid { return NewByteGrid(size, size) }

// Size reports the grid dimensions.
func (g *ByteGrid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Row returns the cells of row y.
func (g *ByteGrid) Row(y int) []uint8 { return g.data[y*g.W : (y+1)*g.W] }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// At returns the state of cell (x, y).
func (g *ByteGrid) At(x, y int) uint8 { return g.data[y*g.W+x] }

// Contains reports whether (x, y) lies on the grid. There is no wrapping:
// anything outside is off the grid.
func (g *ByteGrid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// Center returns the coordinates of the middle cell.
func (g *ByteGrid) Center() (int, int) { return g.W / 2, g.H / 2 }

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	clear(g.data)
}
