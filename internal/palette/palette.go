// Package palette generates the random color tables used to render
// finished turmite grids.
package palette

import (
	"io"
	"strconv"

	errgo "gopkg.in/errgo.v1"
)

// Entries is the number of color slots in every palette table.
const Entries = 256

// Depth is an output color depth in bits per pixel.
type Depth int

const (
	// Depth8 renders indexed images with a single intensity byte per color.
	Depth8 Depth = 8
	// Depth24 renders true-color images with blue, green and red bytes per color.
	Depth24 Depth = 24
)

// Valid reports whether d is a supported depth.
func (d Depth) Valid() bool { return d == Depth8 || d == Depth24 }

// Channels returns how many palette bytes describe one color.
func (d Depth) Channels() int {
	if d == Depth24 {
		return 3
	}
	return 1
}

// BytesPerPixel returns the size of one encoded pixel.
func (d Depth) BytesPerPixel() int { return int(d) / 8 }

// String implements fmt.Stringer and the flag Value interface.
func (d Depth) String() string { return strconv.Itoa(int(d)) }

// Set implements the flag Value interface.
func (d *Depth) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return errgo.Newf("invalid color depth %q", s)
	}
	if !Depth(v).Valid() {
		return errgo.Newf("unsupported color depth %d (want 8 or 24)", v)
	}
	*d = Depth(v)
	return nil
}

// Palette is a fixed-size color table of Entries colors. Only the colors
// for the states in use are populated; the rest of the table is zero.
type Palette struct {
	depth Depth
	n     int
	table []byte
}

// New returns an all-zero palette for the given depth.
func New(depth Depth) *Palette {
	return &Palette{depth: depth, table: make([]byte, Entries*depth.Channels())}
}

// Generate returns a palette with random colors for states states.
func Generate(src io.Reader, states int, depth Depth) (*Palette, error) {
	p := New(depth)
	if err := p.Fill(src, states); err != nil {
		return nil, errgo.Mask(err)
	}
	return p, nil
}

// Fill replaces the table contents with states random colors read from
// src and zeroes every remaining slot.
func (p *Palette) Fill(src io.Reader, states int) error {
	if states < 0 || states > Entries {
		return errgo.Newf("palette cannot hold %d states", states)
	}
	n := states * p.depth.Channels()
	clear(p.table)
	p.n = 0
	if _, err := io.ReadFull(src, p.table[:n]); err != nil {
		return errgo.Notef(err, "cannot read palette bytes")
	}
	p.n = n
	return nil
}

// Depth returns the color depth the palette was built for.
func (p *Palette) Depth() Depth { return p.depth }

// Len returns the number of populated bytes at the start of the table.
func (p *Palette) Len() int { return p.n }

// Bytes exposes the whole table.
func (p *Palette) Bytes() []byte { return p.table }

// Color returns the blue, green and red components used for state.
// Indexed palettes are grey levels.
func (p *Palette) Color(state uint8) (b, g, r uint8) {
	if p.depth != Depth24 {
		v := p.table[state]
		return v, v, v
	}
	base := int(state) * 3
	return p.table[base], p.table[base+1], p.table[base+2]
}
