// Package render turns finished grids into RGBA pixels for display.
package render

import (
	"image"
	"image/color"

	"turmites/internal/core"
	"turmites/internal/palette"
)

// Colors converts every entry of p into an opaque RGBA color.
func Colors(p *palette.Palette) []color.RGBA {
	out := make([]color.RGBA, palette.Entries)
	for i := range out {
		b, g, r := p.Color(uint8(i))
		out[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return out
}

// FillRGBA converts the cells of grid into RGBA pixels in buf. Rows are
// flipped so that grid row 0 ends up at the bottom, the way bitmap files
// show it. States beyond the end of colors use the last color; an empty
// color list clears buf to transparent black.
func FillRGBA(buf []byte, grid *core.ByteGrid, colors []color.RGBA) {
	if len(colors) == 0 {
		clear(buf[:len(grid.Cells())*4])
		return
	}
	last := len(colors) - 1
	for y := 0; y < grid.H; y++ {
		out := buf[(grid.H-1-y)*grid.W*4:]
		for x, c := range grid.Row(y) {
			idx := int(c)
			if idx > last {
				idx = last
			}
			col := colors[idx]
			base := x * 4
			out[base+0] = col.R
			out[base+1] = col.G
			out[base+2] = col.B
			out[base+3] = col.A
		}
	}
}

// Image renders grid with p into a new image.
func Image(grid *core.ByteGrid, p *palette.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, grid.W, grid.H))
	FillRGBA(img.Pix, grid, Colors(p))
	return img
}
