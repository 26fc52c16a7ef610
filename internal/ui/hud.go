//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"turmites/internal/core"
)

var (
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	headerColor = color.RGBA{R: 150, G: 170, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
)

// HUD renders the pattern details panel to the right of the pattern.
type HUD struct {
	title      string
	width      int
	panel      *ebiten.Image
	lastHeight int
	rows       []row
}

// NewHUD constructs a HUD with the given title and panel width.
func NewHUD(title string, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{title: title, width: width}
}

// Width returns the panel width in screen pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update replaces the displayed details.
func (h *HUD) Update(snap core.ParameterSnapshot) {
	if h == nil {
		return
	}
	h.rows = layoutRows(snap)
}

// Draw paints the panel at offsetX, spanning height pixels.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	for _, r := range h.rows {
		switch {
		case r.header:
			text.Draw(h.panel, r.label, face, panelPadding, r.y, headerColor)
		default:
			text.Draw(h.panel, r.label, face, panelPadding, r.y, labelColor)
			if r.value != "" {
				w := text.BoundString(face, r.value).Dx()
				text.Draw(h.panel, r.value, face, h.width-panelPadding-w, r.y, labelColor)
			}
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
