//go:build ebiten

package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"turmites/internal/ui"
)

// Game adapts a Viewer to the ebiten.Game interface. Patterns are shown
// finished; nothing is animated.
type Game struct {
	viewer *Viewer
	hud    *ui.HUD
	scale  int

	img   *ebiten.Image
	dirty bool
}

// New constructs a Game showing the viewer's current pattern.
func New(v *Viewer, scale, hudWidth int) *Game {
	if scale < 1 {
		scale = 1
	}
	return &Game{
		viewer: v,
		hud:    ui.NewHUD("Turmite", hudWidth),
		scale:  scale,
		dirty:  true,
	}
}

// Update handles key presses.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		err = g.viewer.Next()
		g.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		err = g.viewer.Prev()
		g.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		err = g.viewer.Reroll()
		g.dirty = true
	}
	if err != nil {
		logger.Warningf("%v", err)
	}
	if g.dirty {
		g.refresh()
	}
	return nil
}

func (g *Game) refresh() {
	g.dirty = false
	p := g.viewer.Pattern()
	g.hud.Update(g.viewer.Parameters())
	if p.Image == nil {
		g.img = nil
		return
	}
	if g.img != nil && g.img.Bounds() == p.Image.Bounds() {
		g.img.WritePixels(p.Image.Pix)
		return
	}
	g.img = ebiten.NewImageFromImage(p.Image)
	ebiten.SetWindowSize(g.Layout(0, 0))
}

// Draw renders the pattern and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(g.scale), float64(g.scale))
		screen.DrawImage(g.img, op)
	}
	size := g.viewer.Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.viewer.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
