package client

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// hudGlyphPixels is the height HUD text scale 1 is authored for
const hudGlyphPixels = 36.0

// textSurface implements game.TextSurface with a bitmap face scaled up to
// the HUD's reference glyph height
type textSurface struct {
	dst  *ebiten.Image
	face *text.GoXFace
}

func newTextSurface() *textSurface {
	return &textSurface{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (t *textSurface) DrawText(s string, x, y, scale float64, clr color.Color) {
	if t.dst == nil {
		return
	}
	k := scale * hudGlyphPixels / float64(basicfont.Face7x13.Height)
	op := &text.DrawOptions{}
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(t.dst, s, t.face, op)
}
