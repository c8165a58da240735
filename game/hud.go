package game

import (
	"fmt"
	"image/color"
)

// HUD layout is authored against an 800x600 reference screen with the
// origin at the bottom left and text positioned by baseline.
const (
	hudRefWidth  = 800.0
	hudRefHeight = 600.0

	// hudGlyphHeight is the reference cap height of scale-1 text
	hudGlyphHeight = 36.0
)

var (
	colorWhite   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorYellow  = color.RGBA{0xff, 0xff, 0x00, 0xff}
	colorCyan    = color.RGBA{0x00, 0xff, 0xff, 0xff}
	colorRed     = color.RGBA{0xff, 0x00, 0x00, 0xff}
	colorGreen   = color.RGBA{0x00, 0xff, 0x00, 0xff}
	colorBlack   = color.RGBA{0x00, 0x00, 0x00, 0xff}
	colorBarBack = color.RGBA{0x33, 0x33, 0x33, 0xff}
	colorShade   = color.RGBA{0x00, 0x00, 0x00, 0x80}
)

// ShapeKind selects how a HUD shape is filled
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	// ShapeArrow is a triangle pointing right, inscribed in the shape's box
	ShapeArrow
)

// HUDShape is a screen-space box in pixels, origin top-left
type HUDShape struct {
	Kind       ShapeKind
	X, Y, W, H float64
	Color      color.RGBA
}

// HUDText is one line of text; X, Y is its top-left corner in pixels.
// Scale is relative to the reference glyph height.
type HUDText struct {
	Text  string
	X, Y  float64
	Scale float64
	Color color.RGBA
}

// HUDFrame is everything drawn over the scene for one frame, back to front
type HUDFrame struct {
	Shapes []HUDShape
	Texts  []HUDText
}

type hudLayout struct {
	sx, sy float64
	frame  HUDFrame
}

func newHUDLayout(width, height float64) *hudLayout {
	return &hudLayout{sx: width / hudRefWidth, sy: height / hudRefHeight}
}

// box adds a shape given in reference coordinates (bottom-left corner)
func (l *hudLayout) box(kind ShapeKind, x, y, w, h float64, c color.RGBA) {
	l.frame.Shapes = append(l.frame.Shapes, HUDShape{
		Kind:  kind,
		X:     x * l.sx,
		Y:     (hudRefHeight - y - h) * l.sy,
		W:     w * l.sx,
		H:     h * l.sy,
		Color: c,
	})
}

// text adds a line given by its reference baseline position
func (l *hudLayout) text(s string, x, y, scale float64, c color.RGBA) {
	l.frame.Texts = append(l.frame.Texts, HUDText{
		Text:  s,
		X:     x * l.sx,
		Y:     (hudRefHeight - y - hudGlyphHeight*scale) * l.sy,
		Scale: scale * l.sy,
		Color: c,
	})
}

func selectionColor(selected bool) color.RGBA {
	if selected {
		return colorCyan
	}
	return colorWhite
}

// HealthBarColor returns the fill colour for a health fraction
func HealthBarColor(frac float64) color.RGBA {
	switch {
	case frac > 0.6:
		return colorGreen
	case frac > 0.3:
		return colorYellow
	default:
		return colorRed
	}
}

// HUD lays out the overlay for the current mode on a width x height screen
func (g *Game) HUD(width, height float64) HUDFrame {
	l := newHUDLayout(width, height)
	switch g.mode {
	case ModeMenu:
		g.layoutMenu(l)
	case ModePaused:
		g.layoutPause(l)
	case ModePlaying:
		g.layoutPlaying(l)
	}
	return l.frame
}

func (g *Game) layoutMenu(l *hudLayout) {
	const bx, startY, quitY = 300.0, 350.0, 230.0
	l.box(ShapeRect, bx, startY, 250, 80, colorBlack)
	l.box(ShapeRect, bx, quitY, 250, 80, colorBlack)

	arrowY := startY
	if g.menu.index == MenuQuit {
		arrowY = quitY
	}
	l.box(ShapeArrow, bx-55, arrowY+15, 30, 30, colorYellow)

	l.text("START GAME", 330, 380, 1.0, selectionColor(g.menu.index == MenuStart))
	l.text("QUIT", 350, 260, 1.0, selectionColor(g.menu.index == MenuQuit))
}

func (g *Game) layoutPause(l *hudLayout) {
	const bx, resumeY, menuY = 275.0, 350.0, 230.0
	l.box(ShapeRect, 0, 0, hudRefWidth, hudRefHeight, colorShade)
	l.box(ShapeRect, bx, resumeY, 250, 80, colorBlack)
	l.box(ShapeRect, bx, menuY, 250, 80, colorBlack)

	arrowY := resumeY
	if g.pause.index == PauseToMenu {
		arrowY = menuY
	}
	l.box(ShapeArrow, bx-55, arrowY+15, 30, 30, colorYellow)

	l.text("PAUSE", 310, 480, 1.5, colorYellow)
	l.text("CONTINUE", 320, 380, 1.0, selectionColor(g.pause.index == PauseResume))
	l.text("MAIN MENU", 290, 260, 1.0, selectionColor(g.pause.index == PauseToMenu))
}

func (g *Game) layoutPlaying(l *hudLayout) {
	const barX, barW, barH = 20.0, 200.0, 20.0
	barY := hudRefHeight - 40

	l.box(ShapeRect, barX, barY, barW, barH, colorBarBack)
	frac := g.player.Health / g.config.MaxHealth
	if fill := barW * frac; fill > 0 {
		l.box(ShapeRect, barX, barY+2, fill, barH-4, HealthBarColor(frac))
	}

	l.text(fmt.Sprintf("Score: %d", g.score.Current), hudRefWidth-200, hudRefHeight-40, 0.8, colorWhite)
	l.text(fmt.Sprintf("High Score: %d", g.score.High), hudRefWidth-250, hudRefHeight-75, 0.6, colorYellow)

	if g.player.Dead {
		secs := int(g.health.RespawnRemaining()) + 1
		l.text("YOU DIED!", 250, 350, 1.8, colorRed)
		l.text(fmt.Sprintf("Respawning in %d...", secs), 200, 280, 1.0, colorWhite)
		l.text(fmt.Sprintf("Final Score: %d", g.score.Current), 250, 220, 0.9, colorYellow)
	}
}

// DrawHUDText draws every text line of f onto ts
func DrawHUDText(ts TextSurface, f HUDFrame) {
	for _, t := range f.Texts {
		ts.DrawText(t.Text, t.X, t.Y, t.Scale, t.Color)
	}
}
