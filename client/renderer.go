package client

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"grannyarena/game"
)

var (
	colorSky        = color.RGBA{0x10, 0x14, 0x20, 0xff}
	colorGrid       = color.RGBA{0x30, 0x38, 0x48, 0xff}
	colorWall       = color.RGBA{0x70, 0x70, 0x90, 0xff}
	colorPlayer     = color.RGBA{0x00, 0xff, 0x00, 0xff} // Green
	colorTarget     = color.RGBA{0xff, 0x40, 0x00, 0xff} // Orange
	colorProjectile = color.RGBA{0xff, 0xff, 0x00, 0xff} // Yellow
	colorBounds     = color.RGBA{0xff, 0x00, 0xff, 0xff}
)

const (
	gridStep         = 1.0
	wallHeight       = 1.0
	projectileRadius = 0.05

	// cullMargin keeps primitives slightly off screen so lines don't pop
	cullMargin = 100.0
)

// Renderer draws the arena, its entities and the HUD
type Renderer struct {
	list   displayList
	shader *flatShader
	player *figureModel
	target *figureModel
	text   *textSurface
	debug  *DebugState
}

// NewRenderer creates a renderer
func NewRenderer(debug *DebugState) *Renderer {
	r := &Renderer{debug: debug}
	r.shader = newFlatShader(&r.list)
	r.player = newFigureModel(r.shader, colorPlayer)
	r.target = newFigureModel(r.shader, colorTarget)
	r.text = newTextSurface()
	return r
}

// Render builds the frame's display list and rasterises it with the HUD
func (r *Renderer) Render(screen *ebiten.Image, g *game.Game) {
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	screen.Fill(colorSky)
	r.buildScene(g, w, h)
	r.flush(screen, w, h)

	if r.debug != nil && r.debug.ShowBounds {
		r.debug.draw(screen, g)
	}

	r.drawHUD(screen, g.HUD(w, h))
}

// buildScene fills the display list for the current game state
func (r *Renderer) buildScene(g *game.Game, w, h float64) {
	r.list.reset()
	r.shader.begin(w, h)

	aspect := 1.0
	if h > 0 {
		aspect = w / h
	}
	r.shader.SetMat4("projection", g.Camera().ProjectionMatrix(aspect))
	r.shader.SetMat4("view", g.Camera().ViewMatrix())

	r.buildArena(g.Config().ArenaLimit)

	world := r.shader.worldMVP()
	for _, p := range g.World().Projectiles {
		r.shader.sphere(world, p.Position, projectileRadius, colorProjectile)
	}
	if r.debug != nil && r.debug.ShowBounds {
		for _, t := range g.World().Targets {
			lo, hi := t.WorldBounds()
			r.buildBox(lo, hi, colorBounds)
		}
	}

	g.DrawScene(r.shader, r.player, r.target, aspect)
}

func (r *Renderer) buildArena(limit float64) {
	mvp := r.shader.worldMVP()
	// Split lines into cells so a line crossing the near plane only loses a piece
	for a := -limit; a <= limit; a += gridStep {
		for b := -limit; b < limit; b += gridStep {
			r.shader.line(mvp, game.Vec3{X: a, Z: b}, game.Vec3{X: a, Z: b + gridStep}, 1, colorGrid)
			r.shader.line(mvp, game.Vec3{X: b, Z: a}, game.Vec3{X: b + gridStep, Z: a}, 1, colorGrid)
		}
	}
	corners := []game.Vec3{{X: -limit, Z: -limit}, {X: limit, Z: -limit}, {X: limit, Z: limit}, {X: -limit, Z: limit}}
	for i, c := range corners {
		next := corners[(i+1)%len(corners)]
		top := game.Vec3{X: c.X, Y: wallHeight, Z: c.Z}
		r.shader.line(mvp, c, top, 2, colorWall)
		for t := 0.0; t < 2*limit; t += gridStep {
			d := next.Sub(c).Scale(1 / (2 * limit))
			a := top.Add(d.Scale(t))
			r.shader.line(mvp, a, a.Add(d.Scale(gridStep)), 2, colorWall)
		}
	}
}

// buildBox adds the 12 edges of a world-space AABB
func (r *Renderer) buildBox(lo, hi game.Vec3, clr color.RGBA) {
	mvp := r.shader.worldMVP()
	c := func(x, y, z bool) game.Vec3 {
		v := lo
		if x {
			v.X = hi.X
		}
		if y {
			v.Y = hi.Y
		}
		if z {
			v.Z = hi.Z
		}
		return v
	}
	for _, y := range []bool{false, true} {
		r.shader.line(mvp, c(false, y, false), c(true, y, false), 1, clr)
		r.shader.line(mvp, c(true, y, false), c(true, y, true), 1, clr)
		r.shader.line(mvp, c(true, y, true), c(false, y, true), 1, clr)
		r.shader.line(mvp, c(false, y, true), c(false, y, false), 1, clr)
	}
	for _, x := range []bool{false, true} {
		for _, z := range []bool{false, true} {
			r.shader.line(mvp, c(x, false, z), c(x, true, z), 1, clr)
		}
	}
}

func offScreen(x, y, w, h float32) bool {
	return x < -cullMargin || x > w+cullMargin || y < -cullMargin || y > h+cullMargin
}

// flush rasterises the display list
func (r *Renderer) flush(screen *ebiten.Image, width, height float64) {
	w, h := float32(width), float32(height)
	for _, s := range r.list.Segments {
		if offScreen(s.X0, s.Y0, w, h) && offScreen(s.X1, s.Y1, w, h) {
			continue
		}
		vector.StrokeLine(screen, s.X0, s.Y0, s.X1, s.Y1, s.Width, s.Color, true)
	}
	for _, d := range r.list.Dots {
		if offScreen(d.X, d.Y, w, h) {
			continue
		}
		vector.DrawFilledCircle(screen, d.X, d.Y, d.R, d.Color, true)
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, f game.HUDFrame) {
	for _, s := range f.Shapes {
		switch s.Kind {
		case game.ShapeArrow:
			drawArrow(screen, s)
		default:
			vector.DrawFilledRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), s.Color, false)
		}
	}
	r.text.dst = screen
	game.DrawHUDText(r.text, f)
}

// drawArrow fills a right-pointing triangle one scanline at a time
func drawArrow(screen *ebiten.Image, s game.HUDShape) {
	rows := int(s.H)
	if rows <= 0 {
		return
	}
	for i := 0; i <= rows; i++ {
		t := float64(i) / float64(rows)
		span := s.W * (1 - math.Abs(2*t-1))
		y := float32(s.Y + float64(i))
		vector.StrokeLine(screen, float32(s.X), y, float32(s.X+span), y, 1, s.Color, false)
	}
}
