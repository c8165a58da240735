package client

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/math/f32"

	"grannyarena/game"
)

// minClipW drops vertices at or behind the near plane
const minClipW = 1e-3

// segment is a projected line in screen pixels
type segment struct {
	X0, Y0, X1, Y1 float32
	Width          float32
	Color          color.RGBA
}

// dot is a projected filled circle in screen pixels
type dot struct {
	X, Y, R float32
	Color   color.RGBA
}

// displayList collects one frame's projected primitives before they are
// rasterised onto an ebiten image
type displayList struct {
	Segments []segment
	Dots     []dot
}

func (d *displayList) reset() {
	d.Segments = d.Segments[:0]
	d.Dots = d.Dots[:0]
}

// flatShader is a software stand-in for a skinning shader. It keeps the
// uniforms the scene uploads and projects model-space geometry to the screen.
type flatShader struct {
	width, height float64

	projection f32.Mat4
	view       f32.Mat4
	model      f32.Mat4
	bones      []f32.Mat4
	viewPos    game.Vec3
	floats     map[string]float64

	list *displayList
}

func newFlatShader(list *displayList) *flatShader {
	return &flatShader{
		projection: game.Identity(),
		view:       game.Identity(),
		model:      game.Identity(),
		floats:     make(map[string]float64),
		list:       list,
	}
}

// begin sets the viewport for a new frame and forgets previous bones
func (s *flatShader) begin(width, height float64) {
	s.width, s.height = width, height
	s.model = game.Identity()
	s.bones = s.bones[:0]
}

func (s *flatShader) SetMat4(name string, m f32.Mat4) {
	switch name {
	case "projection":
		s.projection = m
	case "view":
		s.view = m
	case "model":
		s.model = m
	default:
		if i, ok := boneIndex(name); ok {
			for len(s.bones) <= i {
				s.bones = append(s.bones, game.Identity())
			}
			s.bones[i] = m
		}
	}
}

func (s *flatShader) SetVec3(name string, v game.Vec3) {
	if name == "viewPos" {
		s.viewPos = v
	}
}

func (s *flatShader) SetFloat(name string, f float64) {
	s.floats[name] = f
}

// boneIndex parses "finalBonesMatrices[i]"
func boneIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "finalBonesMatrices[")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, "]")
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// bone returns bone i, or identity if the scene did not upload it
func (s *flatShader) bone(i int) f32.Mat4 {
	if i < 0 || i >= len(s.bones) {
		return game.Identity()
	}
	return s.bones[i]
}

// projectWith maps a point through mvp to screen pixels
func (s *flatShader) projectWith(mvp f32.Mat4, p game.Vec3) (x, y, w float64, ok bool) {
	c, w := game.TransformPoint(mvp, p)
	if w <= minClipW {
		return 0, 0, w, false
	}
	nx, ny := c.X/w, c.Y/w
	x = (nx + 1) / 2 * s.width
	y = (1 - ny) / 2 * s.height
	return x, y, w, true
}

func (s *flatShader) worldMVP() f32.Mat4 {
	return game.Mul4(s.projection, s.view)
}

func (s *flatShader) modelMVP() f32.Mat4 {
	return game.Mul4(s.projection, game.Mul4(s.view, s.model))
}

// line projects a segment through mvp; it is dropped if either end is
// behind the camera
func (s *flatShader) line(mvp f32.Mat4, a, b game.Vec3, width float32, clr color.RGBA) {
	x0, y0, _, ok0 := s.projectWith(mvp, a)
	x1, y1, _, ok1 := s.projectWith(mvp, b)
	if !ok0 || !ok1 {
		return
	}
	s.list.Segments = append(s.list.Segments, segment{
		X0: float32(x0), Y0: float32(y0),
		X1: float32(x1), Y1: float32(y1),
		Width: width, Color: clr,
	})
}

// sphere projects a world-space ball of the given radius as a dot
func (s *flatShader) sphere(mvp f32.Mat4, p game.Vec3, radius float64, clr color.RGBA) {
	x, y, w, ok := s.projectWith(mvp, p)
	if !ok {
		return
	}
	// projection[5] is the focal length in NDC units
	r := radius * float64(s.projection[5]) / w * s.height / 2
	s.list.Dots = append(s.list.Dots, dot{X: float32(x), Y: float32(y), R: float32(max(r, 1)), Color: clr})
}
