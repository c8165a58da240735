package client

import (
	"image/color"

	"golang.org/x/image/math/f32"

	"grannyarena/game"
)

// limb is one stick of a figure. It rotates about its start by its bone
// and inherits the rotation of its parent.
type limb struct {
	name     string
	from, to game.Vec3
	bone     int
	parent   int
}

// stickSkeleton is a 1.5 unit tall humanoid facing +Z, feet at the origin
var stickSkeleton = []limb{
	{name: "spine", from: game.Vec3{Y: 0.8}, to: game.Vec3{Y: 1.3}, bone: 0, parent: -1},
	{name: "head", from: game.Vec3{Y: 1.3}, to: game.Vec3{Y: 1.5}, bone: 1, parent: 0},
	{name: "left arm", from: game.Vec3{Y: 1.3}, to: game.Vec3{X: -0.25, Y: 1.0}, bone: 2, parent: 0},
	{name: "left forearm", from: game.Vec3{X: -0.25, Y: 1.0}, to: game.Vec3{X: -0.3, Y: 0.7}, bone: 3, parent: 2},
	{name: "right arm", from: game.Vec3{Y: 1.3}, to: game.Vec3{X: 0.25, Y: 1.0}, bone: 4, parent: 0},
	{name: "right forearm", from: game.Vec3{X: 0.25, Y: 1.0}, to: game.Vec3{X: 0.3, Y: 0.7}, bone: 5, parent: 4},
	{name: "left thigh", from: game.Vec3{Y: 0.8}, to: game.Vec3{X: -0.12, Y: 0.4}, bone: 6, parent: -1},
	{name: "left shin", from: game.Vec3{X: -0.12, Y: 0.4}, to: game.Vec3{X: -0.12}, bone: 7, parent: 6},
	{name: "right thigh", from: game.Vec3{Y: 0.8}, to: game.Vec3{X: 0.12, Y: 0.4}, bone: 8, parent: -1},
	{name: "right shin", from: game.Vec3{X: 0.12, Y: 0.4}, to: game.Vec3{X: 0.12}, bone: 9, parent: 8},
	{name: "nose", from: game.Vec3{Y: 1.4}, to: game.Vec3{Y: 1.4, Z: 0.2}, bone: -1, parent: 1},
}

// figureModel implements game.SkinnedModel as a line-drawn stick figure
type figureModel struct {
	shader *flatShader
	color  color.RGBA
	width  float32
}

func newFigureModel(shader *flatShader, clr color.RGBA) *figureModel {
	return &figureModel{shader: shader, color: clr, width: 2}
}

// pose returns the posed endpoints of every limb in model space
func pose(bone func(int) f32.Mat4) [][2]game.Vec3 {
	out := make([][2]game.Vec3, len(stickSkeleton))
	rot := make([]f32.Mat4, len(stickSkeleton))
	for i, l := range stickSkeleton {
		r := game.Identity()
		if l.bone >= 0 {
			r = bone(l.bone)
		}
		start := l.from
		if l.parent >= 0 {
			r = game.Mul4(rot[l.parent], r)
			start = out[l.parent][1].Add(rotate(rot[l.parent], l.from.Sub(stickSkeleton[l.parent].to)))
		}
		rot[i] = r
		out[i] = [2]game.Vec3{start, start.Add(rotate(r, l.to.Sub(l.from)))}
	}
	return out
}

// rotate applies the upper 3x3 of m to v
func rotate(m f32.Mat4, v game.Vec3) game.Vec3 {
	p, _ := game.TransformPoint(m, v)
	o, _ := game.TransformPoint(m, game.Vec3{})
	return p.Sub(o)
}

func (f *figureModel) Draw(sh game.ShaderContext) {
	s, ok := sh.(*flatShader)
	if !ok {
		s = f.shader
	}
	mvp := s.modelMVP()
	for _, seg := range pose(s.bone) {
		s.line(mvp, seg[0], seg[1], f.width, f.color)
	}
}

var (
	_ game.ShaderContext = (*flatShader)(nil)
	_ game.SkinnedModel  = (*figureModel)(nil)
)
