package game

import (
	"math"

	"golang.org/x/image/math/f32"
)

const (
	nearPlane = 0.1
	farPlane  = 100.0
)

// CameraRig is a third-person orbit camera following the player.
// Its basis is recomputed from scratch every frame from the player's
// camera yaw/pitch; it holds no integration state of its own.
type CameraRig struct {
	config Config

	Position Vec3
	Target   Vec3
	Front    Vec3
	Right    Vec3
	Up       Vec3
}

// NewCameraRig creates a camera rig
func NewCameraRig(config Config) *CameraRig {
	return &CameraRig{
		config: config,
		Front:  Vec3{0, 0, -1},
		Right:  Vec3{1, 0, 0},
		Up:     worldUp,
	}
}

// Look applies a pointer delta to the player's camera angles.
// Yaw is unbounded; pitch is clamped to ±MaxPitch.
func (c *CameraRig) Look(p *Player, dx, dy float64) {
	dx *= c.config.MouseSensitivity
	dy *= c.config.MouseSensitivity

	p.CameraYaw -= dx
	p.CameraPitch = clamp(p.CameraPitch+dy, -c.config.MaxPitch, c.config.MaxPitch)
}

// Update recomputes the camera from the player's position and angles.
// The player model faces along the camera yaw.
func (c *CameraRig) Update(p *Player) {
	p.Yaw = p.CameraYaw

	yaw := radians(p.CameraYaw)
	pitch := radians(p.CameraPitch)

	offset := Vec3{
		X: c.config.CameraDistance * math.Sin(yaw) * math.Cos(pitch),
		Y: c.config.CameraHeight + c.config.CameraDistance*math.Sin(pitch),
		Z: c.config.CameraDistance * math.Cos(yaw) * math.Cos(pitch),
	}

	c.Position = p.Position.Add(offset)
	c.Target = p.Position.Add(Vec3{0, c.config.CameraLookHeight, 0})
	c.Front = c.Target.Sub(c.Position).Normalize()
	c.Right = c.Front.Cross(worldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// ViewMatrix returns the world-to-camera transform
func (c *CameraRig) ViewMatrix() f32.Mat4 {
	s, u, f := c.Right, c.Up, c.Front
	e := c.Position
	return f32.Mat4{
		float32(s.X), float32(s.Y), float32(s.Z), float32(-s.Dot(e)),
		float32(u.X), float32(u.Y), float32(u.Z), float32(-u.Dot(e)),
		float32(-f.X), float32(-f.Y), float32(-f.Z), float32(f.Dot(e)),
		0, 0, 0, 1,
	}
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio
func (c *CameraRig) ProjectionMatrix(aspect float64) f32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return Perspective(c.config.FieldOfView, aspect, nearPlane, farPlane)
}
