package game

import "math"

// Clip names understood by the animation collaborator
const (
	ClipIdle            = "idle"
	ClipRunForward      = "run_forward"
	ClipRunBack         = "run_back"
	ClipRunLeft         = "run_left"
	ClipRunRight        = "run_right"
	ClipRunForwardLeft  = "run_forward_left"
	ClipRunForwardRight = "run_forward_right"
	ClipRunBackLeft     = "run_back_left"
	ClipRunBackRight    = "run_back_right"
	ClipTargetRun       = "run"
)

// MoveDir is the player's locomotion direction relative to the camera
type MoveDir int

const (
	MoveIdle MoveDir = iota
	MoveForward
	MoveBack
	MoveLeft
	MoveRight
	MoveForwardLeft
	MoveForwardRight
	MoveBackLeft
	MoveBackRight
)

var moveClips = map[MoveDir]string{
	MoveIdle:         ClipIdle,
	MoveForward:      ClipRunForward,
	MoveBack:         ClipRunBack,
	MoveLeft:         ClipRunLeft,
	MoveRight:        ClipRunRight,
	MoveForwardLeft:  ClipRunForwardLeft,
	MoveForwardRight: ClipRunForwardRight,
	MoveBackLeft:     ClipRunBackLeft,
	MoveBackRight:    ClipRunBackRight,
}

// Clip returns the animation clip for the direction
func (d MoveDir) Clip() string {
	return moveClips[d]
}

// PlayerClips lists every clip the player model must provide
func PlayerClips() []string {
	clips := make([]string, 0, len(moveClips))
	for d := MoveIdle; d <= MoveBackRight; d++ {
		clips = append(clips, moveClips[d])
	}
	return clips
}

type moveKeys struct {
	forward, back, left, right bool
}

var moveKeyDirs = map[moveKeys]MoveDir{
	{forward: true}:              MoveForward,
	{back: true}:                 MoveBack,
	{left: true}:                 MoveLeft,
	{right: true}:                MoveRight,
	{forward: true, left: true}:  MoveForwardLeft,
	{forward: true, right: true}: MoveForwardRight,
	{back: true, left: true}:     MoveBackLeft,
	{back: true, right: true}:    MoveBackRight,
}

// resolveMoveDir maps a key combination to a direction. Combinations that
// still move but match no entry fall back to forward.
func resolveMoveDir(k moveKeys, moving bool) MoveDir {
	if !moving {
		return MoveIdle
	}
	if d, ok := moveKeyDirs[k]; ok {
		return d
	}
	return MoveForward
}

// Player is the avatar state
type Player struct {
	// Position in world coordinates
	Position Vec3

	// Yaw is the model facing in degrees
	Yaw float64

	// CameraYaw and CameraPitch are the orbit angles in degrees
	CameraYaw   float64
	CameraPitch float64

	// Health is in [0, MaxHealth]
	Health float64

	// Dead holds exactly when Health is zero
	Dead bool

	// RespawnTimer accumulates seconds spent dead
	RespawnTimer float64

	dir  MoveDir
	anim AnimationHandle
}

// NewPlayer creates a player at the spawn point with full health
func NewPlayer(config Config, anim AnimationHandle) *Player {
	p := &Player{
		Position: config.SpawnPoint,
		Health:   config.MaxHealth,
		dir:      MoveIdle,
		anim:     anim,
	}
	if anim != nil {
		anim.Play(ClipIdle)
	}
	return p
}

// Dir returns the current locomotion direction
func (p *Player) Dir() MoveDir {
	return p.dir
}

// Anim returns the player's playback handle; nil after release
func (p *Player) Anim() AnimationHandle {
	return p.anim
}

// Move applies one frame of WASD locomotion relative to the camera yaw and
// switches the animation clip when the direction changes.
func (p *Player) Move(k moveKeys, config Config, deltaTime float64) {
	yaw := radians(p.CameraYaw)
	forward := Vec3{-math.Sin(yaw), 0, -math.Cos(yaw)}
	right := Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}

	var dir Vec3
	if k.forward {
		dir = dir.Add(forward)
	}
	if k.back {
		dir = dir.Sub(forward)
	}
	if k.left {
		dir = dir.Sub(right)
	}
	if k.right {
		dir = dir.Add(right)
	}

	moving := dir.Len() > 0.01
	if moving {
		p.Position = p.Position.Add(dir.Normalize().Scale(config.PlayerSpeed * deltaTime))
	}
	p.Position.X = clamp(p.Position.X, -config.ArenaLimit, config.ArenaLimit)
	p.Position.Z = clamp(p.Position.Z, -config.ArenaLimit, config.ArenaLimit)

	p.setDir(resolveMoveDir(k, moving))
}

func (p *Player) setDir(d MoveDir) {
	if d == p.dir {
		return
	}
	p.dir = d
	if p.anim != nil {
		p.anim.Play(d.Clip())
	}
}

// reset restores spawn state. Camera angles are kept.
func (p *Player) reset(config Config) {
	p.Position = config.SpawnPoint
	p.Health = config.MaxHealth
	p.Dead = false
	p.RespawnTimer = 0
	p.setDir(MoveIdle)
}

func (p *Player) release() {
	if p.anim == nil {
		return
	}
	p.anim.Release()
	p.anim = nil
}
