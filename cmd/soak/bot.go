package main

import (
	"math"
	"math/rand"
	"time"

	"grannyarena/game"
)

// maxTurnPerFrame caps how far the bot swings the camera in one frame, in degrees
const maxTurnPerFrame = 20.0

// bot is a scripted game.InputSource. It starts a game from the menu,
// strafes around, turns towards the nearest target and fires, and every so
// often pauses, resumes, or returns to the menu.
type bot struct {
	rng  *rand.Rand
	game *game.Game
	cfg  game.Config

	now  time.Duration
	down map[game.Action]bool
	dx   float64

	playTime   time.Duration
	nextFire   time.Duration
	nextStrafe time.Duration
	strafe     game.Action
	pausedAt   time.Duration
	wantMenu   bool

	pauseEvery time.Duration
	menuEvery  time.Duration
	lastPause  time.Duration
	lastMenu   time.Duration
}

func newBot(rng *rand.Rand, cfg game.Config) *bot {
	return &bot{
		rng:        rng,
		cfg:        cfg,
		down:       make(map[game.Action]bool),
		strafe:     game.ActionLeft,
		pauseEvery: 20 * time.Second,
		menuEvery:  90 * time.Second,
	}
}

func (b *bot) IsDown(a game.Action) bool {
	return b.down[a]
}

func (b *bot) PointerDelta() (float64, float64) {
	dx := b.dx
	b.dx = 0
	return dx, 0
}

func (b *bot) Now() time.Duration { return b.now }

// tap presses a on even frames so that consecutive taps produce edges
func (b *bot) tap(a game.Action, frame int) {
	b.down[a] = frame%2 == 0
}

// plan sets the input for the frame about to run
func (b *bot) plan(frame int, dt time.Duration) {
	b.now += dt
	clear(b.down)

	switch b.game.Mode() {
	case game.ModeMenu:
		b.planMenu(frame)
	case game.ModePaused:
		b.planPaused(frame)
	case game.ModePlaying:
		b.playTime += dt
		b.planPlaying()
	}
}

func (b *bot) planMenu(frame int) {
	if b.game.MenuSelection() != game.MenuStart {
		b.down[game.ActionUp] = true
		return
	}
	b.tap(game.ActionConfirm, frame)
}

func (b *bot) planPaused(frame int) {
	if b.now-b.pausedAt < 500*time.Millisecond {
		return
	}
	want := game.PauseResume
	if b.wantMenu {
		want = game.PauseToMenu
	}
	switch {
	case b.game.PauseSelection() < want:
		b.down[game.ActionDown] = true
	case b.game.PauseSelection() > want:
		b.down[game.ActionUp] = true
	default:
		b.tap(game.ActionConfirm, frame)
		if b.down[game.ActionConfirm] {
			b.wantMenu = false
		}
	}
}

func (b *bot) planPlaying() {
	if b.playTime-b.lastMenu >= b.menuEvery {
		b.lastMenu, b.lastPause = b.playTime, b.playTime
		b.wantMenu = true
		b.pause()
		return
	}
	if b.playTime-b.lastPause >= b.pauseEvery {
		b.lastPause = b.playTime
		b.pause()
		return
	}

	p := b.game.Player()
	if p.Dead {
		return
	}

	if b.now >= b.nextStrafe {
		b.nextStrafe = b.now + time.Duration(500+b.rng.Intn(1500))*time.Millisecond
		b.strafe = []game.Action{game.ActionLeft, game.ActionRight, game.ActionBack}[b.rng.Intn(3)]
	}
	b.down[b.strafe] = true
	b.down[game.ActionForward] = b.rng.Intn(4) == 0

	if t := nearest(p.Position, b.game.World().Targets); t != nil {
		muzzle := p.Position.Add(b.cfg.BulletOffset)
		vel := targetVelocity(t, p.Position, b.cfg.TargetMinSeparation)
		b.aim(p, leadTarget(muzzle, t.Position, vel, b.cfg.BulletSpeed))
		if b.now >= b.nextFire {
			b.down[game.ActionFire] = true
			b.nextFire = b.now + 200*time.Millisecond
		}
	}
}

func (b *bot) pause() {
	b.pausedAt = b.now
	b.down[game.ActionPause] = true
}

// aim turns the camera so that its forward axis points at dest
func (b *bot) aim(p *game.Player, dest game.Vec3) {
	d := dest.Sub(p.Position)
	if d.X*d.X+d.Z*d.Z < 1e-6 {
		return
	}
	// forward is (-sin yaw, 0, -cos yaw)
	want := math.Atan2(-d.X, -d.Z) * 180 / math.Pi
	next := rotateTowards(p.CameraYaw, want, maxTurnPerFrame)
	// Look subtracts dx*sensitivity from the yaw
	b.dx = -(next - p.CameraYaw) / b.cfg.MouseSensitivity
}

func nearest(from game.Vec3, targets []*game.Target) *game.Target {
	var best *game.Target
	bestDist := math.Inf(1)
	for _, t := range targets {
		if d := game.Distance(from, t.Position); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}
