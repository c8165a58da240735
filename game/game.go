package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// ErrQuit is returned by Update once the player chooses to quit
var ErrQuit = errors.New("quit requested")

// Mode is the top-level game state
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModePaused
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Menu entries, top to bottom
const (
	MenuStart = 0
	MenuQuit  = 1

	PauseResume = 0
	PauseToMenu = 1
)

// Deps are the collaborators a Game needs
type Deps struct {
	// Input is polled once per frame (required)
	Input InputSource

	// TargetAnims creates one handle per spawned target (required)
	TargetAnims AnimationSource

	// PlayerAnims creates the player's handle; nil runs without one
	PlayerAnims AnimationSource

	// Audio plays cues; nil is silent
	Audio AudioSink

	// Metrics may be nil
	Metrics *Metrics

	Logger zerolog.Logger

	// Rand drives spawn placement; nil seeds from the clock
	Rand *rand.Rand
}

// menuCursor is a two-entry selection with debounced navigation
type menuCursor struct {
	index   int
	lastNav time.Duration
}

func (m *menuCursor) reset(debounce time.Duration) {
	m.index = 0
	m.lastNav = -debounce
}

// Game is the arena state machine. It owns the player, the world and every
// animation handle handed out to them.
type Game struct {
	config  Config
	input   InputSource
	audio   AudioSink
	metrics *Metrics
	logger  zerolog.Logger

	edges     Edges
	mode      Mode
	player    *Player
	world     *World
	collision *CollisionSystem
	health    *HealthSystem
	camera    *CameraRig
	score     Score

	menu  menuCursor
	pause menuCursor

	lastFrame time.Duration
	started   bool
	closed    bool
}

// NewGame creates a game in the menu with menu music playing
func NewGame(config Config, deps Deps) (*Game, error) {
	if deps.Input == nil {
		return nil, errors.New("game: input source is required")
	}
	if deps.TargetAnims == nil {
		return nil, errors.New("game: target animation source is required")
	}
	if deps.Audio == nil {
		deps.Audio = silentAudio{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var playerAnim AnimationHandle
	if deps.PlayerAnims != nil {
		playerAnim = deps.PlayerAnims.NewHandle()
	}

	g := &Game{
		config:  config,
		input:   deps.Input,
		audio:   deps.Audio,
		metrics: deps.Metrics,
		logger:  deps.Logger,
		mode:    ModeMenu,
		player:  NewPlayer(config, playerAnim),
		camera:  NewCameraRig(config),
	}
	g.world = NewWorld(config, deps.TargetAnims, deps.Rand, deps.Metrics, deps.Logger)
	g.collision = NewCollisionSystem(g.world, config)
	g.health = NewHealthSystem(config, g.player, g.world, &g.score, g.audio, deps.Metrics, deps.Logger)
	g.menu.reset(config.NavDebounce)
	g.pause.reset(config.NavDebounce)
	g.camera.Update(g.player)

	g.playMusic(CueMenuMusic)
	return g, nil
}

// Update runs one frame. It returns ErrQuit when the player quits from the
// menu or after Close.
func (g *Game) Update() error {
	if g.closed {
		return ErrQuit
	}

	now := g.input.Now()
	deltaTime := g.frameDelta(now)

	g.edges.Update(g.input)
	dx, dy := g.input.PointerDelta()
	g.camera.Look(g.player, dx, dy)

	if g.mode == ModePlaying && g.edges.Pressed(ActionPause) {
		g.setMode(ModePaused)
		g.logger.Info().Msg("game paused")
	}

	switch g.mode {
	case ModeMenu:
		return g.updateMenu(now)
	case ModePaused:
		g.updatePaused(now)
	case ModePlaying:
		g.updatePlaying(deltaTime, now)
	}
	return nil
}

// frameDelta returns the clamped seconds since the previous frame
func (g *Game) frameDelta(now time.Duration) float64 {
	if !g.started {
		g.started = true
		g.lastFrame = now
		return 0
	}
	deltaTime := (now - g.lastFrame).Seconds()
	g.lastFrame = now
	return clamp(deltaTime, 0, g.config.MaxFrameDelta)
}

// navigate moves the cursor on held up/down, at most once per debounce window
// for each direction
func (g *Game) navigate(m *menuCursor, now time.Duration) {
	if now-m.lastNav < g.config.NavDebounce {
		return
	}
	if g.edges.Held(ActionUp) {
		g.audio.Play(CueNavigate)
		m.index = max(m.index-1, 0)
		m.lastNav = now
	}
	if g.edges.Held(ActionDown) {
		g.audio.Play(CueNavigate)
		m.index = min(m.index+1, 1)
		m.lastNav = now
	}
}

func (g *Game) updateMenu(now time.Duration) error {
	g.navigate(&g.menu, now)
	if !g.edges.Pressed(ActionConfirm) {
		return nil
	}

	switch g.menu.index {
	case MenuStart:
		g.audio.Play(CueStart)
		g.playMusic(CueGameMusic)
		g.setMode(ModePlaying)
		g.logger.Info().Msg("game started")
	case MenuQuit:
		g.logger.Info().Msg("quit requested")
		return ErrQuit
	}
	return nil
}

func (g *Game) updatePaused(now time.Duration) {
	g.navigate(&g.pause, now)
	if !g.edges.Pressed(ActionConfirm) {
		return
	}

	switch g.pause.index {
	case PauseResume:
		g.setMode(ModePlaying)
		g.logger.Info().Msg("game resumed")
	case PauseToMenu:
		g.audio.Play(CueReturn)
		g.playMusic(CueMenuMusic)
		g.resetWorld()
		g.setMode(ModeMenu)
		g.logger.Info().Int("high_score", g.score.High).Msg("returned to menu")
	}
}

func (g *Game) updatePlaying(deltaTime float64, now time.Duration) {
	g.health.Update(deltaTime)
	if g.player.Dead {
		g.camera.Update(g.player)
		return
	}

	g.player.Move(moveKeys{
		forward: g.edges.Held(ActionForward),
		back:    g.edges.Held(ActionBack),
		left:    g.edges.Held(ActionLeft),
		right:   g.edges.Held(ActionRight),
	}, g.config, deltaTime)
	g.camera.Update(g.player)
	if a := g.player.Anim(); a != nil {
		a.Advance(deltaTime)
	}

	if g.edges.Pressed(ActionFire) {
		g.fire()
	}

	g.world.Update(deltaTime, g.player.Position)

	if g.collision.CheckProximity(g.player.Position, now) {
		g.health.ApplyDamage(g.config.EnemyDamage)
	}

	kills := g.collision.CheckProjectileHits()
	for i := 0; i < kills; i++ {
		g.audio.Play(CueHit)
		g.metrics.targetKilled()
		if g.score.Increment() {
			g.logger.Info().Int("high_score", g.score.High).Msg("new high score")
		}
	}
	if kills > 0 {
		g.logger.Info().Int("score", g.score.Current).Msg("target destroyed")
	}
}

// fire launches a projectile from the muzzle along the camera's forward vector
func (g *Game) fire() {
	g.world.FireProjectile(g.player.Position.Add(g.config.BulletOffset), g.camera.Front)
	g.audio.Play(CueGunshot)
	g.metrics.shotFired()
}

// resetWorld is the full reset performed when returning to the menu
func (g *Game) resetWorld() {
	g.world.ClearTargets()
	g.world.ClearProjectiles()
	g.world.resetSpawner()
	g.score.ResetCurrent()
	g.player.reset(g.config)
	g.collision.Reset()
	g.menu.reset(g.config.NavDebounce)
	g.pause.reset(g.config.NavDebounce)
}

func (g *Game) setMode(m Mode) {
	if m == g.mode {
		return
	}
	g.metrics.modeChanged(g.mode, m)
	g.mode = m
}

// playMusic switches the looping music track
func (g *Game) playMusic(c Cue) {
	switch c {
	case CueMenuMusic:
		g.audio.Stop(CueGameMusic)
	case CueGameMusic:
		g.audio.Stop(CueMenuMusic)
	}
	g.audio.Play(c)
}

// Close releases every animation handle and stops the music. It is safe to
// call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.world.ClearTargets()
	g.world.ClearProjectiles()
	g.player.release()
	g.audio.Stop(CueMenuMusic)
	g.audio.Stop(CueGameMusic)
	g.logger.Info().Msg("game closed")
}

// Mode returns the current state
func (g *Game) Mode() Mode { return g.mode }

// Player returns the player state
func (g *Game) Player() *Player { return g.player }

// World returns the entity world
func (g *Game) World() *World { return g.world }

// Camera returns the follow camera
func (g *Game) Camera() *CameraRig { return g.camera }

// Score returns a snapshot of the score
func (g *Game) Score() Score { return g.score }

// MenuSelection returns the highlighted main menu entry
func (g *Game) MenuSelection() int { return g.menu.index }

// PauseSelection returns the highlighted pause menu entry
func (g *Game) PauseSelection() int { return g.pause.index }

// RespawnRemaining returns seconds until the dead player respawns
func (g *Game) RespawnRemaining() float64 { return g.health.RespawnRemaining() }

// CursorCaptured reports whether the pointer should be locked to the window
func (g *Game) CursorCaptured() bool { return g.mode == ModePlaying }

// Config returns the tuning the game runs with
func (g *Game) Config() Config { return g.config }
