package game

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

func TestNewGameRequiresCollaborators(t *testing.T) {
	_, err := NewGame(DefaultConfig(), Deps{TargetAnims: &fakeAnims{}})
	assert.Error(t, err)

	_, err = NewGame(DefaultConfig(), Deps{Input: &scriptInput{}})
	assert.Error(t, err)

	g, err := NewGame(DefaultConfig(), Deps{Input: &scriptInput{}, TargetAnims: &fakeAnims{}, Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.Equal(t, ModeMenu, g.Mode())
	assert.Nil(t, g.Player().Anim())
}

func TestInitialState(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	g := h.game

	assert.Equal(t, ModeMenu, g.Mode())
	assert.Equal(t, MenuStart, g.MenuSelection())
	assert.Equal(t, 100.0, g.Player().Health)
	assert.False(t, g.CursorCaptured())
	assert.Equal(t, []Cue{CueMenuMusic}, h.audio.played)
	assert.Equal(t, 1, h.players.live())
}

func TestStartGame(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.startPlaying()

	assert.True(t, h.game.CursorCaptured())
	assert.Equal(t, []Cue{CueMenuMusic, CueStart, CueGameMusic}, h.audio.played)
	assert.Contains(t, h.audio.stopped, CueMenuMusic)
}

func TestQuitFromMenu(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.step(0))

	h.input.down[ActionDown] = true
	require.NoError(t, h.step(frame))
	h.input.down[ActionDown] = false
	assert.Equal(t, MenuQuit, h.game.MenuSelection())

	h.input.down[ActionConfirm] = true
	assert.ErrorIs(t, h.step(frame), ErrQuit)
}

func TestMenuNavigationDebounce(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.step(0))

	h.input.down[ActionDown] = true
	require.NoError(t, h.step(frame))
	assert.Equal(t, MenuQuit, h.game.MenuSelection())
	assert.Equal(t, 1, h.audio.count(CueNavigate))

	// held down: clamped at the last entry, re-triggers only after the debounce
	h.input.down[ActionDown] = false
	h.input.down[ActionUp] = true
	require.NoError(t, h.step(100*time.Millisecond))
	assert.Equal(t, MenuQuit, h.game.MenuSelection(), "inside debounce window")

	require.NoError(t, h.step(50*time.Millisecond))
	assert.Equal(t, MenuStart, h.game.MenuSelection())
	assert.Equal(t, 2, h.audio.count(CueNavigate))

	require.NoError(t, h.step(150*time.Millisecond))
	assert.Equal(t, MenuStart, h.game.MenuSelection(), "clamped at the first entry")
	assert.Equal(t, 3, h.audio.count(CueNavigate))
}

func TestConfirmIsEdgeTriggered(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.startPlaying()

	h.input.down[ActionPause] = true
	require.NoError(t, h.step(frame))
	h.input.down[ActionPause] = false
	require.Equal(t, ModePaused, h.game.Mode())

	// holding confirm from before the pause menu opened must not resume twice
	h.input.down[ActionConfirm] = true
	require.NoError(t, h.step(frame))
	assert.Equal(t, ModePlaying, h.game.Mode())

	h.input.down[ActionPause] = true
	require.NoError(t, h.step(frame))
	assert.Equal(t, ModePaused, h.game.Mode())
	require.NoError(t, h.step(frame))
	assert.Equal(t, ModePaused, h.game.Mode(), "confirm still held, no new edge")
}

func TestPauseOnlyFromPlaying(t *testing.T) {
	h := newHarness(t, quietConfig())
	require.NoError(t, h.step(0))

	h.tap(ActionPause)
	assert.Equal(t, ModeMenu, h.game.Mode())

	h.tap(ActionConfirm)
	h.tap(ActionPause)
	assert.Equal(t, ModePaused, h.game.Mode())
	assert.False(t, h.game.CursorCaptured())

	h.tap(ActionPause)
	assert.Equal(t, ModePaused, h.game.Mode(), "pause does not toggle")
}

func TestPausedFreezesWorld(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.startPlaying()
	tg := h.addTarget(Vec3{6, 0.09, 0})
	h.game.world.FireProjectile(Vec3{0, 5, 0}, Vec3{0, 1, 0})

	h.tap(ActionPause)
	require.Equal(t, ModePaused, h.game.Mode())
	pos := tg.Position
	proj := h.game.world.Projectiles[0].Position

	for i := 0; i < 20; i++ {
		require.NoError(t, h.step(frame))
	}
	assert.Equal(t, pos, tg.Position)
	assert.Equal(t, proj, h.game.world.Projectiles[0].Position)
}

func TestLookAppliesInEveryMode(t *testing.T) {
	h := newHarness(t, quietConfig())
	require.NoError(t, h.step(0))

	h.input.dx = 50
	require.NoError(t, h.step(frame))
	assert.InDelta(t, -5, h.game.Player().CameraYaw, 1e-9)

	h.tap(ActionConfirm)
	h.tap(ActionPause)
	h.input.dy = 100
	require.NoError(t, h.step(frame))
	assert.InDelta(t, 10, h.game.Player().CameraPitch, 1e-9)
}

func TestFrameDeltaIsClamped(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.startPlaying()
	h.game.world.FireProjectile(Vec3{}, Vec3{1, 0, 0})

	require.NoError(t, h.step(5*time.Second))
	p := h.game.world.Projectiles[0]
	assert.InDelta(t, 1.5, p.Position.X, 1e-9, "one frame moves at most MaxFrameDelta")
	assert.InDelta(t, 2.9, p.Life, 1e-9)
}

func TestFireIsEdgeTriggered(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.startPlaying()

	h.input.down[ActionFire] = true
	for i := 0; i < 5; i++ {
		require.NoError(t, h.step(frame))
	}
	require.Len(t, h.game.world.Projectiles, 1)
	assert.Equal(t, 1, h.audio.count(CueGunshot))

	p := h.game.world.Projectiles[0]
	assert.InDelta(t, 1, p.Direction.Len(), 1e-9)
	assert.InDelta(t, h.game.camera.Front.X, p.Direction.X, 1e-9)
	assert.InDelta(t, h.game.camera.Front.Z, p.Direction.Z, 1e-9)
}

func TestMovementDrivesPlayerClip(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.startPlaying()
	ph := h.players.handles[0]

	h.input.down[ActionForward] = true
	h.input.down[ActionLeft] = true
	require.NoError(t, h.step(frame))

	assert.Equal(t, ClipRunForwardLeft, ph.lastClip())
	assert.Greater(t, ph.advanced, 0.0)
}

// Firing straight at a target removes both, scores once and releases the handle
func TestProjectileKillScores(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.startPlaying()
	g := h.game

	cam := g.camera
	muzzle := g.player.Position.Add(g.config.BulletOffset)
	tg := h.addTarget(muzzle.Add(cam.Front.Scale(4)).Sub(Vec3{0, 0.3, 0}))
	handle := h.targets.handles[0]

	h.input.down[ActionFire] = true
	require.NoError(t, h.step(frame))
	h.input.down[ActionFire] = false
	for i := 0; i < 60 && len(g.world.Targets) > 0; i++ {
		require.NoError(t, h.step(frame))
	}

	assert.Empty(t, g.world.Targets)
	assert.Empty(t, g.world.Projectiles)
	assert.Equal(t, Score{Current: 1, High: 1}, g.Score())
	assert.Equal(t, 1, handle.released)
	assert.Equal(t, 1, h.audio.count(CueHit))
	assert.Nil(t, tg.Anim())
}

func TestDamageSequenceKillsPlayer(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.startPlaying()
	g := h.game
	h.addTarget(g.player.Position.Add(Vec3{0.4, 0, 0}))

	var seen []float64
	for i := 0; i < 5; i++ {
		require.NoError(t, h.step(1100*time.Millisecond))
		seen = append(seen, g.player.Health)
	}

	assert.Equal(t, []float64{80, 60, 40, 20, 0}, seen)
	assert.True(t, g.player.Dead)
	assert.Equal(t, 1, h.audio.count(CueGameOver))
	assert.Contains(t, h.audio.stopped, CueGameMusic)
}

func TestDamageRespectsCooldown(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.startPlaying()
	g := h.game
	h.addTarget(g.player.Position.Add(Vec3{0.4, 0, 0}))

	for i := 0; i < 30; i++ {
		require.NoError(t, h.step(frame))
	}
	assert.Equal(t, 80.0, g.player.Health, "under a second of contact is one hit")
}

func TestReturnToMenuResetsEverything(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.startPlaying()
	g := h.game

	for i := 0; i < 3; i++ {
		h.addTarget(Vec3{float64(i)*3 + 4, 0.1, 8})
	}
	g.world.FireProjectile(Vec3{0, 3, 0}, Vec3{0, 1, 0})
	g.world.FireProjectile(Vec3{0, 3, 0}, Vec3{0, 1, 0})
	g.score = Score{Current: 7, High: 9}
	g.player.Health = 40
	g.player.Position = Vec3{5, 0.09, 5}

	h.tap(ActionPause)
	h.input.down[ActionDown] = true
	require.NoError(t, h.step(200*time.Millisecond))
	h.input.down[ActionDown] = false
	require.Equal(t, PauseToMenu, g.PauseSelection())
	h.tap(ActionConfirm)

	assert.Equal(t, ModeMenu, g.Mode())
	assert.Empty(t, g.world.Targets)
	assert.Empty(t, g.world.Projectiles)
	assert.Equal(t, Score{Current: 0, High: 9}, g.Score())
	assert.Equal(t, g.config.MaxHealth, g.player.Health)
	assert.False(t, g.player.Dead)
	assert.Equal(t, g.config.SpawnPoint, g.player.Position)
	assert.Equal(t, MenuStart, g.MenuSelection())
	assert.Equal(t, PauseResume, g.PauseSelection())
	assert.Zero(t, h.targets.live())
	for _, th := range h.targets.handles {
		assert.Equal(t, 1, th.released)
	}
	assert.Equal(t, 1, h.audio.count(CueReturn))
	assert.Equal(t, 2, h.audio.count(CueMenuMusic))
}

func TestRespawnIsPartialReset(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.startPlaying()
	g := h.game

	g.score = Score{Current: 4, High: 4}
	for i := 0; i < 3; i++ {
		h.addTarget(Vec3{float64(i)*3 + 4, 0.1, 8})
	}
	g.world.FireProjectile(Vec3{0, 3, 0}, Vec3{0, 1, 0})
	g.player.Health = 20
	g.health.ApplyDamage(20)
	require.True(t, g.player.Dead)

	positions := make([]Vec3, len(g.world.Targets))
	for i, tg := range g.world.Targets {
		positions[i] = tg.Position
	}
	playerPos := g.player.Position
	projPos := g.world.Projectiles[0].Position

	// dead: the world is frozen and input ignored, but the respawn clock runs
	h.input.down[ActionFire] = true
	h.input.down[ActionForward] = true
	for i := 0; i < 10; i++ {
		require.NoError(t, h.step(100*time.Millisecond))
	}
	h.input.down[ActionFire] = false
	h.input.down[ActionForward] = false

	require.True(t, g.player.Dead)
	require.Len(t, g.world.Targets, 3)
	for i, tg := range g.world.Targets {
		assert.Equal(t, positions[i], tg.Position)
	}
	assert.Equal(t, playerPos, g.player.Position)
	require.Len(t, g.world.Projectiles, 1, "fire is ignored while dead")
	assert.Equal(t, projPos, g.world.Projectiles[0].Position)
	assert.Zero(t, h.audio.count(CueGunshot))
	assert.Equal(t, 2, int(g.RespawnRemaining()))

	for i := 0; i < 25; i++ {
		require.NoError(t, h.step(100*time.Millisecond))
	}

	assert.False(t, g.player.Dead)
	assert.Equal(t, g.config.MaxHealth, g.player.Health)
	assert.Equal(t, Score{Current: 0, High: 4}, g.Score())
	assert.Empty(t, g.world.Targets)
	assert.Len(t, g.world.Projectiles, 1, "projectiles survive a respawn")
	assert.Zero(t, h.targets.live())
}

func TestDeadPlayerCannotBeHurt(t *testing.T) {
	h := newHarness(t, quietConfig())
	g := h.game

	g.player.Health = 10
	assert.True(t, g.health.ApplyDamage(20))
	assert.Equal(t, 0.0, g.player.Health)
	assert.False(t, g.health.ApplyDamage(20))
	assert.Equal(t, 0.0, g.player.Health)
	assert.Equal(t, 1, h.audio.count(CueGameOver))
}

func TestHealthStaysWithinBounds(t *testing.T) {
	h := newHarness(t, quietConfig())
	g := h.game

	g.player.Health = 90
	assert.False(t, g.health.ApplyDamage(-50))
	assert.Equal(t, g.config.MaxHealth, g.player.Health)

	assert.True(t, g.health.ApplyDamage(g.config.MaxHealth*3))
	assert.Equal(t, 0.0, g.player.Health)
}

func TestCloseReleasesEveryHandle(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.startPlaying()

	for i := 0; i < 40; i++ {
		require.NoError(t, h.step(100*time.Millisecond))
	}
	require.NotEmpty(t, h.game.world.Targets)

	h.game.Close()
	h.game.Close()

	assert.Zero(t, h.targets.live())
	assert.Zero(t, h.players.live())
	for _, th := range h.targets.handles {
		assert.Equal(t, 1, th.released)
	}
	assert.ErrorIs(t, h.game.Update(), ErrQuit)
}

func TestHighScoreNeverDecreases(t *testing.T) {
	var s Score
	high := 0
	for i := 0; i < 50; i++ {
		if i%7 == 6 {
			s.ResetCurrent()
		} else {
			s.Increment()
		}
		assert.GreaterOrEqual(t, s.High, high)
		assert.GreaterOrEqual(t, s.High, s.Current)
		high = s.High
	}
	assert.Equal(t, 6, s.High)
}
