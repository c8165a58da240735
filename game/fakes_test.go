package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"
)

type fakeHandle struct {
	src      *fakeAnims
	clips    []string
	advanced float64
	released int
}

func (h *fakeHandle) Play(clip string)   { h.clips = append(h.clips, clip) }
func (h *fakeHandle) Advance(dt float64) { h.advanced += dt }
func (h *fakeHandle) BoneMatrices() []f32.Mat4 {
	return []f32.Mat4{Identity(), Identity()}
}
func (h *fakeHandle) Release() {
	h.released++
	h.src.released++
}

func (h *fakeHandle) lastClip() string {
	if len(h.clips) == 0 {
		return ""
	}
	return h.clips[len(h.clips)-1]
}

type fakeAnims struct {
	handles  []*fakeHandle
	released int
}

func (a *fakeAnims) NewHandle() AnimationHandle {
	h := &fakeHandle{src: a}
	a.handles = append(a.handles, h)
	return h
}

// live counts handles created and not yet released
func (a *fakeAnims) live() int {
	return len(a.handles) - a.released
}

type fakeAudio struct {
	played  []Cue
	stopped []Cue
}

func (a *fakeAudio) Play(c Cue)             { a.played = append(a.played, c) }
func (a *fakeAudio) Stop(c Cue)             { a.stopped = append(a.stopped, c) }
func (a *fakeAudio) SetVolume(Cue, float64) {}

func (a *fakeAudio) count(c Cue) int {
	n := 0
	for _, p := range a.played {
		if p == c {
			n++
		}
	}
	return n
}

// scriptInput is a manual input source. Tests set keys and advance the clock.
type scriptInput struct {
	down   [actionCount]bool
	dx, dy float64
	now    time.Duration
}

func (s *scriptInput) IsDown(a Action) bool { return s.down[a] }
func (s *scriptInput) PointerDelta() (float64, float64) {
	dx, dy := s.dx, s.dy
	s.dx, s.dy = 0, 0
	return dx, dy
}
func (s *scriptInput) Now() time.Duration { return s.now }

type harness struct {
	t       *testing.T
	game    *Game
	input   *scriptInput
	targets *fakeAnims
	players *fakeAnims
	audio   *fakeAudio
}

func newHarness(t *testing.T, config Config) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		input:   &scriptInput{},
		targets: &fakeAnims{},
		players: &fakeAnims{},
		audio:   &fakeAudio{},
	}
	g, err := NewGame(config, Deps{
		Input:       h.input,
		TargetAnims: h.targets,
		PlayerAnims: h.players,
		Audio:       h.audio,
		Logger:      zerolog.Nop(),
		Rand:        rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	h.game = g
	return h
}

// step advances the clock by d and runs one frame
func (h *harness) step(d time.Duration) error {
	h.input.now += d
	return h.game.Update()
}

// tap presses a for one frame and releases it on the next
func (h *harness) tap(a Action) {
	h.t.Helper()
	h.input.down[a] = true
	require.NoError(h.t, h.step(16*time.Millisecond))
	h.input.down[a] = false
	require.NoError(h.t, h.step(16*time.Millisecond))
}

// startPlaying confirms "start" from the initial menu
func (h *harness) startPlaying() {
	h.t.Helper()
	require.NoError(h.t, h.step(0))
	h.tap(ActionConfirm)
	require.Equal(h.t, ModePlaying, h.game.Mode())
}

// addTarget places a target directly, bypassing the spawner
func (h *harness) addTarget(pos Vec3) *Target {
	w := h.game.world
	t := NewTarget(pos, h.game.config, h.targets.NewHandle(), ClipTargetRun)
	w.Targets = append(w.Targets, t)
	return t
}

// quietConfig disables spawning so tests control every target
func quietConfig() Config {
	c := DefaultConfig()
	c.SpawnInterval = 1e9
	return c
}
