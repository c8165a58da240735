// Package client hosts the arena in an ebiten window.
package client

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"grannyarena/game"
)

// WindowOptions configures the ebiten window
type WindowOptions struct {
	Width, Height int
	Title         string
}

// Runner implements ebiten.Game around a game.Game
type Runner struct {
	game     *game.Game
	input    *ebitenInput
	renderer *Renderer
	debug    *DebugState
	profiler *Profiler
	logger   zerolog.Logger

	captured  bool
	closed    bool
	lastFrame time.Time
	onClose   []func()
}

// NewInput creates the window input source the game must be built with
func NewInput() game.InputSource {
	return newEbitenInput()
}

// NewRunner wraps g. input must be the source g was created with; profiler
// may be nil.
func NewRunner(g *game.Game, input game.InputSource, debug bool, profiler *Profiler, logger zerolog.Logger) *Runner {
	in, _ := input.(*ebitenInput)
	state := &DebugState{ShowBounds: debug}
	return &Runner{
		game:     g,
		input:    in,
		renderer: NewRenderer(state),
		debug:    state,
		profiler: profiler,
		logger:   logger,
	}
}

// OnClose registers cleanup run once when the window shuts down
func (r *Runner) OnClose(f func()) {
	r.onClose = append(r.onClose, f)
}

// Run opens the window and blocks until the game quits or the window closes
func (r *Runner) Run(opts WindowOptions) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(r)
	r.shutdown()
	return err
}

func (r *Runner) Update() error {
	now := time.Now()
	if !r.lastFrame.IsZero() && r.profiler != nil {
		r.profiler.Observe(now.Sub(r.lastFrame))
	}
	r.lastFrame = now

	if ebiten.IsWindowBeingClosed() {
		r.logger.Info().Msg("window closed")
		r.shutdown()
		return ebiten.Termination
	}

	r.handleInput()

	if err := r.game.Update(); err != nil {
		r.shutdown()
		if errors.Is(err, game.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}

	r.syncCursor()
	return nil
}

// handleInput processes window-level keys: F1 debug overlay, Alt+Enter fullscreen
func (r *Runner) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		r.debug.Toggle()
	}
	altPressed := ebiten.IsKeyPressed(ebiten.KeyAlt)
	if altPressed && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}

// syncCursor captures the pointer while playing and frees it otherwise
func (r *Runner) syncCursor() {
	want := r.game.CursorCaptured()
	if want == r.captured {
		return
	}
	r.captured = want
	if want {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	if r.input != nil {
		r.input.resetPointer()
	}
}

func (r *Runner) Draw(screen *ebiten.Image) {
	r.renderer.Render(screen, r.game)
}

func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// shutdown releases every game resource exactly once
func (r *Runner) shutdown() {
	if r.closed {
		return
	}
	r.closed = true
	r.game.Close()
	for _, f := range r.onClose {
		f()
	}
	r.logger.Info().Msg("shut down")
}
