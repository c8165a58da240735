package client

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"grannyarena/game"
)

// binding is one physical input that drives an action
type binding struct {
	key   ebiten.Key
	mouse ebiten.MouseButton
	isKey bool
}

func key(k ebiten.Key) binding                 { return binding{key: k, isKey: true} }
func mouseButton(b ebiten.MouseButton) binding { return binding{mouse: b} }

// DefaultBindings maps every action to its keys and buttons
func DefaultBindings() map[game.Action][]binding {
	return map[game.Action][]binding{
		game.ActionUp:      {key(ebiten.KeyUp)},
		game.ActionDown:    {key(ebiten.KeyDown)},
		game.ActionConfirm: {key(ebiten.KeyEnter), key(ebiten.KeyNumpadEnter)},
		game.ActionPause:   {key(ebiten.KeyEscape)},
		game.ActionFire:    {key(ebiten.KeyJ), mouseButton(ebiten.MouseButtonLeft)},
		game.ActionForward: {key(ebiten.KeyW)},
		game.ActionBack:    {key(ebiten.KeyS)},
		game.ActionLeft:    {key(ebiten.KeyA)},
		game.ActionRight:   {key(ebiten.KeyD)},
	}
}

// ebitenInput implements game.InputSource on top of ebiten's polled state
type ebitenInput struct {
	bindings map[game.Action][]binding
	start    time.Time

	lastX, lastY int
	primed       bool
}

func newEbitenInput() *ebitenInput {
	return &ebitenInput{
		bindings: DefaultBindings(),
		start:    time.Now(),
	}
}

func (in *ebitenInput) IsDown(a game.Action) bool {
	for _, b := range in.bindings[a] {
		if b.isKey && ebiten.IsKeyPressed(b.key) {
			return true
		}
		if !b.isKey && ebiten.IsMouseButtonPressed(b.mouse) {
			return true
		}
	}
	return false
}

// PointerDelta reports cursor movement since the previous call. Screen Y
// grows downwards, so dy is flipped to make moving the mouse up positive.
func (in *ebitenInput) PointerDelta() (float64, float64) {
	x, y := ebiten.CursorPosition()
	if !in.primed {
		in.lastX, in.lastY, in.primed = x, y, true
		return 0, 0
	}
	dx, dy := x-in.lastX, in.lastY-y
	in.lastX, in.lastY = x, y
	return float64(dx), float64(dy)
}

// resetPointer drops the previous cursor sample, e.g. after the cursor mode
// changes and the OS warps the pointer
func (in *ebitenInput) resetPointer() {
	in.primed = false
}

func (in *ebitenInput) Now() time.Duration {
	return time.Since(in.start)
}
