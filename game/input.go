package game

import "time"

// Action is a logical input action
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionConfirm
	ActionPause
	ActionFire
	ActionForward
	ActionBack
	ActionLeft
	ActionRight

	actionCount
)

var actionNames = [actionCount]string{
	ActionUp:      "up",
	ActionDown:    "down",
	ActionConfirm: "confirm",
	ActionPause:   "pause",
	ActionFire:    "fire",
	ActionForward: "forward",
	ActionBack:    "back",
	ActionLeft:    "left",
	ActionRight:   "right",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// InputSource is the window's input surface
type InputSource interface {
	// IsDown reports whether any binding of the action is held right now
	IsDown(a Action) bool

	// PointerDelta returns pointer movement since the previous call
	PointerDelta() (dx, dy float64)

	// Now returns a monotonic timestamp
	Now() time.Duration
}

// EdgeState is the per-frame transition of one action
type EdgeState int

const (
	EdgeIdle EdgeState = iota
	EdgePressed
	EdgeHeld
	EdgeReleased
)

// Edges turns level key state into per-frame press/release events
type Edges struct {
	prev [actionCount]bool
	cur  [actionCount]bool
}

// Update samples the source; call exactly once per frame
func (e *Edges) Update(src InputSource) {
	e.prev = e.cur
	for a := Action(0); a < actionCount; a++ {
		e.cur[a] = src.IsDown(a)
	}
}

// State returns the action's transition for this frame
func (e *Edges) State(a Action) EdgeState {
	switch {
	case e.cur[a] && !e.prev[a]:
		return EdgePressed
	case e.cur[a]:
		return EdgeHeld
	case e.prev[a]:
		return EdgeReleased
	default:
		return EdgeIdle
	}
}

// Pressed reports a not-down to down transition this frame
func (e *Edges) Pressed(a Action) bool {
	return e.State(a) == EdgePressed
}

// Released reports a down to not-down transition this frame
func (e *Edges) Released(a Action) bool {
	return e.State(a) == EdgeReleased
}

// Held reports whether the action is down this frame, including the press frame
func (e *Edges) Held(a Action) bool {
	return e.cur[a]
}
