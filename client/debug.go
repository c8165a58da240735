package client

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"grannyarena/game"
)

// DebugState holds debug flags that persist across game resets
type DebugState struct {
	ShowBounds bool // Show target AABBs and simulation counters
}

// Toggle flips the overlay
func (d *DebugState) Toggle() {
	d.ShowBounds = !d.ShowBounds
}

// draw prints simulation counters in the top-left corner
func (d *DebugState) draw(screen *ebiten.Image, g *game.Game) {
	p := g.Player()
	msg := fmt.Sprintf(
		"TPS: %0.1f  FPS: %0.1f\nmode: %s\ntargets: %d  projectiles: %d\npos: %.2f %.2f %.2f\nyaw: %.1f  pitch: %.1f\nspawn timer: %.2f",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		g.Mode(),
		len(g.World().Targets), len(g.World().Projectiles),
		p.Position.X, p.Position.Y, p.Position.Z,
		p.CameraYaw, p.CameraPitch,
		g.World().Spawner().Timer(),
	)
	ebitenutil.DebugPrintAt(screen, msg, 8, 48)
}
