package game

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// World owns the live projectiles and hostile targets
type World struct {
	config Config

	// Projectiles in flight
	Projectiles []Projectile

	// Targets alive in the arena; each owns a non-nil animation handle
	Targets []*Target

	spawner *Spawner
	anims   AnimationSource
	metrics *Metrics
	logger  zerolog.Logger
}

// NewWorld creates an empty world. Target handles are drawn from anims.
func NewWorld(config Config, anims AnimationSource, rng *rand.Rand, metrics *Metrics, logger zerolog.Logger) *World {
	return &World{
		config:      config,
		Projectiles: make([]Projectile, 0, 64),
		Targets:     make([]*Target, 0, 32),
		spawner:     NewSpawner(config, rng),
		anims:       anims,
		metrics:     metrics,
		logger:      logger,
	}
}

// Spawner returns the world's spawn controller
func (w *World) Spawner() *Spawner {
	return w.spawner
}

// Update advances one frame: target animations, spawning, projectiles and
// target steering, in that order.
func (w *World) Update(deltaTime float64, player Vec3) {
	for _, t := range w.Targets {
		t.anim.Advance(deltaTime)
	}

	if w.spawner.Tick(deltaTime) {
		w.spawnTarget(player)
	}

	w.updateProjectiles(deltaTime)

	for _, t := range w.Targets {
		t.Steer(player, w.config.TargetMinSeparation, deltaTime)
	}
}

func (w *World) spawnTarget(player Vec3) {
	pos, ok := w.spawner.Place(player)
	if !ok {
		w.logger.Debug().
			Int("attempts", w.config.SpawnAttempts).
			Msg("no spawn position cleared the player, skipping")
		return
	}
	t := NewTarget(pos, w.config, w.anims.NewHandle(), ClipTargetRun)
	w.Targets = append(w.Targets, t)
	w.metrics.targetSpawned()
	w.logger.Debug().
		Float64("x", pos.X).
		Float64("z", pos.Z).
		Int("targets", len(w.Targets)).
		Msg("target spawned")
}

// FireProjectile adds a projectile travelling along dir
func (w *World) FireProjectile(origin, dir Vec3) {
	w.Projectiles = append(w.Projectiles, Projectile{
		Position:  origin,
		Direction: dir.Normalize(),
		Speed:     w.config.BulletSpeed,
		Life:      w.config.BulletLifetime,
	})
}

// updateProjectiles moves projectiles and compacts out the expired ones
func (w *World) updateProjectiles(deltaTime float64) {
	alive := w.Projectiles[:0]
	for i := range w.Projectiles {
		p := w.Projectiles[i]
		if p.Update(deltaTime) {
			alive = append(alive, p)
		}
	}
	w.Projectiles = alive
}

// RemoveTarget releases the target's handle and drops it from the world
func (w *World) RemoveTarget(i int) {
	w.Targets[i].release()
	copy(w.Targets[i:], w.Targets[i+1:])
	w.Targets[len(w.Targets)-1] = nil
	w.Targets = w.Targets[:len(w.Targets)-1]
}

// RemoveProjectile drops the projectile at index i
func (w *World) RemoveProjectile(i int) {
	w.Projectiles = append(w.Projectiles[:i], w.Projectiles[i+1:]...)
}

// ClearTargets releases every target handle and empties the target list
func (w *World) ClearTargets() {
	for i, t := range w.Targets {
		t.release()
		w.Targets[i] = nil
	}
	w.Targets = w.Targets[:0]
}

// ClearProjectiles removes all projectiles
func (w *World) ClearProjectiles() {
	w.Projectiles = w.Projectiles[:0]
}

// resetSpawner zeroes the spawn accumulator
func (w *World) resetSpawner() {
	w.spawner.timer = 0
}
