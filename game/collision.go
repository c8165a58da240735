package game

import "time"

// CollisionSystem resolves target proximity damage and projectile hits
type CollisionSystem struct {
	world  *World
	config Config

	// lastDamage is the input-clock time of the last damage event
	lastDamage time.Duration
}

// NewCollisionSystem creates a collision system over world
func NewCollisionSystem(world *World, config Config) *CollisionSystem {
	c := &CollisionSystem{
		world:  world,
		config: config,
	}
	c.Reset()
	return c
}

// Reset rearms the damage cooldown so the next contact hurts immediately
func (c *CollisionSystem) Reset() {
	c.lastDamage = -c.config.DamageCooldown
}

// CheckProximity reports whether a damage event happens at time now.
// At most one event per call; the first target inside DamageRadius wins
// and restarts the cooldown.
func (c *CollisionSystem) CheckProximity(player Vec3, now time.Duration) bool {
	if now-c.lastDamage < c.config.DamageCooldown {
		return false
	}
	for _, t := range c.world.Targets {
		if Distance(t.Position, player) < c.config.DamageRadius {
			c.lastDamage = now
			return true
		}
	}
	return false
}

// CheckProjectileHits removes every projectile that lies inside a target's
// world AABB together with that target, releasing its animation handle.
// A projectile hits at most one target. It returns the number of kills.
func (c *CollisionSystem) CheckProjectileHits() int {
	w := c.world
	kills := 0
	for i := 0; i < len(w.Projectiles); {
		hit := false
		for j, t := range w.Targets {
			min, max := t.WorldBounds()
			if PointInBox(w.Projectiles[i].Position, min, max) {
				w.RemoveTarget(j)
				w.RemoveProjectile(i)
				kills++
				hit = true
				break
			}
		}
		if !hit {
			i++
		}
	}
	return kills
}

// PointInBox reports whether p lies inside the box, faces included
func PointInBox(p, min, max Vec3) bool {
	return p.X >= min.X && p.X <= max.X &&
		p.Y >= min.Y && p.Y <= max.Y &&
		p.Z >= min.Z && p.Z <= max.Z
}
