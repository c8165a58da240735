package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(config Config) (*World, *fakeAnims) {
	anims := &fakeAnims{}
	return NewWorld(config, anims, rand.New(rand.NewSource(7)), nil, zerolog.Nop()), anims
}

func placeTarget(w *World, anims *fakeAnims, pos Vec3) *Target {
	t := NewTarget(pos, w.config, anims.NewHandle(), ClipTargetRun)
	w.Targets = append(w.Targets, t)
	return t
}

func TestPointInBoxIsInclusive(t *testing.T) {
	min, max := Vec3{-1, 0, -1}, Vec3{1, 2, 1}

	tests := []struct {
		name string
		p    Vec3
		want bool
	}{
		{"centre", Vec3{0, 1, 0}, true},
		{"min corner", min, true},
		{"max corner", max, true},
		{"on x face", Vec3{1, 1, 0}, true},
		{"on floor", Vec3{0, 0, 0}, true},
		{"just outside x", Vec3{1.0001, 1, 0}, false},
		{"below", Vec3{0, -0.0001, 0}, false},
		{"above", Vec3{0, 2.0001, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInBox(tt.p, min, max))
		})
	}
}

func TestTargetWorldBoundsScale(t *testing.T) {
	w, anims := newTestWorld(DefaultConfig())
	tg := placeTarget(w, anims, Vec3{2, 0.1, -3})

	min, max := tg.WorldBounds()
	assert.InDelta(t, 2-0.18, min.X, 1e-9)
	assert.InDelta(t, 0.1, min.Y, 1e-9)
	assert.InDelta(t, 2+0.18, max.X, 1e-9)
	assert.InDelta(t, 0.1+0.9, max.Y, 1e-9)
	assert.InDelta(t, -3+0.18, max.Z, 1e-9)
}

func TestProjectileOnBoundaryFaceHits(t *testing.T) {
	w, anims := newTestWorld(DefaultConfig())
	c := NewCollisionSystem(w, w.config)
	tg := placeTarget(w, anims, Vec3{0, 0, 0})

	_, max := tg.WorldBounds()
	w.Projectiles = append(w.Projectiles, Projectile{Position: Vec3{max.X, 0.5, 0}, Life: 1})

	assert.Equal(t, 1, c.CheckProjectileHits())
	assert.Empty(t, w.Targets)
	assert.Empty(t, w.Projectiles)
	assert.Equal(t, 1, anims.handles[0].released)
}

func TestProjectileHitsAtMostOneTarget(t *testing.T) {
	w, anims := newTestWorld(DefaultConfig())
	c := NewCollisionSystem(w, w.config)
	placeTarget(w, anims, Vec3{0, 0, 0})
	placeTarget(w, anims, Vec3{0.05, 0, 0})
	w.Projectiles = append(w.Projectiles, Projectile{Position: Vec3{0, 0.5, 0}, Life: 1})

	assert.Equal(t, 1, c.CheckProjectileHits())
	require.Len(t, w.Targets, 1)
	assert.Equal(t, 1, anims.live())
	assert.Equal(t, 1, anims.handles[0].released)
	assert.Zero(t, anims.handles[1].released)
	assert.Same(t, anims.handles[1], w.Targets[0].Anim())
}

func TestEachProjectileCanKill(t *testing.T) {
	w, anims := newTestWorld(DefaultConfig())
	c := NewCollisionSystem(w, w.config)
	placeTarget(w, anims, Vec3{0, 0, 0})
	placeTarget(w, anims, Vec3{5, 0, 0})
	w.Projectiles = append(w.Projectiles,
		Projectile{Position: Vec3{0, 0.5, 0}, Life: 1},
		Projectile{Position: Vec3{9, 9, 9}, Life: 1},
		Projectile{Position: Vec3{5, 0.5, 0}, Life: 1},
	)

	assert.Equal(t, 2, c.CheckProjectileHits())
	assert.Empty(t, w.Targets)
	require.Len(t, w.Projectiles, 1)
	assert.Equal(t, Vec3{9, 9, 9}, w.Projectiles[0].Position)
	assert.Zero(t, anims.live())
}

func TestProximityCooldown(t *testing.T) {
	w, anims := newTestWorld(DefaultConfig())
	c := NewCollisionSystem(w, w.config)
	placeTarget(w, anims, Vec3{0.5, 0.09, 0})
	player := Vec3{0, 0.09, 0}

	assert.True(t, c.CheckProximity(player, 0), "first contact hurts immediately")
	assert.False(t, c.CheckProximity(player, 500*time.Millisecond))
	assert.False(t, c.CheckProximity(player, 999*time.Millisecond))
	assert.True(t, c.CheckProximity(player, time.Second), "cooldown boundary is inclusive")
	assert.False(t, c.CheckProximity(player, 1500*time.Millisecond))

	c.Reset()
	assert.True(t, c.CheckProximity(player, 1600*time.Millisecond))
}

func TestProximityRadiusIsExclusive(t *testing.T) {
	w, anims := newTestWorld(DefaultConfig())
	c := NewCollisionSystem(w, w.config)
	placeTarget(w, anims, Vec3{0.8, 0, 0})

	assert.False(t, c.CheckProximity(Vec3{}, 0))

	w.Targets[0].Position.X = 0.79
	assert.True(t, c.CheckProximity(Vec3{}, 0))
}
