package game

import "math/rand"

// Spawner decides when and where new targets appear
type Spawner struct {
	config Config
	rng    *rand.Rand

	// timer accumulates elapsed time since the last spawn
	timer float64
}

// NewSpawner creates a spawner drawing positions from rng
func NewSpawner(config Config, rng *rand.Rand) *Spawner {
	return &Spawner{
		config: config,
		rng:    rng,
	}
}

// Tick accumulates deltaTime and reports whether a spawn is due.
// The accumulator resets to zero when it fires.
func (s *Spawner) Tick(deltaTime float64) bool {
	s.timer += deltaTime
	if s.timer >= s.config.SpawnInterval {
		s.timer = 0
		return true
	}
	return false
}

// Place samples a position inside the spawn square whose distance from
// player is at least SpawnClearance. It gives up after SpawnAttempts draws.
func (s *Spawner) Place(player Vec3) (Vec3, bool) {
	r := s.config.SpawnRange
	for i := 0; i < s.config.SpawnAttempts; i++ {
		pos := Vec3{
			X: (s.rng.Float64()*2 - 1) * r,
			Y: s.config.SpawnHeight,
			Z: (s.rng.Float64()*2 - 1) * r,
		}
		if Distance(pos, player) >= s.config.SpawnClearance {
			return pos, true
		}
	}
	return Vec3{}, false
}

// Timer returns the current accumulator value
func (s *Spawner) Timer() float64 {
	return s.timer
}
