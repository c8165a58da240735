package game

import "github.com/rs/zerolog"

// HealthSystem applies damage to the player and runs death and respawn
type HealthSystem struct {
	config  Config
	player  *Player
	world   *World
	score   *Score
	audio   AudioSink
	metrics *Metrics
	logger  zerolog.Logger
}

// NewHealthSystem creates a health system bound to the given state
func NewHealthSystem(config Config, player *Player, world *World, score *Score, audio AudioSink, metrics *Metrics, logger zerolog.Logger) *HealthSystem {
	return &HealthSystem{
		config:  config,
		player:  player,
		world:   world,
		score:   score,
		audio:   audio,
		metrics: metrics,
		logger:  logger,
	}
}

// ApplyDamage subtracts amount from the player's health and reports whether
// this event killed the player. A dead player takes no further damage.
func (h *HealthSystem) ApplyDamage(amount float64) bool {
	p := h.player
	if p.Dead {
		return false
	}

	p.Health = clamp(p.Health-amount, 0, h.config.MaxHealth)
	h.metrics.damageApplied()
	h.logger.Info().Float64("health", p.Health).Msg("player hit")

	if p.Health > 0 {
		return false
	}

	p.Dead = true
	p.RespawnTimer = 0
	h.audio.Stop(CueMenuMusic)
	h.audio.Stop(CueGameMusic)
	h.audio.Play(CueGameOver)
	h.metrics.playerDied()
	h.logger.Info().Int("score", h.score.Current).Msg("player died")
	return true
}

// Update advances the respawn timer while the player is dead and reports
// whether a respawn happened this frame.
//
// Respawn is a partial reset: targets are released and the score restarts,
// projectiles in flight are kept.
func (h *HealthSystem) Update(deltaTime float64) bool {
	p := h.player
	if !p.Dead {
		return false
	}

	p.RespawnTimer += deltaTime
	if p.RespawnTimer < h.config.RespawnTime {
		return false
	}

	p.reset(h.config)
	h.score.ResetCurrent()
	h.world.ClearTargets()
	h.metrics.playerRespawned()
	h.logger.Info().Msg("player respawned")
	return true
}

// RespawnRemaining returns the seconds left until respawn
func (h *HealthSystem) RespawnRemaining() float64 {
	return max(h.config.RespawnTime-h.player.RespawnTimer, 0)
}
