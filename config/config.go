// Package config loads arena settings from defaults, an optional arena.json
// and ARENA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"

	"grannyarena/game"
)

const (
	// FileName is the config file looked up in the config directory
	FileName = "arena"

	// EnvPrefix prefixes environment overrides, e.g. ARENA_GAME_SPAWNINTERVAL
	EnvPrefix = "ARENA"
)

// GameConfig is the tunable part of game.Config
type GameConfig struct {
	SpawnInterval       float64       `json:"spawnInterval" mapstructure:"spawnInterval"`
	SpawnRange          float64       `json:"spawnRange" mapstructure:"spawnRange"`
	SpawnHeight         float64       `json:"spawnHeight" mapstructure:"spawnHeight"`
	SpawnClearance      float64       `json:"spawnClearance" mapstructure:"spawnClearance"`
	SpawnAttempts       int           `json:"spawnAttempts" mapstructure:"spawnAttempts"`
	TargetSpeed         float64       `json:"targetSpeed" mapstructure:"targetSpeed"`
	TargetMinSeparation float64       `json:"targetMinSeparation" mapstructure:"targetMinSeparation"`
	BulletSpeed         float64       `json:"bulletSpeed" mapstructure:"bulletSpeed"`
	BulletLifetime      float64       `json:"bulletLifetime" mapstructure:"bulletLifetime"`
	MaxHealth           float64       `json:"maxHealth" mapstructure:"maxHealth"`
	EnemyDamage         float64       `json:"enemyDamage" mapstructure:"enemyDamage"`
	DamageRadius        float64       `json:"damageRadius" mapstructure:"damageRadius"`
	DamageCooldown      time.Duration `json:"damageCooldown" mapstructure:"damageCooldown"`
	RespawnTime         float64       `json:"respawnTime" mapstructure:"respawnTime"`
	PlayerSpeed         float64       `json:"playerSpeed" mapstructure:"playerSpeed"`
	ArenaLimit          float64       `json:"arenaLimit" mapstructure:"arenaLimit"`
	CameraDistance      float64       `json:"cameraDistance" mapstructure:"cameraDistance"`
	CameraHeight        float64       `json:"cameraHeight" mapstructure:"cameraHeight"`
	MouseSensitivity    float64       `json:"mouseSensitivity" mapstructure:"mouseSensitivity"`
	MaxPitch            float64       `json:"maxPitch" mapstructure:"maxPitch"`
	FieldOfView         float64       `json:"fieldOfView" mapstructure:"fieldOfView"`
	NavDebounce         time.Duration `json:"navDebounce" mapstructure:"navDebounce"`
	MaxFrameDelta       float64       `json:"maxFrameDelta" mapstructure:"maxFrameDelta"`
}

// WindowConfig holds the ebiten window settings
type WindowConfig struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
}

// AudioConfig holds the sound directory and per-cue gains
type AudioConfig struct {
	Enabled bool               `json:"enabled" mapstructure:"enabled"`
	Dir     string             `json:"dir" mapstructure:"dir"`
	Volumes map[string]float64 `json:"volumes" mapstructure:"volumes"`
}

// TelemetryConfig controls the metric reader
type TelemetryConfig struct {
	Enabled  bool          `json:"enabled" mapstructure:"enabled"`
	Interval time.Duration `json:"interval" mapstructure:"interval"`
}

// Config is the full application configuration
type Config struct {
	LogLevel  string          `json:"logLevel" mapstructure:"logLevel"`
	LogsDir   string          `json:"logsDir" mapstructure:"logsDir"`
	Seed      int64           `json:"seed" mapstructure:"seed"`
	Debug     bool            `json:"debug" mapstructure:"debug"`
	Game      GameConfig      `json:"game" mapstructure:"game"`
	Window    WindowConfig    `json:"window" mapstructure:"window"`
	Audio     AudioConfig     `json:"audio" mapstructure:"audio"`
	Telemetry TelemetryConfig `json:"telemetry" mapstructure:"telemetry"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logsDir", "./logs")
	v.SetDefault("seed", 0)
	v.SetDefault("debug", false)

	d := game.DefaultConfig()
	v.SetDefault("game.spawnInterval", d.SpawnInterval)
	v.SetDefault("game.spawnRange", d.SpawnRange)
	v.SetDefault("game.spawnHeight", d.SpawnHeight)
	v.SetDefault("game.spawnClearance", d.SpawnClearance)
	v.SetDefault("game.spawnAttempts", d.SpawnAttempts)
	v.SetDefault("game.targetSpeed", d.TargetSpeed)
	v.SetDefault("game.targetMinSeparation", d.TargetMinSeparation)
	v.SetDefault("game.bulletSpeed", d.BulletSpeed)
	v.SetDefault("game.bulletLifetime", d.BulletLifetime)
	v.SetDefault("game.maxHealth", d.MaxHealth)
	v.SetDefault("game.enemyDamage", d.EnemyDamage)
	v.SetDefault("game.damageRadius", d.DamageRadius)
	v.SetDefault("game.damageCooldown", d.DamageCooldown.String())
	v.SetDefault("game.respawnTime", d.RespawnTime)
	v.SetDefault("game.playerSpeed", d.PlayerSpeed)
	v.SetDefault("game.arenaLimit", d.ArenaLimit)
	v.SetDefault("game.cameraDistance", d.CameraDistance)
	v.SetDefault("game.cameraHeight", d.CameraHeight)
	v.SetDefault("game.mouseSensitivity", d.MouseSensitivity)
	v.SetDefault("game.maxPitch", d.MaxPitch)
	v.SetDefault("game.fieldOfView", d.FieldOfView)
	v.SetDefault("game.navDebounce", d.NavDebounce.String())
	v.SetDefault("game.maxFrameDelta", d.MaxFrameDelta)

	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.title", "Granny Arena")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.dir", "./sounds")
	v.SetDefault("audio.volumes", map[string]float64{})

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.interval", "30s")
}

// Load reads configuration from configDir. A missing arena.json leaves the
// defaults in place; a malformed one is an error.
func Load(configDir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Game.SpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("game.spawnInterval must be positive, got %v", c.Game.SpawnInterval))
	}
	if c.Game.SpawnAttempts <= 0 {
		errs = append(errs, fmt.Errorf("game.spawnAttempts must be positive, got %d", c.Game.SpawnAttempts))
	}
	if c.Game.MaxHealth <= 0 {
		errs = append(errs, fmt.Errorf("game.maxHealth must be positive, got %v", c.Game.MaxHealth))
	}
	if c.Game.EnemyDamage <= 0 {
		errs = append(errs, fmt.Errorf("game.enemyDamage must be positive, got %v", c.Game.EnemyDamage))
	}
	if c.Game.SpawnRange <= 0 {
		errs = append(errs, fmt.Errorf("game.spawnRange must be positive, got %v", c.Game.SpawnRange))
	}
	// the spawn square's corners are spawnRange*sqrt2 from the origin
	if c.Game.SpawnClearance < 0 || c.Game.SpawnClearance >= c.Game.SpawnRange*math.Sqrt2 {
		errs = append(errs, fmt.Errorf("game.spawnClearance must be in [0, %.2f) for spawnRange %v, got %v",
			c.Game.SpawnRange*math.Sqrt2, c.Game.SpawnRange, c.Game.SpawnClearance))
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"bulletLifetime", c.Game.BulletLifetime},
		{"targetMinSeparation", c.Game.TargetMinSeparation},
		{"damageRadius", c.Game.DamageRadius},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("game.%s must not be negative, got %v", f.name, f.value))
		}
	}
	if c.Game.NavDebounce < 0 {
		errs = append(errs, fmt.Errorf("game.navDebounce must not be negative, got %v", c.Game.NavDebounce))
	}
	if c.Game.MaxFrameDelta <= 0 {
		errs = append(errs, fmt.Errorf("game.maxFrameDelta must be positive, got %v", c.Game.MaxFrameDelta))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

// GameConfig converts the loaded tuning into game.Config. Values that are
// not exposed keep their defaults.
func (c Config) GameConfig() game.Config {
	g := game.DefaultConfig()
	t := c.Game
	g.SpawnInterval = t.SpawnInterval
	g.SpawnRange = t.SpawnRange
	g.SpawnHeight = t.SpawnHeight
	g.SpawnClearance = t.SpawnClearance
	g.SpawnAttempts = t.SpawnAttempts
	g.TargetSpeed = t.TargetSpeed
	g.TargetMinSeparation = t.TargetMinSeparation
	g.BulletSpeed = t.BulletSpeed
	g.BulletLifetime = t.BulletLifetime
	g.MaxHealth = t.MaxHealth
	g.EnemyDamage = t.EnemyDamage
	g.DamageRadius = t.DamageRadius
	g.DamageCooldown = t.DamageCooldown
	g.RespawnTime = t.RespawnTime
	g.PlayerSpeed = t.PlayerSpeed
	g.ArenaLimit = t.ArenaLimit
	g.CameraDistance = t.CameraDistance
	g.CameraHeight = t.CameraHeight
	g.MouseSensitivity = t.MouseSensitivity
	g.MaxPitch = t.MaxPitch
	g.FieldOfView = t.FieldOfView
	g.NavDebounce = t.NavDebounce
	g.MaxFrameDelta = t.MaxFrameDelta
	return g
}

// CueVolumes maps configured volumes onto cues, ignoring unknown names
func (c Config) CueVolumes() map[game.Cue]float64 {
	known := make(map[string]game.Cue, len(game.Cues))
	for _, cue := range game.Cues {
		known[strings.ToLower(string(cue))] = cue
	}
	out := make(map[game.Cue]float64)
	for name, vol := range c.Audio.Volumes {
		if cue, ok := known[strings.ToLower(name)]; ok {
			out[cue] = vol
		}
	}
	return out
}
