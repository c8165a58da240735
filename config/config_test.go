package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grannyarena/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(body), 0644))
	return dir
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "./logs", cfg.LogsDir)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.True(t, cfg.Audio.Enabled)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Telemetry.Interval)
	assert.Equal(t, game.DefaultConfig(), cfg.GameConfig())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := writeConfig(t, `{
		"logLevel": "debug",
		"seed": 42,
		"game": { "spawnInterval": 1.5, "damageCooldown": "500ms", "enemyDamage": 25 },
		"window": { "title": "Test" },
		"audio": { "volumes": { "Gunshot": 0.5, "nonsense": 1 } }
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "Test", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)

	g := cfg.GameConfig()
	assert.Equal(t, 1.5, g.SpawnInterval)
	assert.Equal(t, 500*time.Millisecond, g.DamageCooldown)
	assert.Equal(t, 25.0, g.EnemyDamage)
	assert.Equal(t, game.DefaultConfig().BulletSpeed, g.BulletSpeed)

	assert.Equal(t, map[game.Cue]float64{game.CueGunshot: 0.5}, cfg.CueVolumes())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ARENA_LOGLEVEL", "warn")
	t.Setenv("ARENA_GAME_RESPAWNTIME", "5")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 5.0, cfg.GameConfig().RespawnTime)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, `{ "logLevel": `)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_RejectsInvalidTuning(t *testing.T) {
	dir := writeConfig(t, `{ "game": { "spawnInterval": 0, "maxHealth": -1 } }`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.spawnInterval")
	assert.Contains(t, err.Error(), "game.maxHealth")
}

func TestLoad_RejectsImpossibleTuning(t *testing.T) {
	tests := []struct {
		name  string
		game  string
		field string
	}{
		{"healing contact", `"enemyDamage": -20`, "game.enemyDamage"},
		{"zero damage", `"enemyDamage": 0`, "game.enemyDamage"},
		{"clearance outside spawn square", `"spawnRange": 2, "spawnClearance": 3`, "game.spawnClearance"},
		{"negative clearance", `"spawnClearance": -1`, "game.spawnClearance"},
		{"empty spawn square", `"spawnRange": 0`, "game.spawnRange"},
		{"negative bullet lifetime", `"bulletLifetime": -1`, "game.bulletLifetime"},
		{"negative separation", `"targetMinSeparation": -0.5`, "game.targetMinSeparation"},
		{"negative damage radius", `"damageRadius": -0.8`, "game.damageRadius"},
		{"negative nav debounce", `"navDebounce": "-150ms"`, "game.navDebounce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfig(t, `{ "game": { `+tt.game+` } }`)

			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoad_EnvCannotMakeContactHeal(t *testing.T) {
	t.Setenv("ARENA_GAME_ENEMYDAMAGE", "-20")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.enemyDamage")
}
