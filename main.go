package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"grannyarena/anim"
	"grannyarena/audio"
	"grannyarena/client"
	"grannyarena/config"
	"grannyarena/game"
	"grannyarena/logging"
	"grannyarena/telemetry"
)

// Logger is the process logger; it is replaced once config is loaded
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

func main() {
	configDir := flag.String("config", ".", "Directory containing arena.json")
	profile := flag.Bool("profile", false, "Capture a CPU profile and trace when frames stall")
	flag.Parse()

	start := time.Now()
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	cfg, err := config.Load(*configDir)
	if err != nil {
		Logger.Fatal().Err(err).Str("dir", *configDir).Msg("Failed to load config")
	}

	logFile, logPath, err := logging.OpenFile(cfg.LogsDir, "arena", start)
	if err != nil {
		Logger.Fatal().Err(err).Msg("Failed to open log file")
	}
	defer logFile.Close()

	Logger = logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Console: os.Stdout,
		File:    logFile,
	})
	Logger.Info().Str("loglevel", logging.ParseLevel(cfg.LogLevel).String()).Str("file", logPath).Msg("Logging set up")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Telemetry.Enabled {
		tel := telemetry.Setup(Logger)
		go tel.Run(ctx, cfg.Telemetry.Interval)
		defer func() {
			tel.Report(context.Background())
			if err := tel.Shutdown(context.Background()); err != nil {
				Logger.Warn().Err(err).Msg("Telemetry shutdown failed")
			}
		}()
	}

	sound := setupAudio(cfg)
	defer sound.Close()

	targets := anim.NewPool("targets", anim.TargetLibrary(), Logger)
	players := anim.NewPool("players", anim.PlayerLibrary(), Logger)
	if err := targets.Validate(game.ClipTargetRun); err != nil {
		Logger.Fatal().Err(err).Msg("Target animations incomplete")
	}
	if err := players.Validate(game.PlayerClips()...); err != nil {
		Logger.Fatal().Err(err).Msg("Player animations incomplete")
	}

	metrics, err := game.NewMetrics()
	if err != nil {
		Logger.Fatal().Err(err).Msg("Failed to create metrics")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = start.UnixNano()
	}

	// Only the game loop goroutine logs through gameLogger
	var g *game.Game
	gameLogger := logging.WithMode(Logger, func() string {
		if g == nil {
			return "init"
		}
		return g.Mode().String()
	})

	input := client.NewInput()
	g, err = game.NewGame(cfg.GameConfig(), game.Deps{
		Input:       input,
		TargetAnims: targets,
		PlayerAnims: players,
		Audio:       sound,
		Metrics:     metrics,
		Logger:      gameLogger,
		Rand:        rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		Logger.Fatal().Err(err).Msg("Failed to create game")
	}

	var profiler *client.Profiler
	if *profile {
		opts := client.DefaultProfilerOptions()
		profiler = client.NewProfiler(opts, Logger)
	}

	runner := client.NewRunner(g, input, cfg.Debug, profiler, Logger)
	runner.OnClose(func() {
		ts, ps := targets.Stats(), players.Stats()
		ev := Logger.Info()
		if ts.Leaked() || ps.Leaked() || ts.Misuse > 0 || ps.Misuse > 0 {
			ev = Logger.Warn()
		}
		ev.Interface("targets", ts).Interface("players", ps).Msg("Animation handles at shutdown")
	})

	Logger.Info().Int64("seed", seed).Msg("Starting arena")
	if err := runner.Run(client.WindowOptions{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
	}); err != nil {
		Logger.Error().Err(err).Msg("Game loop failed")
		return
	}
	if profiler != nil {
		profiler.Wait()
	}
}

// setupAudio opens the speaker and loads every cue. Failures leave the game silent.
func setupAudio(cfg config.Config) *audio.Manager {
	sound := audio.NewManager(Logger.With().Str("component", "audio").Logger())
	if !cfg.Audio.Enabled {
		Logger.Info().Msg("Audio disabled")
		return sound
	}
	for cue, vol := range cfg.CueVolumes() {
		sound.SetVolume(cue, vol)
	}
	if err := sound.Init(); err != nil {
		Logger.Warn().Err(err).Msg("Audio device unavailable, playing silent")
		return sound
	}
	sound.Load(cfg.Audio.Dir, audio.DefaultFiles())
	return sound
}
