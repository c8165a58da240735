// Command soak drives the arena headlessly with a scripted player and the
// real animator pools, then checks that every animation handle was released.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"grannyarena/anim"
	"grannyarena/config"
	"grannyarena/game"
	"grannyarena/logging"
	"grannyarena/telemetry"
)

// result summarises one soak run
type result struct {
	Frames  int
	Score   game.Score
	Targets anim.Stats
	Players anim.Stats
	Metrics map[string]int64
}

func (r result) ok() bool {
	return !r.Targets.Leaked() && !r.Players.Leaked() && r.Targets.Misuse == 0 && r.Players.Misuse == 0
}

func main() {
	configDir := flag.String("config", ".", "Directory containing arena.json")
	duration := flag.Duration("duration", 10*time.Minute, "Simulated play time")
	seed := flag.Int64("seed", 1, "Random seed for spawns and the scripted player")
	fps := flag.Int("fps", 60, "Simulated frames per second")
	level := flag.String("log-level", "", "Override the configured log level")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "soak: %v\n", err)
		os.Exit(2)
	}
	if *level != "" {
		cfg.LogLevel = *level
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Console: os.Stdout})
	if *fps <= 0 {
		logger.Fatal().Int("fps", *fps).Msg("fps must be positive")
	}

	tel := telemetry.Setup(logger)
	defer tel.Shutdown(context.Background())

	res, err := run(cfg.GameConfig(), *duration, *fps, *seed, tel, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("soak run failed")
	}

	logger.Info().
		Int("frames", res.Frames).
		Int("high_score", res.Score.High).
		Int64("deaths", res.Metrics["arena.player.deaths"]).
		Int64("kills", res.Metrics["arena.targets.killed"]).
		Interface("targets", res.Targets).
		Interface("players", res.Players).
		Msg("soak finished")
	tel.Report(context.Background())

	if !res.ok() {
		logger.Error().Msg("animation handles leaked or misused")
		os.Exit(1)
	}
}

// run simulates duration of game time at fps frames per second
func run(cfg game.Config, duration time.Duration, fps int, seed int64, tel *telemetry.Telemetry, logger zerolog.Logger) (result, error) {
	targets := anim.NewPool("targets", anim.TargetLibrary(), logger)
	players := anim.NewPool("players", anim.PlayerLibrary(), logger)
	if err := targets.Validate(game.ClipTargetRun); err != nil {
		return result{}, err
	}
	if err := players.Validate(game.PlayerClips()...); err != nil {
		return result{}, err
	}

	metrics, err := game.NewMetrics()
	if err != nil {
		return result{}, err
	}

	rng := rand.New(rand.NewSource(seed))
	b := newBot(rand.New(rand.NewSource(seed+1)), cfg)
	g, err := game.NewGame(cfg, game.Deps{
		Input:       b,
		TargetAnims: targets,
		PlayerAnims: players,
		Metrics:     metrics,
		Logger:      logging.Sampled(logger),
		Rand:        rng,
	})
	if err != nil {
		return result{}, err
	}
	b.game = g

	dt := time.Second / time.Duration(fps)
	frames := int(duration / dt)
	for frame := 0; frame < frames; frame++ {
		b.plan(frame, dt)
		if err := g.Update(); err != nil {
			g.Close()
			return result{}, fmt.Errorf("frame %d: %w", frame, err)
		}
	}

	score := g.Score()
	g.Close()

	res := result{
		Frames:  frames,
		Score:   score,
		Targets: targets.Stats(),
		Players: players.Stats(),
	}
	if tel != nil {
		res.Metrics, err = tel.Snapshot(context.Background())
		if err != nil {
			return res, err
		}
	}
	return res, nil
}
