package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrCaptureBusy is returned while a capture is running or cooling down
var ErrCaptureBusy = errors.New("profile capture busy")

// ProfilerOptions configures NewProfiler
type ProfilerOptions struct {
	Dir             string
	StallThreshold  time.Duration
	CaptureDuration time.Duration
	Cooldown        time.Duration
}

// DefaultProfilerOptions captures 5s of data when a frame takes over 250ms,
// at most once every 10s
func DefaultProfilerOptions() ProfilerOptions {
	return ProfilerOptions{
		Dir:             "profiles",
		StallThreshold:  250 * time.Millisecond,
		CaptureDuration: 5 * time.Second,
		Cooldown:        10 * time.Second,
	}
}

// Profiler captures a CPU profile and an execution trace when frames stall
type Profiler struct {
	mu          sync.Mutex
	opts        ProfilerOptions
	logger      zerolog.Logger
	isProfiling bool
	lastCapture time.Time
	wg          sync.WaitGroup
}

// NewProfiler creates a profiler writing into opts.Dir
func NewProfiler(opts ProfilerOptions, logger zerolog.Logger) *Profiler {
	return &Profiler{
		opts:   opts,
		logger: logger.With().Str("component", "profiler").Logger(),
	}
}

// Observe records one frame's wall time and starts a capture if it stalled.
// It reports whether a capture was started.
func (p *Profiler) Observe(frame time.Duration) bool {
	if p.opts.StallThreshold <= 0 || frame < p.opts.StallThreshold {
		return false
	}
	err := p.CaptureProfile(fmt.Sprintf("stall-%dms", frame.Milliseconds()))
	if err != nil {
		p.logger.Debug().Err(err).Dur("frame", frame).Msg("frame stall not captured")
		return false
	}
	p.logger.Warn().Dur("frame", frame).Msg("frame stall, capturing profile")
	return true
}

// CaptureProfile captures CPU profile and trace in the background
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("%w: already profiling", ErrCaptureBusy)
	}
	if !p.lastCapture.IsZero() && time.Since(p.lastCapture) < p.opts.Cooldown {
		return fmt.Errorf("%w: last capture was %v ago", ErrCaptureBusy, time.Since(p.lastCapture).Round(time.Millisecond))
	}
	if err := os.MkdirAll(p.opts.Dir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	p.isProfiling = true
	p.lastCapture = time.Now()
	baseName := fmt.Sprintf("%s-%s", p.lastCapture.Format("20060102-150405"), reason)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.logger.Error().Err(err).Msg("capturing CPU profile")
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Error().Err(err).Msg("capturing trace")
			}
		}()
		wg.Wait()

		p.logSummary(baseName)
	}()
	return nil
}

// Wait blocks until any running capture has finished
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	path := filepath.Join(p.opts.Dir, baseName+".cpu.prof")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("start CPU profile: %w", err)
	}
	time.Sleep(p.opts.CaptureDuration)
	pprof.StopCPUProfile()

	p.logger.Info().Str("path", path).Msg("CPU profile saved")
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	path := filepath.Join(p.opts.Dir, baseName+".trace")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("start trace: %w", err)
	}
	time.Sleep(p.opts.CaptureDuration)
	trace.Stop()

	p.logger.Info().Str("path", path).Msg("trace saved")
	return nil
}

func (p *Profiler) logSummary(baseName string) {
	path := filepath.Join(p.opts.Dir, baseName+".cpu.prof")
	info, err := os.Stat(path)
	if err != nil {
		p.logger.Warn().Err(err).Msg("could not inspect profile")
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info().
		Str("profile", path).
		Int64("size_bytes", info.Size()).
		Uint64("alloc_kb", m.Alloc/1024).
		Uint64("sys_kb", m.Sys/1024).
		Uint32("num_gc", m.NumGC).
		Uint64("heap_objects", m.HeapObjects).
		Str("view", "go tool pprof -http=:8080 "+path).
		Msg("profile captured")
}
