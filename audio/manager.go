// Package audio plays the arena's sound cues through the beep speaker.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog"

	"grannyarena/game"
)

const (
	sampleRate      = beep.SampleRate(44100)
	resampleQuality = 4
)

// mixFormat is the format every cue is converted to before buffering
var mixFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// DefaultFiles maps each cue to its file name in the sound directory
func DefaultFiles() map[game.Cue]string {
	return map[game.Cue]string{
		game.CueMenuMusic: "_menuback.wav",
		game.CueGameMusic: "_gameback.wav",
		game.CueGunshot:   "_gunshot.wav",
		game.CueHit:       "_heal.wav",
		game.CueGameOver:  "_gameover.wav",
		game.CueNavigate:  "_choosebutton.wav",
		game.CueStart:     "_startgame.wav",
		game.CueReturn:    "_gameback.wav",
	}
}

// DefaultVolumes are linear gains per cue; unlisted cues play at 1
func DefaultVolumes() map[game.Cue]float64 {
	return map[game.Cue]float64{
		game.CueMenuMusic: 0.30,
		game.CueGameMusic: 0.25,
		game.CueNavigate:  0.80,
		game.CueHit:       0.60,
	}
}

// isMusic reports whether a cue loops until stopped
func isMusic(c game.Cue) bool {
	return c == game.CueMenuMusic || c == game.CueGameMusic
}

// Manager implements game.AudioSink. Cues that failed to load, or every cue
// before Init succeeds, are silent.
type Manager struct {
	mu          sync.Mutex
	logger      zerolog.Logger
	mixer       *beep.Mixer
	buffers     map[game.Cue]*beep.Buffer
	volumes     map[game.Cue]float64
	music       map[game.Cue]*beep.Ctrl
	initialized bool
}

// NewManager creates a manager with no cues loaded
func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		logger:  logger,
		mixer:   &beep.Mixer{},
		buffers: make(map[game.Cue]*beep.Buffer),
		volumes: DefaultVolumes(),
		music:   make(map[game.Cue]*beep.Ctrl),
	}
}

// Init opens the output device and starts the mixer
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Load decodes every cue file under dir. Failures are logged and leave the
// cue silent; the number of cues loaded is returned.
func (m *Manager) Load(dir string, files map[game.Cue]string) int {
	loaded := 0
	for cue, name := range files {
		path := filepath.Join(dir, name)
		buf, err := decodeFile(path)
		if err != nil {
			m.logger.Warn().Err(err).Str("cue", string(cue)).Str("path", path).Msg("sound cue unavailable, playing silent")
			continue
		}
		m.mu.Lock()
		m.buffers[cue] = buf
		m.mu.Unlock()
		loaded++
	}
	m.logger.Info().Int("loaded", loaded).Int("requested", len(files)).Str("dir", dir).Msg("sound cues loaded")
	return loaded
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, sampleRate, s)
	}
	buf := beep.NewBuffer(mixFormat)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if buf.Len() == 0 {
		return nil, errors.New("empty sound file")
	}
	return buf, nil
}

// Loaded reports whether the cue has audio data
func (m *Manager) Loaded(c game.Cue) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.buffers[c]
	return ok
}

func (m *Manager) volumeFor(c game.Cue, s beep.Streamer) beep.Streamer {
	v, ok := m.volumes[c]
	if !ok || v == 1 {
		return s
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(math.Max(v, 1e-6)),
		Silent:   v <= 0,
	}
}

// Play starts a cue. Music restarts from the top and loops; effects overlap.
func (m *Manager) Play(c game.Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, ok := m.buffers[c]
	if !ok || !m.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	if isMusic(c) {
		if prev, ok := m.music[c]; ok {
			prev.Paused = true
			prev.Streamer = nil
		}
		loop := beep.Loop(-1, buf.Streamer(0, buf.Len()))
		ctrl := &beep.Ctrl{Streamer: m.volumeFor(c, loop)}
		m.music[c] = ctrl
		m.mixer.Add(ctrl)
		return
	}
	m.mixer.Add(m.volumeFor(c, buf.Streamer(0, buf.Len())))
}

// Stop silences a looping cue; one-shot effects run to completion
func (m *Manager) Stop(c game.Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctrl, ok := m.music[c]
	if !ok {
		return
	}
	delete(m.music, c)
	if !m.initialized {
		return
	}
	speaker.Lock()
	ctrl.Paused = true
	ctrl.Streamer = nil
	speaker.Unlock()
}

// SetVolume sets a cue's linear gain for subsequent plays
func (m *Manager) SetVolume(c game.Cue, volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumes[c] = volume
}

// Close stops every sound
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	for c, ctrl := range m.music {
		ctrl.Paused = true
		ctrl.Streamer = nil
		delete(m.music, c)
	}
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

var _ game.AudioSink = (*Manager)(nil)
