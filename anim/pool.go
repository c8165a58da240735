package anim

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/image/math/f32"

	"grannyarena/game"
)

// Animator is one playback instance. It implements game.AnimationHandle.
type Animator struct {
	pool *Pool
	id   uint64

	clip     Clip
	time     float64
	bones    []f32.Mat4
	released bool
}

// Play switches to the named clip and restarts it. Unknown clips keep the
// current one playing.
func (a *Animator) Play(name string) {
	if a.released {
		a.pool.misused(a.id, "play")
		return
	}
	c, ok := a.pool.lib.Clip(name)
	if !ok {
		a.pool.logger.Warn().
			Err(fmt.Errorf("%w: %q", ErrUnknownClip, name)).
			Str("current", a.clip.Name).
			Msg("clip not found, keeping current")
		return
	}
	a.clip = c
	a.time = 0
	a.bones = c.Pose(0, a.pool.lib.bones, a.bones)
}

// Advance moves playback forward, looping at the clip's end
func (a *Animator) Advance(dt float64) {
	if a.released {
		a.pool.misused(a.id, "advance")
		return
	}
	if a.clip.Duration <= 0 || dt <= 0 {
		return
	}
	a.time = math.Mod(a.time+dt, a.clip.Duration)
	a.bones = a.clip.Pose(a.time, a.pool.lib.bones, a.bones)
}

// BoneMatrices returns the current pose. The slice is reused by the next
// Advance or Play.
func (a *Animator) BoneMatrices() []f32.Mat4 {
	if a.released {
		a.pool.misused(a.id, "bones")
		return nil
	}
	return a.bones
}

// Clip returns the name of the playing clip
func (a *Animator) Clip() string {
	return a.clip.Name
}

// Time returns the playback position in seconds
func (a *Animator) Time() float64 {
	return a.time
}

// Release returns the instance to the pool. A second release is recorded as
// misuse and otherwise ignored.
func (a *Animator) Release() {
	if a.released {
		a.pool.misused(a.id, "release")
		return
	}
	a.released = true
	a.bones = nil
	a.pool.release(a.id)
}

// Stats summarises a pool's handle accounting
type Stats struct {
	Created  int
	Released int
	Live     int
	Misuse   int
}

// Leaked reports whether any handle is still live
func (s Stats) Leaked() bool {
	return s.Live > 0
}

// Pool hands out animators for one library and tracks their lifetimes
type Pool struct {
	name   string
	lib    *Library
	logger zerolog.Logger

	live     map[uint64]*Animator
	nextID   uint64
	created  int
	released int
	misuse   int
}

// NewPool creates a pool over lib. name tags log lines.
func NewPool(name string, lib *Library, logger zerolog.Logger) *Pool {
	return &Pool{
		name:   name,
		lib:    lib,
		logger: logger.With().Str("pool", name).Logger(),
		live:   make(map[uint64]*Animator),
	}
}

// NewHandle creates a live animator with no clip selected
func (p *Pool) NewHandle() game.AnimationHandle {
	return p.NewAnimator()
}

// NewAnimator is NewHandle with the concrete type
func (p *Pool) NewAnimator() *Animator {
	p.nextID++
	a := &Animator{
		pool:  p,
		id:    p.nextID,
		bones: make([]f32.Mat4, 0, p.lib.bones),
	}
	p.live[a.id] = a
	p.created++
	p.logger.Trace().Uint64("handle", a.id).Int("live", len(p.live)).Msg("animator created")
	return a
}

func (p *Pool) release(id uint64) {
	delete(p.live, id)
	p.released++
	p.logger.Trace().Uint64("handle", id).Int("live", len(p.live)).Msg("animator released")
}

func (p *Pool) misused(id uint64, op string) {
	p.misuse++
	p.logger.Error().
		Err(ErrReleased).
		Uint64("handle", id).
		Str("op", op).
		Msg("animator misuse")
}

// Library returns the pool's clip library
func (p *Pool) Library() *Library {
	return p.lib
}

// Live returns the number of unreleased handles
func (p *Pool) Live() int {
	return len(p.live)
}

// Stats returns the pool's accounting
func (p *Pool) Stats() Stats {
	return Stats{
		Created:  p.created,
		Released: p.released,
		Live:     len(p.live),
		Misuse:   p.misuse,
	}
}

// Validate checks that the pool's library provides every named clip
func (p *Pool) Validate(names ...string) error {
	if err := p.lib.Validate(names...); err != nil {
		return fmt.Errorf("pool %s: %w", p.name, err)
	}
	return nil
}
