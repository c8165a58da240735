// Package anim provides procedural skeletal animation playback for the
// arena's skinned models.
package anim

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/image/math/f32"

	"grannyarena/game"
)

var (
	// ErrUnknownClip is returned when a requested clip is not in the library
	ErrUnknownClip = errors.New("anim: unknown clip")

	// ErrReleased marks use of a handle after Release
	ErrReleased = errors.New("anim: handle used after release")
)

// DefaultBones is the bone count of the stock rigs
const DefaultBones = 12

// Clip is a looping procedural motion. Bone i swings about its X axis by
// Amplitude*sin(2*pi*t/Duration + i*PhaseStep) radians.
type Clip struct {
	Name      string
	Duration  float64
	Amplitude float64
	PhaseStep float64
}

// Pose returns the per-bone transforms at time t
func (c Clip) Pose(t float64, bones int, dst []f32.Mat4) []f32.Mat4 {
	dst = dst[:0]
	w := 2 * math.Pi / c.Duration
	for i := 0; i < bones; i++ {
		angle := c.Amplitude * math.Sin(w*t+float64(i)*c.PhaseStep)
		dst = append(dst, game.RotateX(angle))
	}
	return dst
}

// Library is a named set of clips sharing one rig
type Library struct {
	bones int
	clips map[string]Clip
}

// NewLibrary creates a library over a rig with the given bone count
func NewLibrary(bones int, clips ...Clip) (*Library, error) {
	if bones <= 0 {
		return nil, fmt.Errorf("anim: bone count must be positive, got %d", bones)
	}
	l := &Library{
		bones: bones,
		clips: make(map[string]Clip, len(clips)),
	}
	for _, c := range clips {
		if c.Duration <= 0 {
			return nil, fmt.Errorf("anim: clip %q has non-positive duration", c.Name)
		}
		if _, dup := l.clips[c.Name]; dup {
			return nil, fmt.Errorf("anim: duplicate clip %q", c.Name)
		}
		l.clips[c.Name] = c
	}
	return l, nil
}

// Bones returns the rig's bone count
func (l *Library) Bones() int {
	return l.bones
}

// Clip looks up a clip by name
func (l *Library) Clip(name string) (Clip, bool) {
	c, ok := l.clips[name]
	return c, ok
}

// Names returns the clip names in sorted order
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.clips))
	for n := range l.clips {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every named clip exists
func (l *Library) Validate(names ...string) error {
	var missing []error
	for _, n := range names {
		if _, ok := l.clips[n]; !ok {
			missing = append(missing, fmt.Errorf("%w: %q", ErrUnknownClip, n))
		}
	}
	return errors.Join(missing...)
}

// PlayerLibrary returns the player rig: idle plus eight run directions
func PlayerLibrary() *Library {
	clips := []Clip{{Name: game.ClipIdle, Duration: 2.4, Amplitude: 0.05, PhaseStep: 0.2}}
	for i, name := range game.PlayerClips()[1:] {
		clips = append(clips, Clip{
			Name:      name,
			Duration:  0.7,
			Amplitude: 0.6,
			PhaseStep: 0.5 + 0.05*float64(i),
		})
	}
	l, err := NewLibrary(DefaultBones, clips...)
	if err != nil {
		panic(err)
	}
	return l
}

// TargetLibrary returns the hostile runner rig
func TargetLibrary() *Library {
	l, err := NewLibrary(DefaultBones, Clip{
		Name:      game.ClipTargetRun,
		Duration:  0.6,
		Amplitude: 0.7,
		PhaseStep: math.Pi / 2,
	})
	if err != nil {
		panic(err)
	}
	return l
}
