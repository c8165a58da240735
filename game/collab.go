package game

import (
	"image/color"

	"golang.org/x/image/math/f32"
)

// AnimationHandle is one animation playback instance.
// The simulation owns every handle it obtains and calls Release exactly once.
type AnimationHandle interface {
	// Play switches to the named clip and restarts it
	Play(clip string)

	// Advance moves playback forward by dt seconds
	Advance(dt float64)

	// BoneMatrices returns the current per-bone transforms in bone order
	BoneMatrices() []f32.Mat4

	// Release frees the instance; the handle must not be used afterwards
	Release()
}

// AnimationSource creates playback handles for one skinned model
type AnimationSource interface {
	NewHandle() AnimationHandle
}

// ShaderContext receives uniforms by name
type ShaderContext interface {
	SetMat4(name string, m f32.Mat4)
	SetVec3(name string, v Vec3)
	SetFloat(name string, f float64)
}

// SkinnedModel draws itself with whatever the shader context currently holds
type SkinnedModel interface {
	Draw(sh ShaderContext)
}

// TextSurface draws HUD text. Positions are screen pixels, origin top-left.
type TextSurface interface {
	DrawText(s string, x, y, scale float64, clr color.Color)
}

// Cue names a sound
type Cue string

const (
	CueMenuMusic Cue = "menu_music"
	CueGameMusic Cue = "game_music"
	CueGunshot   Cue = "gunshot"
	CueHit       Cue = "hit"
	CueGameOver  Cue = "game_over"
	CueNavigate  Cue = "menu_navigate"
	CueStart     Cue = "start"
	CueReturn    Cue = "return"
)

// Cues lists every cue the game may request
var Cues = []Cue{
	CueMenuMusic,
	CueGameMusic,
	CueGunshot,
	CueHit,
	CueGameOver,
	CueNavigate,
	CueStart,
	CueReturn,
}

// AudioSink plays named cues. Unavailable cues are silent no-ops.
type AudioSink interface {
	Play(c Cue)
	Stop(c Cue)
	SetVolume(c Cue, volume float64)
}

type silentAudio struct{}

func (silentAudio) Play(Cue)               {}
func (silentAudio) Stop(Cue)               {}
func (silentAudio) SetVolume(Cue, float64) {}
