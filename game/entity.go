package game

// Projectile is a bullet fired by the player
type Projectile struct {
	// Position in world coordinates
	Position Vec3

	// Direction of travel (unit vector)
	Direction Vec3

	// Speed in units per second
	Speed float64

	// Life is the remaining lifetime in seconds
	Life float64
}

// Update advances the projectile and reports whether it is still alive
func (p *Projectile) Update(deltaTime float64) bool {
	p.Position = p.Position.Add(p.Direction.Scale(p.Speed * deltaTime))
	p.Life -= deltaTime
	return p.Life > 0
}

// Target is a hostile runner chasing the player
type Target struct {
	// Position in world coordinates
	Position Vec3

	// Speed in units per second
	Speed float64

	// BoundsMin and BoundsMax are the local-space AABB corners
	BoundsMin, BoundsMax Vec3

	// Scale is the uniform model scale, also applied to the bounds
	Scale float64

	// anim is owned by the target from spawn until release
	anim AnimationHandle
}

// NewTarget creates a target that owns anim and starts it on the given clip
func NewTarget(pos Vec3, config Config, anim AnimationHandle, clip string) *Target {
	anim.Play(clip)
	return &Target{
		Position:  pos,
		Speed:     config.TargetSpeed,
		BoundsMin: config.TargetBoundsMin,
		BoundsMax: config.TargetBoundsMax,
		Scale:     config.TargetScale,
		anim:      anim,
	}
}

// Anim returns the target's playback handle; nil once released
func (t *Target) Anim() AnimationHandle {
	return t.anim
}

// WorldBounds returns the world-space AABB. Rotation is not applied.
func (t *Target) WorldBounds() (min, max Vec3) {
	min = t.Position.Add(t.BoundsMin.Scale(t.Scale))
	max = t.Position.Add(t.BoundsMax.Scale(t.Scale))
	return min, max
}

// Steer moves the target toward dest, stopping at minSeparation.
// The direction is normalised in full 3D.
func (t *Target) Steer(dest Vec3, minSeparation, deltaTime float64) {
	toDest := dest.Sub(t.Position)
	distance := toDest.Len()
	if distance <= minSeparation {
		return
	}
	step := t.Speed * deltaTime
	if step > distance-minSeparation {
		step = distance - minSeparation
	}
	t.Position = t.Position.Add(toDest.Scale(step / distance))
}

// release frees the animation handle; safe to call once per target only
func (t *Target) release() {
	if t.anim == nil {
		return
	}
	t.anim.Release()
	t.anim = nil
}
