package game

import "time"

// Config holds the arena tuning constants
type Config struct {
	// SpawnInterval is the time between hostile target spawns in seconds
	SpawnInterval float64

	// SpawnRange is the half-width of the square spawn region centred on the origin
	SpawnRange float64

	// SpawnHeight is the vertical coordinate of newly spawned targets
	SpawnHeight float64

	// SpawnClearance is the minimum distance between a new target and the player
	SpawnClearance float64

	// SpawnAttempts caps the rejection sampling loop for one placement
	SpawnAttempts int

	// TargetSpeed is the hostile target movement speed in units per second
	TargetSpeed float64

	// TargetMinSeparation is the distance at which targets stop closing in
	TargetMinSeparation float64

	// TargetScale is the uniform model scale applied to a target's bounds
	TargetScale float64

	// TargetBoundsMin and TargetBoundsMax are the target's local-space AABB corners
	TargetBoundsMin Vec3
	TargetBoundsMax Vec3

	// BulletSpeed is the projectile speed in units per second
	BulletSpeed float64

	// BulletLifetime is the projectile lifetime in seconds
	BulletLifetime float64

	// BulletOffset is the muzzle offset from the player position
	BulletOffset Vec3

	// MaxHealth is the player's full health
	MaxHealth float64

	// EnemyDamage is the health removed by one proximity damage event
	EnemyDamage float64

	// DamageRadius is the proximity distance below which targets hurt the player
	DamageRadius float64

	// DamageCooldown is the minimum wall-clock time between damage events
	DamageCooldown time.Duration

	// RespawnTime is how long the player stays dead, in seconds
	RespawnTime float64

	// PlayerSpeed is the player movement speed in units per second
	PlayerSpeed float64

	// PlayerScale is the player's uniform model scale
	PlayerScale float64

	// SpawnPoint is where the player starts and respawns
	SpawnPoint Vec3

	// ArenaLimit clamps the player's X and Z coordinates to [-ArenaLimit, ArenaLimit]
	ArenaLimit float64

	// CameraDistance is the orbit distance behind the player
	CameraDistance float64

	// CameraHeight is the orbit height above the player
	CameraHeight float64

	// CameraLookHeight is the vertical offset of the look target above the player
	CameraLookHeight float64

	// MouseSensitivity scales pointer deltas into degrees
	MouseSensitivity float64

	// MaxPitch clamps the camera pitch in degrees
	MaxPitch float64

	// FieldOfView is the vertical field of view in degrees
	FieldOfView float64

	// NavDebounce is the minimum re-trigger interval of menu navigation
	NavDebounce time.Duration

	// MaxFrameDelta clamps a single frame's dt in seconds
	MaxFrameDelta float64
}

// DefaultConfig returns the arena's default tuning
func DefaultConfig() Config {
	return Config{
		SpawnInterval:       3.0,
		SpawnRange:          12.0,
		SpawnHeight:         0.1,
		SpawnClearance:      2.5,
		SpawnAttempts:       64,
		TargetSpeed:         1.2,
		TargetMinSeparation: 0.5,
		TargetScale:         0.6,
		TargetBoundsMin:     Vec3{-0.3, 0.0, -0.3},
		TargetBoundsMax:     Vec3{0.3, 1.5, 0.3},
		BulletSpeed:         15.0,
		BulletLifetime:      3.0,
		BulletOffset:        Vec3{-0.1, 0.8, 0.0},
		MaxHealth:           100.0,
		EnemyDamage:         20.0,
		DamageRadius:        0.8,
		DamageCooldown:      time.Second,
		RespawnTime:         3.0,
		PlayerSpeed:         2.5,
		PlayerScale:         0.5,
		SpawnPoint:          Vec3{0.0, 0.09, 0.0},
		ArenaLimit:          15.0,
		CameraDistance:      3.0,
		CameraHeight:        1.5,
		CameraLookHeight:    1.0,
		MouseSensitivity:    0.1,
		MaxPitch:            45.0,
		FieldOfView:         45.0,
		NavDebounce:         150 * time.Millisecond,
		MaxFrameDelta:       0.1,
	}
}
