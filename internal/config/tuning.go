package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// SwimTuning is the root configuration for the swim motion core. Every field
// is optional: omitted fields fall back to the defaults returned by the
// matching Get* accessor, so partial files are safe.
type SwimTuning struct {
	// Pool geometry
	PoolLengthM *float64 `json:"pool_length_m,omitempty"`
	WallOffsetM *float64 `json:"wall_offset_m,omitempty"`
	LaneSpacing *float64 `json:"lane_spacing_m,omitempty"`

	// Glide distances (the phase time ratios are fixed, not tunable)
	StartGlideDistanceM *float64 `json:"start_glide_distance_m,omitempty"`
	EndGlideDistanceM   *float64 `json:"end_glide_distance_m,omitempty"`

	// Animation clips
	NominalCycleSeconds *float64 `json:"nominal_cycle_seconds,omitempty"`
	TurnClipSeconds     *float64 `json:"turn_clip_seconds,omitempty"`
	TurnGlideFrame      *float64 `json:"turn_glide_frame,omitempty"` // normalised clip position [0,1]
	TurnSquatFrame      *float64 `json:"turn_squat_frame,omitempty"` // normalised clip position [0,1]

	// Particles
	ParticleCapacity    *int     `json:"particle_capacity,omitempty"`
	GravityMps2         *float64 `json:"gravity_mps2,omitempty"`
	SpawnCooldown       *string  `json:"spawn_cooldown,omitempty"`        // duration string like "60ms"
	ParticleLifetimeMin *string  `json:"particle_lifetime_min,omitempty"` // duration string
	ParticleLifetimeMax *string  `json:"particle_lifetime_max,omitempty"` // duration string
	SpawnJitterM        *float64 `json:"spawn_jitter_m,omitempty"`
	HorizontalSpreadMps *float64 `json:"horizontal_spread_mps,omitempty"`
	VerticalImpulseMps  *float64 `json:"vertical_impulse_mps,omitempty"`
	SurfaceHeightM      *float64 `json:"surface_height_m,omitempty"`
	RandomSeed          *int64   `json:"random_seed,omitempty"`

	// Driver
	FrameRate *float64 `json:"frame_rate,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }
func ptrInt64(v int64) *int64       { return &v }

// EmptyTuningConfig returns a SwimTuning with all fields nil.
func EmptyTuningConfig() *SwimTuning {
	return &SwimTuning{}
}

// DefaultTuningConfig returns a SwimTuning with every field populated with
// its default value.
func DefaultTuningConfig() *SwimTuning {
	return &SwimTuning{
		PoolLengthM:         ptrFloat64(25),
		WallOffsetM:         ptrFloat64(0.5),
		LaneSpacing:         ptrFloat64(2.5),
		StartGlideDistanceM: ptrFloat64(3.0),
		EndGlideDistanceM:   ptrFloat64(1.2),
		NominalCycleSeconds: ptrFloat64(1.0),
		TurnClipSeconds:     ptrFloat64(2.0),
		TurnGlideFrame:      ptrFloat64(0.8),
		TurnSquatFrame:      ptrFloat64(0.3),
		ParticleCapacity:    ptrInt(1200),
		GravityMps2:         ptrFloat64(9.81),
		SpawnCooldown:       ptrString("60ms"),
		ParticleLifetimeMin: ptrString("350ms"),
		ParticleLifetimeMax: ptrString("900ms"),
		SpawnJitterM:        ptrFloat64(0.05),
		HorizontalSpreadMps: ptrFloat64(0.6),
		VerticalImpulseMps:  ptrFloat64(1.6),
		SurfaceHeightM:      ptrFloat64(0.02),
		RandomSeed:          ptrInt64(1),
		FrameRate:           ptrFloat64(60),
	}
}

// LoadTuningConfig loads a SwimTuning from a JSON file. The path must have a
// .json extension and the file must be under 1 MiB.
func LoadTuningConfig(path string) (*SwimTuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching from the current
// directory up towards the repository root. Panics if the file cannot be
// loaded; intended for tests and binaries.
func MustLoadDefaultConfig() *SwimTuning {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
		"../../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configured values are usable. Only fields that
// are set are checked.
func (c *SwimTuning) Validate() error {
	positive := []struct {
		name string
		v    *float64
	}{
		{"pool_length_m", c.PoolLengthM},
		{"nominal_cycle_seconds", c.NominalCycleSeconds},
		{"turn_clip_seconds", c.TurnClipSeconds},
		{"frame_rate", c.FrameRate},
		{"lane_spacing_m", c.LaneSpacing},
	}
	for _, p := range positive {
		if p.v != nil && !(*p.v > 0) || p.v != nil && math.IsInf(*p.v, 0) {
			return fmt.Errorf("%s must be a finite positive number, got %v", p.name, *p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    *float64
	}{
		{"wall_offset_m", c.WallOffsetM},
		{"start_glide_distance_m", c.StartGlideDistanceM},
		{"end_glide_distance_m", c.EndGlideDistanceM},
		{"gravity_mps2", c.GravityMps2},
		{"spawn_jitter_m", c.SpawnJitterM},
		{"horizontal_spread_mps", c.HorizontalSpreadMps},
		{"vertical_impulse_mps", c.VerticalImpulseMps},
		{"surface_height_m", c.SurfaceHeightM},
	}
	for _, p := range nonNegative {
		if p.v != nil && !(*p.v >= 0) || p.v != nil && math.IsInf(*p.v, 0) {
			return fmt.Errorf("%s must be a finite non-negative number, got %v", p.name, *p.v)
		}
	}

	if c.GetPoolLengthM() <= 2*c.GetWallOffsetM() {
		return fmt.Errorf("pool_length_m (%g) must exceed twice wall_offset_m (%g)", c.GetPoolLengthM(), c.GetWallOffsetM())
	}

	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"turn_glide_frame", c.TurnGlideFrame},
		{"turn_squat_frame", c.TurnSquatFrame},
	} {
		if f.v != nil && (*f.v < 0 || *f.v > 1) {
			return fmt.Errorf("%s must be between 0 and 1, got %f", f.name, *f.v)
		}
	}
	if c.GetTurnGlideFrame() <= c.GetTurnSquatFrame() {
		return fmt.Errorf("turn_glide_frame (%g) must be after turn_squat_frame (%g)", c.GetTurnGlideFrame(), c.GetTurnSquatFrame())
	}

	if c.ParticleCapacity != nil && *c.ParticleCapacity < 4 {
		return fmt.Errorf("particle_capacity must be at least 4, got %d", *c.ParticleCapacity)
	}

	for _, d := range []struct {
		name string
		v    *string
	}{
		{"spawn_cooldown", c.SpawnCooldown},
		{"particle_lifetime_min", c.ParticleLifetimeMin},
		{"particle_lifetime_max", c.ParticleLifetimeMax},
	} {
		if d.v != nil && *d.v != "" {
			parsed, err := time.ParseDuration(*d.v)
			if err != nil {
				return fmt.Errorf("invalid %s '%s': %w", d.name, *d.v, err)
			}
			if parsed < 0 {
				return fmt.Errorf("%s must be non-negative, got %s", d.name, *d.v)
			}
		}
	}
	if c.GetParticleLifetimeMax() < c.GetParticleLifetimeMin() {
		return fmt.Errorf("particle_lifetime_max (%s) is shorter than particle_lifetime_min (%s)",
			c.GetParticleLifetimeMax(), c.GetParticleLifetimeMin())
	}

	return nil
}

func parseDurationOr(v *string, def time.Duration) time.Duration {
	if v == nil || *v == "" {
		return def
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return def
	}
	return d
}

// GetPoolLengthM returns the pool length in metres.
func (c *SwimTuning) GetPoolLengthM() float64 {
	if c.PoolLengthM == nil {
		return 25
	}
	return *c.PoolLengthM
}

// GetWallOffsetM returns the distance kept between a swimmer and the wall.
func (c *SwimTuning) GetWallOffsetM() float64 {
	if c.WallOffsetM == nil {
		return 0.5
	}
	return *c.WallOffsetM
}

// GetLaneSpacingM returns the lateral distance between adjacent lanes.
func (c *SwimTuning) GetLaneSpacingM() float64 {
	if c.LaneSpacing == nil {
		return 2.5
	}
	return *c.LaneSpacing
}

// GetStartGlideDistanceM returns the push-off glide distance.
func (c *SwimTuning) GetStartGlideDistanceM() float64 {
	if c.StartGlideDistanceM == nil {
		return 3.0
	}
	return *c.StartGlideDistanceM
}

// GetEndGlideDistanceM returns the glide-in distance before the wall.
func (c *SwimTuning) GetEndGlideDistanceM() float64 {
	if c.EndGlideDistanceM == nil {
		return 1.2
	}
	return *c.EndGlideDistanceM
}

// GetNominalCycleSeconds returns the length of one stroke cycle in the clip.
func (c *SwimTuning) GetNominalCycleSeconds() float64 {
	if c.NominalCycleSeconds == nil {
		return 1.0
	}
	return *c.NominalCycleSeconds
}

// GetTurnClipSeconds returns the turn clip length.
func (c *SwimTuning) GetTurnClipSeconds() float64 {
	if c.TurnClipSeconds == nil {
		return 2.0
	}
	return *c.TurnClipSeconds
}

// GetTurnGlideFrame returns the normalised clip position the turn starts from.
func (c *SwimTuning) GetTurnGlideFrame() float64 {
	if c.TurnGlideFrame == nil {
		return 0.8
	}
	return *c.TurnGlideFrame
}

// GetTurnSquatFrame returns the normalised clip position the turn ends on.
func (c *SwimTuning) GetTurnSquatFrame() float64 {
	if c.TurnSquatFrame == nil {
		return 0.3
	}
	return *c.TurnSquatFrame
}

// GetParticleCapacity returns the fixed particle arena size per swimmer.
func (c *SwimTuning) GetParticleCapacity() int {
	if c.ParticleCapacity == nil {
		return 1200
	}
	return *c.ParticleCapacity
}

// GetGravityMps2 returns the downward acceleration applied to particles.
func (c *SwimTuning) GetGravityMps2() float64 {
	if c.GravityMps2 == nil {
		return 9.81
	}
	return *c.GravityMps2
}

// GetSpawnCooldown returns the per-emitter cooldown after a spawn.
func (c *SwimTuning) GetSpawnCooldown() time.Duration {
	return parseDurationOr(c.SpawnCooldown, 60*time.Millisecond)
}

// GetParticleLifetimeMin returns the lower bound of the particle lifetime.
func (c *SwimTuning) GetParticleLifetimeMin() time.Duration {
	return parseDurationOr(c.ParticleLifetimeMin, 350*time.Millisecond)
}

// GetParticleLifetimeMax returns the upper bound of the particle lifetime.
func (c *SwimTuning) GetParticleLifetimeMax() time.Duration {
	return parseDurationOr(c.ParticleLifetimeMax, 900*time.Millisecond)
}

// GetSpawnJitterM returns the positional jitter applied at spawn.
func (c *SwimTuning) GetSpawnJitterM() float64 {
	if c.SpawnJitterM == nil {
		return 0.05
	}
	return *c.SpawnJitterM
}

// GetHorizontalSpreadMps returns the horizontal velocity spread at spawn.
func (c *SwimTuning) GetHorizontalSpreadMps() float64 {
	if c.HorizontalSpreadMps == nil {
		return 0.6
	}
	return *c.HorizontalSpreadMps
}

// GetVerticalImpulseMps returns the base upward velocity at spawn.
func (c *SwimTuning) GetVerticalImpulseMps() float64 {
	if c.VerticalImpulseMps == nil {
		return 1.6
	}
	return *c.VerticalImpulseMps
}

// GetSurfaceHeightM returns the height above the water plane particles spawn at.
func (c *SwimTuning) GetSurfaceHeightM() float64 {
	if c.SurfaceHeightM == nil {
		return 0.02
	}
	return *c.SurfaceHeightM
}

// GetRandomSeed returns the seed for the per-swimmer particle random sources.
func (c *SwimTuning) GetRandomSeed() int64 {
	if c.RandomSeed == nil {
		return 1
	}
	return *c.RandomSeed
}

// GetFrameRate returns the driver frame rate in frames per second.
func (c *SwimTuning) GetFrameRate() float64 {
	if c.FrameRate == nil {
		return 60
	}
	return *c.FrameRate
}
