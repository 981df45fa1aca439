// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/hapticnav/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Perception PerceptionConfig `yaml:"perception"`
	Vertical   VerticalConfig   `yaml:"vertical"`
	Obstacles  ObstaclesConfig  `yaml:"obstacles"`
	Elevations []ElevationSpec  `yaml:"elevations"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds world dimensions and boundary parameters, in meters.
type WorldConfig struct {
	Width         float32 `yaml:"width"`
	Height        float32 `yaml:"height"`
	WallThickness float32 `yaml:"wall_thickness"` // solid margin at the boundary
	ReflectMargin float32 `yaml:"reflect_margin"` // moving obstacles bounce inside this
}

// PlayerConfig holds locomotion and collision parameters.
type PlayerConfig struct {
	MoveSpeed       float32 `yaml:"move_speed"`       // m/s
	TurnSpeed       float32 `yaml:"turn_speed"`       // rad/s
	CollisionRadius float32 `yaml:"collision_radius"` // meters
}

// DistanceBandConfig is one row of the sensing grid: everything closer than
// Max (and at or beyond the previous band's Max) lands here.
type DistanceBandConfig struct {
	Name   string  `yaml:"name"`
	Max    float32 `yaml:"max"`    // outer bound in meters
	Weight float32 `yaml:"weight"` // attenuation applied to the height code
}

// DirectionBandConfig is one column of the sensing grid, in degrees relative
// to the player heading.
type DirectionBandConfig struct {
	Name string  `yaml:"name"`
	Min  float32 `yaml:"min"`
	Max  float32 `yaml:"max"`
}

// PerceptionConfig holds the sensing cone and grid parameters.
type PerceptionConfig struct {
	Range          float32               `yaml:"range"`          // max sensing distance, meters
	FOVDegrees     float32               `yaml:"fov"`            // full field of view, degrees
	TickRate       float32               `yaml:"tick_rate"`      // perception updates per second
	SlowThreshold  float32               `yaml:"slow_threshold"` // radial m/s above which vibration is slow
	FastThreshold  float32               `yaml:"fast_threshold"` // radial m/s above which vibration is fast
	DistanceBands  []DistanceBandConfig  `yaml:"distance_bands"`
	DirectionBands []DirectionBandConfig `yaml:"direction_bands"`
}

// VerticalConfig holds the jump and pit parameters.
type VerticalConfig struct {
	JumpSpeed      float32 `yaml:"jump_speed"`       // launch speed, m/s
	PitEscapeBoost float32 `yaml:"pit_escape_boost"` // launch multiplier when jumping out of a pit
	Gravity        float32 `yaml:"gravity"`          // m/s^2
	PitDepth       float32 `yaml:"pit_depth"`        // how far the body sinks, meters (positive)
	FallRate       float32 `yaml:"fall_rate"`        // fraction of remaining gap closed per second
	SnapEpsilon    float32 `yaml:"snap_epsilon"`     // gap below which the offset snaps to target
}

// ElevationSpec configures one elevation kind: its height code and the
// dimension/spawn parameters used by obstacle generation.
type ElevationSpec struct {
	Kind        string  `yaml:"kind"`
	Height      int8    `yaml:"height"`       // signed height code
	SpawnWeight float32 `yaml:"spawn_weight"` // relative generation probability
	MinHeight   float32 `yaml:"min_height"`   // vertical extent range, meters
	MaxHeight   float32 `yaml:"max_height"`
}

// ObstaclesConfig holds obstacle population parameters.
type ObstaclesConfig struct {
	Count        int     `yaml:"count"`
	MinSpawnDist float32 `yaml:"min_spawn_dist"` // meters from the player
	MaxSpawnDist float32 `yaml:"max_spawn_dist"`
	MovingChance float32 `yaml:"moving_chance"` // probability a non-pit obstacle moves
	MaxSpeed     float32 `yaml:"max_speed"`     // per-axis speed bound, m/s
	MinHalfExtent float32 `yaml:"min_half_extent"`
	MaxHalfExtent float32 `yaml:"max_half_extent"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	HalfFOVDeg       float32    // half field of view, degrees
	PerceptionPeriod float32    // seconds between perception ticks
	BandWeights      [3]float32 // row attenuation weights
	BandBounds       [3]float32 // row outer bounds, meters
	ColBounds        [4]float32 // column boundaries, degrees, ascending
	MaxRaisedCode    float32    // largest positive height code
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations that are out of physical range. A bad
// tunable is a startup error, never a per-tick condition.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %gx%g", c.World.Width, c.World.Height)
	}
	if c.Perception.Range <= 0 {
		return fmt.Errorf("perception range must be positive, got %g", c.Perception.Range)
	}
	if c.Perception.FOVDegrees <= 0 || c.Perception.FOVDegrees > 360 {
		return fmt.Errorf("field of view must be in (0, 360], got %g", c.Perception.FOVDegrees)
	}
	if c.Perception.TickRate <= 0 {
		return fmt.Errorf("perception tick rate must be positive, got %g", c.Perception.TickRate)
	}
	if c.Perception.SlowThreshold < 0 || c.Perception.FastThreshold <= c.Perception.SlowThreshold {
		return fmt.Errorf("motion thresholds must satisfy 0 <= slow < fast, got slow=%g fast=%g",
			c.Perception.SlowThreshold, c.Perception.FastThreshold)
	}
	if len(c.Perception.DistanceBands) != 3 {
		return fmt.Errorf("exactly 3 distance bands required, got %d", len(c.Perception.DistanceBands))
	}
	prev := float32(0)
	for i, b := range c.Perception.DistanceBands {
		if b.Max <= prev {
			return fmt.Errorf("distance band %d bound %g not ascending", i, b.Max)
		}
		if b.Weight <= 0 {
			return fmt.Errorf("distance band %d weight must be positive, got %g", i, b.Weight)
		}
		prev = b.Max
	}
	if len(c.Perception.DirectionBands) != 3 {
		return fmt.Errorf("exactly 3 direction bands required, got %d", len(c.Perception.DirectionBands))
	}
	for i, b := range c.Perception.DirectionBands {
		if b.Min >= b.Max {
			return fmt.Errorf("direction band %d range [%g, %g) is empty", i, b.Min, b.Max)
		}
		if i > 0 && c.Perception.DirectionBands[i-1].Max != b.Min {
			return fmt.Errorf("direction bands %d and %d are not contiguous", i-1, i)
		}
	}
	if c.Player.CollisionRadius < 0 {
		return fmt.Errorf("collision radius must be non-negative, got %g", c.Player.CollisionRadius)
	}
	if c.Vertical.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %g", c.Vertical.Gravity)
	}
	if c.Vertical.JumpSpeed <= 0 {
		return fmt.Errorf("jump speed must be positive, got %g", c.Vertical.JumpSpeed)
	}
	if c.Vertical.PitDepth <= 0 {
		return fmt.Errorf("pit depth must be positive, got %g", c.Vertical.PitDepth)
	}
	if c.Vertical.FallRate <= 0 {
		return fmt.Errorf("fall rate must be positive, got %g", c.Vertical.FallRate)
	}
	for _, e := range c.Elevations {
		if _, err := components.ParseKind(e.Kind); err != nil {
			return err
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config and applies
// height-code overrides to the elevation kind table.
func (c *Config) computeDerived() {
	c.Derived.HalfFOVDeg = c.Perception.FOVDegrees / 2
	c.Derived.PerceptionPeriod = 1.0 / c.Perception.TickRate

	for i, b := range c.Perception.DistanceBands {
		c.Derived.BandBounds[i] = b.Max
		c.Derived.BandWeights[i] = b.Weight
	}
	c.Derived.ColBounds[0] = c.Perception.DirectionBands[0].Min
	for i, b := range c.Perception.DirectionBands {
		c.Derived.ColBounds[i+1] = b.Max
	}

	for _, e := range c.Elevations {
		kind, err := components.ParseKind(e.Kind)
		if err != nil {
			continue // rejected by Validate already
		}
		components.SetHeightCode(kind, e.Height)
	}
	c.Derived.MaxRaisedCode = float32(components.MaxRaisedCode())
}

// ElevationFor returns the spawn spec for the given kind, if configured.
func (c *Config) ElevationFor(kind components.ElevationKind) (ElevationSpec, bool) {
	for _, e := range c.Elevations {
		if e.Kind == kind.String() {
			return e, true
		}
	}
	return ElevationSpec{}, false
}

// FOVRadians returns the full field of view in radians.
func (c *Config) FOVRadians() float32 {
	return c.Perception.FOVDegrees * math.Pi / 180
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
