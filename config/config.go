// Package config provides configuration loading and access for the vegetation field.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all field, blade, and wind parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Blade     BladeConfig     `yaml:"blade"`
	Wind      WindConfig      `yaml:"wind"`
	Proximity ProximityConfig `yaml:"proximity"`
	LOD       LODConfig       `yaml:"lod"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the demo binaries.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds placement parameters for the instance field.
type FieldConfig struct {
	Instances int     `yaml:"instances"`  // Instance count (clamped to MaxInstances)
	Size      float64 `yaml:"size"`       // Side length of the square field, world units
	HeightMin float64 `yaml:"height_min"` // Lower bound of the per-instance height scale
	HeightMax float64 `yaml:"height_max"` // Upper bound of the per-instance height scale
	Workers   int     `yaml:"workers"`    // Placement worker count (0 = GOMAXPROCS)
}

// BladeConfig holds the template geometry parameters.
type BladeConfig struct {
	Segments    int     `yaml:"segments"`     // Cross-sections above the base for the detail mesh
	SegmentsLow int     `yaml:"segments_low"` // Segment count for the far LOD mesh
	Width       float64 `yaml:"width"`        // Width at the base, world units
	Height      float64 `yaml:"height"`       // Unscaled template height, world units
}

// WindConfig holds the displacement field parameters.
type WindConfig struct {
	Strength  float64 `yaml:"strength"`   // Peak tip displacement, world units
	Frequency float64 `yaml:"frequency"`  // Spatial frequency of the noise field
	TimeScale float64 `yaml:"time_scale"` // Phase advance per second
	DriftX    float64 `yaml:"drift_x"`    // Gust drift of the noise field per second
	DriftZ    float64 `yaml:"drift_z"`
	Seed      int64   `yaml:"seed"` // Noise permutation seed
}

// ProximityConfig holds actor push-away parameters.
type ProximityConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Radius   float64 `yaml:"radius"`   // Interaction radius; push is exactly zero at and beyond it
	Strength float64 `yaml:"strength"` // Peak push at zero distance, world units
}

// LODConfig holds distance level-of-detail parameters.
type LODConfig struct {
	Enabled      bool    `yaml:"enabled"`
	TilesPerAxis int     `yaml:"tiles_per_axis"`
	Distance     float64 `yaml:"distance"`   // Camera distance at which tiles drop to the low mesh
	Hysteresis   float64 `yaml:"hysteresis"` // Dead zone half-width around the threshold
}

// TelemetryConfig holds performance logging parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
	LogPerf     bool    `yaml:"log_perf"`
}

// DerivedConfig holds values derived from loaded config.
type DerivedConfig struct {
	FieldSize32   float32 // Field.Size as float32
	HeightMin32   float32
	HeightMax32   float32
	BladeWidth32  float32
	BladeHeight32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

// Validate rejects configurations the field cannot be built from.
func (c *Config) Validate() error {
	if c.Field.Instances < 0 {
		return fmt.Errorf("config: field.instances must be >= 0, got %d", c.Field.Instances)
	}
	if c.Field.Size <= 0 {
		return fmt.Errorf("config: field.size must be > 0, got %g", c.Field.Size)
	}
	if c.Field.HeightMin <= 0 || c.Field.HeightMax < c.Field.HeightMin {
		return fmt.Errorf("config: field height range [%g, %g] is invalid", c.Field.HeightMin, c.Field.HeightMax)
	}
	if c.Blade.Segments < 1 || c.Blade.SegmentsLow < 1 {
		return fmt.Errorf("config: blade segment counts must be >= 1, got %d/%d", c.Blade.Segments, c.Blade.SegmentsLow)
	}
	if c.Blade.Width <= 0 || c.Blade.Height <= 0 {
		return fmt.Errorf("config: blade dimensions must be > 0, got %gx%g", c.Blade.Width, c.Blade.Height)
	}
	if c.Proximity.Enabled && c.Proximity.Radius <= 0 {
		return fmt.Errorf("config: proximity.radius must be > 0 when enabled, got %g", c.Proximity.Radius)
	}
	if c.LOD.Enabled && (c.LOD.TilesPerAxis < 1 || c.LOD.Distance <= 0) {
		return fmt.Errorf("config: lod requires tiles_per_axis >= 1 and distance > 0")
	}
	if c.LOD.Hysteresis < 0 {
		return fmt.Errorf("config: lod.hysteresis must be >= 0, got %g", c.LOD.Hysteresis)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FieldSize32 = float32(c.Field.Size)
	c.Derived.HeightMin32 = float32(c.Field.HeightMin)
	c.Derived.HeightMax32 = float32(c.Field.HeightMax)
	c.Derived.BladeWidth32 = float32(c.Blade.Width)
	c.Derived.BladeHeight32 = float32(c.Blade.Height)
}

// WriteYAML saves the configuration to a file, for experiment output dirs.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
