package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}

	if cfg.Field.Instances <= 0 {
		t.Errorf("default instances = %d, want > 0", cfg.Field.Instances)
	}
	if cfg.Field.Size <= 0 {
		t.Errorf("default field size = %v, want > 0", cfg.Field.Size)
	}
	if cfg.Blade.Segments < 1 || cfg.Blade.SegmentsLow < 1 {
		t.Errorf("default blade segments %d/%d, want >= 1", cfg.Blade.Segments, cfg.Blade.SegmentsLow)
	}
	if cfg.Derived.FieldSize32 != float32(cfg.Field.Size) {
		t.Errorf("derived field size %v does not match %v", cfg.Derived.FieldSize32, cfg.Field.Size)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("field:\n  instances: 123\n  size: 7.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Field.Instances != 123 {
		t.Errorf("instances = %d, want 123 from override", cfg.Field.Instances)
	}
	if cfg.Field.Size != 7.5 {
		t.Errorf("size = %v, want 7.5 from override", cfg.Field.Size)
	}
	// Untouched sections keep their defaults.
	if cfg.Wind.Strength <= 0 {
		t.Errorf("wind strength lost its default: %v", cfg.Wind.Strength)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative instances", func(c *Config) { c.Field.Instances = -1 }},
		{"zero field size", func(c *Config) { c.Field.Size = 0 }},
		{"inverted height range", func(c *Config) { c.Field.HeightMin = 2; c.Field.HeightMax = 1 }},
		{"zero blade segments", func(c *Config) { c.Blade.Segments = 0 }},
		{"zero blade width", func(c *Config) { c.Blade.Width = 0 }},
		{"proximity without radius", func(c *Config) { c.Proximity.Enabled = true; c.Proximity.Radius = 0 }},
		{"lod without distance", func(c *Config) { c.LOD.Enabled = true; c.LOD.Distance = 0 }},
		{"negative hysteresis", func(c *Config) { c.LOD.Hysteresis = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Field.Instances = 42

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if loaded.Field.Instances != 42 {
		t.Errorf("round-tripped instances = %d, want 42", loaded.Field.Instances)
	}
}
