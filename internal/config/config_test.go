package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/spheredrop/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.World.Gravity != (Vec3{0, -9.82, 0}) {
		t.Errorf("expected gravity (0,-9.82,0), got %v", cfg.World.Gravity)
	}
	if cfg.Sphere.Mass != 5 || cfg.Sphere.Radius != 1 {
		t.Errorf("expected 5 kg sphere of radius 1, got %f kg radius %f", cfg.Sphere.Mass, cfg.Sphere.Radius)
	}
	if cfg.Sphere.Position != (Vec3{0, 10, 0}) {
		t.Errorf("expected start (0,10,0), got %v", cfg.Sphere.Position)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if d := cfg.Duration(); d < 4.999 || d > 5.001 {
		t.Errorf("expected 5 s of simulated time, got %f", d)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("moon")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.World.Gravity[1] != -1.62 {
		t.Errorf("expected moon gravity, got %f", cfg.World.Gravity[1])
	}
	if cfg.Preset != "moon" {
		t.Errorf("expected preset name recorded, got %q", cfg.Preset)
	}

	// presets hand out fresh copies
	cfg.Sphere.Mass = 99
	if GetPreset("moon").Sphere.Mass == 99 {
		t.Error("preset mutation leaked")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if _, err := MustPreset("nonexistent"); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero step", func(c *Config) { c.World.FixedStep = 0 }},
		{"no substeps", func(c *Config) { c.World.MaxSubSteps = 0 }},
		{"zero mass", func(c *Config) { c.Sphere.Mass = 0 }},
		{"negative radius", func(c *Config) { c.Sphere.Radius = -1 }},
		{"restitution above one", func(c *Config) { c.Sphere.Restitution = 1.5 }},
		{"negative friction", func(c *Config) { c.Ground.Friction = -0.1 }},
		{"negative frames", func(c *Config) { c.Loop.Frames = -1 }},
		{"zero fps", func(c *Config) { c.Loop.FPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	cfg := GetPreset("bouncy")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sphere:\n  mass: 8\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Sphere.Mass)
	assert.Equal(t, DefaultRadius, cfg.Sphere.Radius)
	assert.Equal(t, Vec3{0, DefaultGravityY, 0}, cfg.World.Gravity)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sphere:\n  radius: 0\n"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, dynamo.ErrParameterBounds)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
