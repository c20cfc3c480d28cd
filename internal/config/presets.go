package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/spheredrop/internal/dynamo"
)

var Presets = map[string]func(*Config){
	// The literal scene: 5 kg ball of radius 1 dropped from 10 m under Earth gravity.
	"demo": func(c *Config) {},
	"moon": func(c *Config) {
		c.World.Gravity = Vec3{0, -1.62, 0}
		c.Loop.Frames = 900
	},
	"bouncy": func(c *Config) {
		c.Sphere.Restitution = 0.9
		c.Ground.Restitution = 0.9
		c.Loop.Frames = 900
	},
	// Partly elastic contact: a few short bounces before settling.
	"lively": func(c *Config) {
		c.Sphere.Restitution = 0.3
		c.Ground.Restitution = 0.3
	},
	"heavy": func(c *Config) {
		c.Sphere.Mass = 50
		c.Sphere.Radius = 2
		c.Sphere.Position = Vec3{0, 12, 0}
	},
	"tall": func(c *Config) {
		c.Sphere.Position = Vec3{0, 50, 0}
		c.Loop.Frames = 600
	},
	"frictionless": func(c *Config) {
		c.Sphere.Friction = 0
		c.Ground.Friction = 0
		c.Sphere.Velocity = Vec3{3, 0, 0}
	},
	"rolling": func(c *Config) {
		c.Sphere.Velocity = Vec3{3, 0, 0}
		c.Loop.Frames = 600
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Preset = name
	apply(cfg)
	return cfg
}

// MustPreset is like GetPreset but returns ErrUnknownPreset for unknown names.
func MustPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%q (available: %v): %w", name, ListPresets(), dynamo.ErrUnknownPreset)
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
