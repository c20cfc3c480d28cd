package config

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/spheredrop/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGravityY    = -9.82
	DefaultMass        = 5.0
	DefaultRadius      = 1.0
	DefaultStartY      = 10.0
	DefaultGroundTiltX = -math.Pi / 2
	DefaultFixedStep   = 1.0 / 60.0
	DefaultMaxSubSteps = 10
	DefaultRestitution = 0.0
	DefaultFriction    = 0.3
	DefaultDamping     = 0.01
	DefaultFrames      = 300
	DefaultFPS         = 60
)

// Vec3 is a YAML-friendly three component vector, written as [x, y, z].
type Vec3 [3]float64

func (v Vec3) Mgl() mgl64.Vec3 { return mgl64.Vec3(v) }

type Config struct {
	Preset string       `yaml:"preset,omitempty"`
	World  WorldConfig  `yaml:"world"`
	Sphere SphereConfig `yaml:"sphere"`
	Ground GroundConfig `yaml:"ground"`
	Loop   LoopConfig   `yaml:"loop"`
}

type WorldConfig struct {
	Gravity     Vec3    `yaml:"gravity"`
	FixedStep   float64 `yaml:"fixed_step"`
	MaxSubSteps int     `yaml:"max_substeps"`
}

type SphereConfig struct {
	Mass           float64 `yaml:"mass"`
	Radius         float64 `yaml:"radius"`
	Position       Vec3    `yaml:"position"`
	Velocity       Vec3    `yaml:"velocity"`
	Restitution    float64 `yaml:"restitution"`
	Friction       float64 `yaml:"friction"`
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
}

type GroundConfig struct {
	// Euler angles in radians, XYZ order.
	Rotation    Vec3    `yaml:"rotation"`
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
}

type LoopConfig struct {
	Frames int `yaml:"frames"`
	FPS    int `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{
			Gravity:     Vec3{0, DefaultGravityY, 0},
			FixedStep:   DefaultFixedStep,
			MaxSubSteps: DefaultMaxSubSteps,
		},
		Sphere: SphereConfig{
			Mass:           DefaultMass,
			Radius:         DefaultRadius,
			Position:       Vec3{0, DefaultStartY, 0},
			Restitution:    DefaultRestitution,
			Friction:       DefaultFriction,
			LinearDamping:  DefaultDamping,
			AngularDamping: DefaultDamping,
		},
		Ground: GroundConfig{
			Rotation:    Vec3{DefaultGroundTiltX, 0, 0},
			Restitution: DefaultRestitution,
			Friction:    DefaultFriction,
		},
		Loop: LoopConfig{
			Frames: DefaultFrames,
			FPS:    DefaultFPS,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy. Config holds only value fields, so a
// struct copy shares nothing with the receiver.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	for _, g := range c.World.Gravity {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return bounds("world.gravity", c.World.Gravity)
		}
	}
	switch {
	case !(c.World.FixedStep > 0):
		return bounds("world.fixed_step", c.World.FixedStep)
	case c.World.MaxSubSteps < 1:
		return bounds("world.max_substeps", c.World.MaxSubSteps)
	case !(c.Sphere.Mass > 0):
		return bounds("sphere.mass", c.Sphere.Mass)
	case !(c.Sphere.Radius > 0):
		return bounds("sphere.radius", c.Sphere.Radius)
	case c.Sphere.Restitution < 0 || c.Sphere.Restitution > 1:
		return bounds("sphere.restitution", c.Sphere.Restitution)
	case c.Sphere.Friction < 0:
		return bounds("sphere.friction", c.Sphere.Friction)
	case c.Sphere.LinearDamping < 0 || c.Sphere.LinearDamping > 1:
		return bounds("sphere.linear_damping", c.Sphere.LinearDamping)
	case c.Sphere.AngularDamping < 0 || c.Sphere.AngularDamping > 1:
		return bounds("sphere.angular_damping", c.Sphere.AngularDamping)
	case c.Ground.Restitution < 0 || c.Ground.Restitution > 1:
		return bounds("ground.restitution", c.Ground.Restitution)
	case c.Ground.Friction < 0:
		return bounds("ground.friction", c.Ground.Friction)
	case c.Loop.Frames < 0:
		return bounds("loop.frames", c.Loop.Frames)
	case c.Loop.FPS < 1:
		return bounds("loop.fps", c.Loop.FPS)
	}
	return nil
}

// Duration is the simulated time covered by Loop.Frames fixed steps.
func (c *Config) Duration() float64 {
	return float64(c.Loop.Frames) * c.World.FixedStep
}

func bounds(field string, v any) error {
	return fmt.Errorf("%s = %v: %w", field, v, dynamo.ErrParameterBounds)
}
