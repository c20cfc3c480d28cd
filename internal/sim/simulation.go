package sim

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/spheredrop/internal/config"
	"github.com/san-kum/spheredrop/internal/dynamo"
	"github.com/san-kum/spheredrop/internal/physics"
	"github.com/san-kum/spheredrop/internal/render"
)

const (
	SphereMeshName = "sphere"
	GroundMeshName = "ground"

	groundGridSize      = 20
	groundGridDivisions = 10
)

// Simulation owns one world with a falling sphere and a static ground plane,
// plus the scene holding their visual proxies. It is single-threaded: the
// frame loop is its only writer.
type Simulation struct {
	World  *physics.World
	Sphere *physics.Body
	Ground *physics.Body
	Scene  *render.Scene
	Mesh   *render.Mesh

	cfg *config.Config
}

var _ dynamo.Driver = (*Simulation)(nil)

// New builds the scene described by cfg.
func New(cfg *config.Config) (*Simulation, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	world, err := physics.NewWorld(physics.WorldOptions{
		Gravity:     cfg.World.Gravity.Mgl(),
		FixedStep:   cfg.World.FixedStep,
		MaxSubSteps: cfg.World.MaxSubSteps,
	})
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}

	shape, err := physics.NewSphere(cfg.Sphere.Radius)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}

	scene := render.NewScene()
	mesh := render.NewMesh(render.NewSphereGeometry(shape.BoundingRadius()), render.NormalMaterial{})
	mesh.Name = SphereMeshName
	scene.Add(mesh)
	sphere, err := physics.NewBody(physics.BodyOptions{
		Mass:     cfg.Sphere.Mass,
		Shape:    shape,
		Position: cfg.Sphere.Position.Mgl(),
		Material: &physics.Material{
			Restitution: cfg.Sphere.Restitution,
			Friction:    cfg.Sphere.Friction,
		},
		LinearDamping:  cfg.Sphere.LinearDamping,
		AngularDamping: cfg.Sphere.AngularDamping,
	})
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	sphere.Velocity = cfg.Sphere.Velocity.Mgl()
	world.AddBody(sphere)

	rot := cfg.Ground.Rotation
	ground, err := physics.NewBody(physics.BodyOptions{
		Type:       physics.Static,
		Shape:      physics.NewPlane(),
		Quaternion: physics.QuatFromEuler(rot[0], rot[1], rot[2]),
		Material: &physics.Material{
			Restitution: cfg.Ground.Restitution,
			Friction:    cfg.Ground.Friction,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ground: %w", err)
	}
	world.AddBody(ground)

	// The grid lies in its local XZ plane; tilt it so its normal follows the
	// plane's local +Z.
	grid := render.NewMesh(&render.GridGeometry{Size: groundGridSize, Divisions: groundGridDivisions},
		render.BasicMaterial{Color: [3]float64{0.4, 0.4, 0.4}})
	grid.Name = GroundMeshName
	grid.Position = ground.Position
	grid.Quaternion = ground.Quaternion.Mul(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}))
	scene.Add(grid)

	mesh.Position = sphere.Position
	mesh.Quaternion = sphere.Quaternion

	return &Simulation{
		World:  world,
		Sphere: sphere,
		Ground: ground,
		Scene:  scene,
		Mesh:   mesh,
		cfg:    cfg,
	}, nil
}

// Advance integrates the world by one fixed step.
func (s *Simulation) Advance() {
	s.World.FixedStep()
}

func (s *Simulation) Config() *config.Config { return s.cfg }

// Sample snapshots the sphere after the most recent step.
func (s *Simulation) Sample() dynamo.Sample {
	sm := dynamo.Sample{
		Step:       s.World.StepCount(),
		Time:       s.World.Time(),
		Position:   s.Sphere.Position,
		Quaternion: s.Sphere.Quaternion,
		Velocity:   s.Sphere.Velocity,

		AngularVelocity: s.Sphere.AngularVelocity,
		Kinetic:         s.Sphere.KineticEnergy(),
	}
	if c, ok := s.World.InContact(s.Sphere); ok {
		sm.InContact = true
		sm.Penetration = c.Depth
	}
	return sm
}
