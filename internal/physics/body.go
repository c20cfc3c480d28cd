package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/spheredrop/internal/dynamo"
)

type BodyType int

const (
	Dynamic BodyType = iota
	Static
)

func (t BodyType) String() string {
	if t == Static {
		return "static"
	}
	return "dynamic"
}

const (
	DefaultRestitution    = 0.0
	DefaultFriction       = 0.3
	DefaultLinearDamping  = 0.01
	DefaultAngularDamping = 0.01
)

type Material struct {
	Restitution float64
	Friction    float64
}

func DefaultMaterial() Material {
	return Material{Restitution: DefaultRestitution, Friction: DefaultFriction}
}

type BodyOptions struct {
	Type     BodyType
	Mass     float64
	Shape    Shape
	Position mgl64.Vec3

	// Quaternion defaults to identity when left zero.
	Quaternion     mgl64.Quat
	Material       *Material
	LinearDamping  float64
	AngularDamping float64
}

type Body struct {
	ID              int
	Type            BodyType
	Mass            float64
	Shape           Shape
	Material        Material
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	Quaternion      mgl64.Quat
	AngularVelocity mgl64.Vec3
	LinearDamping   float64
	AngularDamping  float64

	invMass    float64
	invInertia mgl64.Vec3
}

// NewBody validates opts and returns a body ready to be added to a world.
// A dynamic body with zero mass becomes static.
func NewBody(opts BodyOptions) (*Body, error) {
	if opts.Shape == nil {
		return nil, fmt.Errorf("body shape is nil: %w", dynamo.ErrParameterBounds)
	}
	if opts.Mass < 0 || math.IsNaN(opts.Mass) || math.IsInf(opts.Mass, 0) {
		return nil, fmt.Errorf("body mass %v: %w", opts.Mass, dynamo.ErrParameterBounds)
	}
	for _, d := range []float64{opts.LinearDamping, opts.AngularDamping} {
		if d < 0 || d > 1 {
			return nil, fmt.Errorf("body damping %v: %w", d, dynamo.ErrParameterBounds)
		}
	}

	q := opts.Quaternion
	if q.W == 0 && q.V.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	mat := DefaultMaterial()
	if opts.Material != nil {
		mat = *opts.Material
	}

	b := &Body{
		Type:           opts.Type,
		Mass:           opts.Mass,
		Shape:          opts.Shape,
		Material:       mat,
		Position:       opts.Position,
		Quaternion:     q.Normalize(),
		LinearDamping:  opts.LinearDamping,
		AngularDamping: opts.AngularDamping,
	}
	if b.Type == Dynamic && b.Mass == 0 {
		b.Type = Static
	}
	b.updateMassProperties()
	return b, nil
}

func (b *Body) updateMassProperties() {
	if b.Type == Static {
		b.invMass = 0
		b.invInertia = mgl64.Vec3{}
		return
	}
	b.invMass = 1 / b.Mass
	in := b.Shape.Inertia(b.Mass)
	for i := 0; i < 3; i++ {
		if in[i] > 0 {
			b.invInertia[i] = 1 / in[i]
		}
	}
}

func (b *Body) IsStatic() bool             { return b.Type == Static }
func (b *Body) InverseMass() float64       { return b.invMass }
func (b *Body) InverseInertia() mgl64.Vec3 { return b.invInertia }

// ApplyImpulse changes the body's momentum by j, applied at the world-space
// offset r from its centre of mass.
func (b *Body) ApplyImpulse(j, r mgl64.Vec3) {
	if b.Type == Static {
		return
	}
	b.Velocity = b.Velocity.Add(j.Mul(b.invMass))
	b.AngularVelocity = b.AngularVelocity.Add(mulElem(b.invInertia, r.Cross(j)))
}

// VelocityAt returns the velocity of the body point at world-space offset r.
func (b *Body) VelocityAt(r mgl64.Vec3) mgl64.Vec3 {
	return b.Velocity.Add(b.AngularVelocity.Cross(r))
}

// PlaneNormal returns the world-space normal of a plane-shaped body.
func (b *Body) PlaneNormal() mgl64.Vec3 {
	return b.Quaternion.Rotate(mgl64.Vec3{0, 0, 1}).Normalize()
}

func (b *Body) KineticEnergy() float64 {
	if b.Type == Static {
		return 0
	}
	lin := 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
	in := b.Shape.Inertia(b.Mass)
	w := b.AngularVelocity
	rot := 0.5 * (in[0]*w[0]*w[0] + in[1]*w[1]*w[1] + in[2]*w[2]*w[2])
	return lin + rot
}

func (b *Body) integrate(g mgl64.Vec3, dt float64) {
	b.Velocity = b.Velocity.Add(g.Mul(dt))
	b.Velocity = b.Velocity.Mul(math.Pow(1-b.LinearDamping, dt))
	b.AngularVelocity = b.AngularVelocity.Mul(math.Pow(1-b.AngularDamping, dt))

	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	if b.AngularVelocity.Len() > 0 {
		spin := mgl64.Quat{W: 0, V: b.AngularVelocity}.Mul(b.Quaternion).Scale(0.5 * dt)
		b.Quaternion = b.Quaternion.Add(spin).Normalize()
	}
}

func mulElem(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
