package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/spheredrop/internal/dynamo"
)

type ShapeKind int

const (
	KindSphere ShapeKind = iota
	KindPlane
)

func (k ShapeKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	default:
		return fmt.Sprintf("shape(%d)", int(k))
	}
}

type Shape interface {
	Kind() ShapeKind
	// BoundingRadius is the radius of a sphere around the body origin that
	// encloses the shape.
	BoundingRadius() float64
	// Inertia returns the principal moments of inertia for the given mass.
	Inertia(mass float64) mgl64.Vec3
}

type Sphere struct {
	Radius float64
}

func NewSphere(radius float64) (*Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("sphere radius %v: %w", radius, dynamo.ErrParameterBounds)
	}
	return &Sphere{Radius: radius}, nil
}

// MustSphere is like NewSphere but panics on an invalid radius.
func MustSphere(radius float64) *Sphere {
	s, err := NewSphere(radius)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Sphere) Kind() ShapeKind         { return KindSphere }
func (s *Sphere) BoundingRadius() float64 { return s.Radius }

func (s *Sphere) Inertia(mass float64) mgl64.Vec3 {
	i := 2.0 / 5.0 * mass * s.Radius * s.Radius
	return mgl64.Vec3{i, i, i}
}

// Plane is an infinite plane through the body origin. Its normal is the local
// +Z axis rotated by the body quaternion.
type Plane struct{}

func NewPlane() *Plane { return &Plane{} }

func (p *Plane) Kind() ShapeKind         { return KindPlane }
func (p *Plane) BoundingRadius() float64 { return math.Inf(1) }
func (p *Plane) Inertia(float64) mgl64.Vec3 {
	return mgl64.Vec3{}
}

// QuatFromEuler builds an orientation from Euler angles applied in XYZ order.
func QuatFromEuler(x, y, z float64) mgl64.Quat {
	qx := mgl64.QuatRotate(x, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(y, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(z, mgl64.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz).Normalize()
}
