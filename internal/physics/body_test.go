package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/spheredrop/internal/dynamo"
)

func TestNewSphere(t *testing.T) {
	tests := []struct {
		radius float64
		ok     bool
	}{
		{1, true},
		{0.25, true},
		{0, false},
		{-1, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}

	for _, tt := range tests {
		_, err := NewSphere(tt.radius)
		if tt.ok && err != nil {
			t.Errorf("radius %v: unexpected error %v", tt.radius, err)
		}
		if !tt.ok && !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("radius %v: expected ErrParameterBounds, got %v", tt.radius, err)
		}
	}
}

func TestNewBody_ZeroMassIsStatic(t *testing.T) {
	b, err := NewBody(BodyOptions{Shape: NewPlane()})
	if err != nil {
		t.Fatalf("new body: %v", err)
	}
	if !b.IsStatic() {
		t.Error("expected zero-mass body to be static")
	}
	if b.InverseMass() != 0 {
		t.Errorf("expected zero inverse mass, got %f", b.InverseMass())
	}
	if b.Quaternion != mgl64.QuatIdent() {
		t.Errorf("expected identity orientation, got %v", b.Quaternion)
	}
}

func TestNewBody_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts BodyOptions
	}{
		{"nil shape", BodyOptions{Mass: 1}},
		{"negative mass", BodyOptions{Mass: -1, Shape: MustSphere(1)}},
		{"damping above one", BodyOptions{Mass: 1, Shape: MustSphere(1), LinearDamping: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBody(tt.opts); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestSphereInertia(t *testing.T) {
	b, err := NewBody(BodyOptions{Mass: 5, Shape: MustSphere(1)})
	if err != nil {
		t.Fatalf("new body: %v", err)
	}
	want := 1 / (0.4 * 5)
	if got := b.InverseInertia().X(); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected inverse inertia %f, got %f", want, got)
	}
}

func TestApplyImpulse_StaticIgnored(t *testing.T) {
	b, _ := NewBody(BodyOptions{Type: Static, Mass: 3, Shape: NewPlane()})
	b.ApplyImpulse(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{0, 1, 0})
	if b.Velocity != (mgl64.Vec3{}) || b.AngularVelocity != (mgl64.Vec3{}) {
		t.Error("static body should not react to impulses")
	}
}

func TestQuatFromEuler(t *testing.T) {
	q := QuatFromEuler(-math.Pi/2, 0, 0)
	up := q.Rotate(mgl64.Vec3{0, 0, 1})
	if up.Sub(mgl64.Vec3{0, 1, 0}).Len() > 1e-12 {
		t.Errorf("expected +Z to map to +Y, got %v", up)
	}
	if math.Abs(q.Len()-1) > 1e-12 {
		t.Errorf("expected unit quaternion, got length %f", q.Len())
	}
}

func TestKineticEnergy(t *testing.T) {
	b, _ := NewBody(BodyOptions{Mass: 2, Shape: MustSphere(1)})
	b.Velocity = mgl64.Vec3{0, -3, 0}
	if got := b.KineticEnergy(); math.Abs(got-9) > 1e-12 {
		t.Errorf("expected 9 J, got %f", got)
	}
}
