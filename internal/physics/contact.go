package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const tangentEpsilon = 1e-9

// Contact is a touching pair. Normal points from B towards A.
type Contact struct {
	A, B   *Body
	Normal mgl64.Vec3
	Point  mgl64.Vec3
	Depth  float64
	// Impulse is the normal impulse applied while resolving the contact.
	Impulse float64
}

func (w *World) detectContacts(dst []Contact) []Contact {
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := w.bodies[i], w.bodies[j]
			if a.Type == Static && b.Type == Static {
				continue
			}
			if c, ok := collide(a, b); ok {
				dst = append(dst, c)
			}
		}
	}
	return dst
}

func collide(a, b *Body) (Contact, bool) {
	switch {
	case a.Shape.Kind() == KindSphere && b.Shape.Kind() == KindPlane:
		return sphereVsPlane(a, b)
	case a.Shape.Kind() == KindPlane && b.Shape.Kind() == KindSphere:
		return sphereVsPlane(b, a)
	}
	return Contact{}, false
}

func sphereVsPlane(sphere, plane *Body) (Contact, bool) {
	r := sphere.Shape.(*Sphere).Radius
	n := plane.PlaneNormal()
	dist := sphere.Position.Sub(plane.Position).Dot(n)
	depth := r - dist
	if depth <= 0 {
		return Contact{}, false
	}
	return Contact{
		A:      sphere,
		B:      plane,
		Normal: n,
		Point:  sphere.Position.Sub(n.Mul(r)),
		Depth:  depth,
	}, true
}

func combineFriction(a, b Material) float64 {
	return math.Sqrt(a.Friction * b.Friction)
}

func combineRestitution(a, b Material) float64 {
	return math.Max(a.Restitution, b.Restitution)
}

// effectiveMass returns the inverse of the mass seen by an impulse along dir.
func effectiveMass(a, b *Body, ra, rb, dir mgl64.Vec3) float64 {
	k := a.invMass + b.invMass
	ca := ra.Cross(dir)
	cb := rb.Cross(dir)
	k += mulElem(a.invInertia, ca).Cross(ra).Dot(dir)
	k += mulElem(b.invInertia, cb).Cross(rb).Dot(dir)
	if k <= 0 {
		return 0
	}
	return 1 / k
}

func resolveContact(c *Contact, restingSpeed float64) {
	a, b := c.A, c.B
	n := c.Normal
	ra := c.Point.Sub(a.Position)
	rb := c.Point.Sub(b.Position)

	rel := a.VelocityAt(ra).Sub(b.VelocityAt(rb))
	vn := rel.Dot(n)
	if vn < 0 {
		e := combineRestitution(a.Material, b.Material)
		if -vn < restingSpeed {
			e = 0
		}
		jn := -(1 + e) * vn * effectiveMass(a, b, ra, rb, n)
		a.ApplyImpulse(n.Mul(jn), ra)
		b.ApplyImpulse(n.Mul(-jn), rb)
		c.Impulse = jn

		rel = a.VelocityAt(ra).Sub(b.VelocityAt(rb))
		vt := rel.Sub(n.Mul(rel.Dot(n)))
		if vt.Len() > tangentEpsilon {
			t := vt.Normalize()
			jt := -rel.Dot(t) * effectiveMass(a, b, ra, rb, t)
			limit := combineFriction(a.Material, b.Material) * jn
			jt = math.Max(-limit, math.Min(limit, jt))
			a.ApplyImpulse(t.Mul(jt), ra)
			b.ApplyImpulse(t.Mul(-jt), rb)
		}
	}

	total := a.invMass + b.invMass
	if total == 0 {
		return
	}
	a.Position = a.Position.Add(n.Mul(c.Depth * a.invMass / total))
	b.Position = b.Position.Sub(n.Mul(c.Depth * b.invMass / total))
}
