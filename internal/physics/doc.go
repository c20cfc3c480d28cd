// Package physics is a small rigid-body world for spheres resting on planes.
//
// A [World] holds a constant gravity vector and a set of [Body] values.
// Advancing it with [World.FixedStep] integrates every dynamic body by one
// constant increment and then resolves sphere/plane contacts:
//
//	w, _ := physics.NewWorld(physics.WorldOptions{Gravity: mgl64.Vec3{0, -9.82, 0}})
//	ball, _ := physics.NewBody(physics.BodyOptions{Mass: 5, Shape: physics.MustSphere(1)})
//	w.AddBody(ball)
//	w.FixedStep()
//
// # Shapes
//
//   - [Sphere]: solid ball, collides with planes
//   - [Plane]: infinite half-space whose local normal is +Z
//
// Static bodies (or bodies created with zero mass) have no inverse mass and
// are never moved by the step.
package physics
