package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sample is a snapshot of the tracked dynamic body after one fixed step.
type Sample struct {
	Step        int
	Time        float64
	Position    mgl64.Vec3
	Quaternion  mgl64.Quat
	Velocity    mgl64.Vec3
	InContact   bool
	Penetration float64

	// AngularVelocity is in world space, radians per second.
	AngularVelocity mgl64.Vec3
	// Kinetic is the body's translational plus rotational kinetic energy.
	Kinetic         float64
}

func (s Sample) Height() float64 { return s.Position.Y() }

func (s Sample) IsValid() bool {
	vals := [...]float64{
		s.Position.X(), s.Position.Y(), s.Position.Z(),
		s.Quaternion.W, s.Quaternion.V.X(), s.Quaternion.V.Y(), s.Quaternion.V.Z(),
		s.Velocity.X(), s.Velocity.Y(), s.Velocity.Z(),
		s.AngularVelocity.X(), s.AngularVelocity.Y(), s.AngularVelocity.Z(),
		s.Kinetic,
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Driver advances a world by one fixed increment.
type Driver interface {
	Advance()
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Heights returns the vertical coordinate of every sample.
func (r *Result) Heights() []float64 {
	ys := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		ys[i] = s.Height()
	}
	return ys
}

func (r *Result) Final() (Sample, bool) {
	if len(r.Samples) == 0 {
		return Sample{}, false
	}
	return r.Samples[len(r.Samples)-1], true
}
