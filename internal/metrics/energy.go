package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/spheredrop/internal/dynamo"
)

// mechanical returns kinetic (including spin) plus potential energy, with
// zero potential at the world origin.
func mechanical(mass float64, gravity mgl64.Vec3, s dynamo.Sample) float64 {
	pe := -mass * gravity.Dot(s.Position)
	return s.Kinetic + pe
}

type Energy struct {
	name        string
	mass        float64
	gravity     mgl64.Vec3
	samples     int
	totalEnergy float64
}

func NewEnergy(mass float64, gravity mgl64.Vec3) *Energy {
	return &Energy{
		name:    "energy",
		mass:    mass,
		gravity: gravity,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s dynamo.Sample) {
	e.totalEnergy += mechanical(e.mass, e.gravity, s)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyLoss is the fraction of the initial mechanical energy that is gone
// by the last observed sample. Contacts and damping make it positive.
type EnergyLoss struct {
	name          string
	mass          float64
	gravity       mgl64.Vec3
	initialEnergy float64
	currentEnergy float64
	samples       int
}

func NewEnergyLoss(mass float64, gravity mgl64.Vec3) *EnergyLoss {
	return &EnergyLoss{
		name:    "energy_loss",
		mass:    mass,
		gravity: gravity,
	}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(s dynamo.Sample) {
	energy := mechanical(e.mass, e.gravity, s)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++
}

func (e *EnergyLoss) Value() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return (e.initialEnergy - e.currentEnergy) / math.Abs(e.initialEnergy)
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}
