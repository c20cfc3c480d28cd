package metrics

import (
	"github.com/san-kum/spheredrop/internal/dynamo"
	"github.com/san-kum/spheredrop/internal/sim"
)

const defaultStabilityBound = 1e4

// Defaults returns the standard metric set for a simulation's sphere.
func Defaults(s *sim.Simulation) []dynamo.Metric {
	mass := s.Sphere.Mass
	g := s.World.Gravity()
	return []dynamo.Metric{
		NewEnergy(mass, g),
		NewEnergyLoss(mass, g),
		NewSettleTime(DefaultSettleSpeed),
		NewMaxPenetration(),
		NewImpacts(),
		NewMinHeight(),
		NewStability(defaultStabilityBound),
	}
}
