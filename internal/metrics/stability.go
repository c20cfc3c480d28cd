package metrics

import (
	"math"

	"github.com/san-kum/spheredrop/internal/dynamo"
)

// Stability is the fraction of samples that are finite and within threshold
// of the origin on every axis.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sm dynamo.Sample) {
	s.samples++
	if !sm.IsValid() {
		s.violations++
		return
	}
	for _, val := range sm.Position {
		if math.Abs(val) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
