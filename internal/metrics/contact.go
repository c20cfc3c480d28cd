package metrics

import (
	"math"

	"github.com/san-kum/spheredrop/internal/dynamo"
)

const DefaultSettleSpeed = 0.05

// SettleTime reports the time from which the body stayed in contact and
// slower than the threshold until the last sample, or -1 if it never did.
type SettleTime struct {
	name      string
	threshold float64
	since     float64
}

func NewSettleTime(threshold float64) *SettleTime {
	return &SettleTime{name: "settle_time", threshold: threshold, since: -1}
}

func (s *SettleTime) Name() string { return s.name }

func (s *SettleTime) Observe(sm dynamo.Sample) {
	if sm.InContact && sm.Velocity.Len() < s.threshold {
		if s.since < 0 {
			s.since = sm.Time
		}
		return
	}
	s.since = -1
}

func (s *SettleTime) Value() float64 { return s.since }
func (s *SettleTime) Reset()         { s.since = -1 }

type MaxPenetration struct {
	name  string
	depth float64
}

func NewMaxPenetration() *MaxPenetration {
	return &MaxPenetration{name: "max_penetration"}
}

func (m *MaxPenetration) Name() string { return m.name }

func (m *MaxPenetration) Observe(s dynamo.Sample) {
	m.depth = math.Max(m.depth, s.Penetration)
}

func (m *MaxPenetration) Value() float64 { return m.depth }
func (m *MaxPenetration) Reset()         { m.depth = 0 }

// Impacts counts contact onsets: samples in contact whose predecessor was not.
type Impacts struct {
	name    string
	count   int
	touched bool
}

func NewImpacts() *Impacts {
	return &Impacts{name: "impacts"}
}

func (i *Impacts) Name() string { return i.name }

func (i *Impacts) Observe(s dynamo.Sample) {
	if s.InContact && !i.touched {
		i.count++
	}
	i.touched = s.InContact
}

func (i *Impacts) Value() float64 { return float64(i.count) }

func (i *Impacts) Reset() {
	i.count = 0
	i.touched = false
}

type MinHeight struct {
	name string
	min  float64
}

func NewMinHeight() *MinHeight {
	return &MinHeight{name: "min_height", min: math.Inf(1)}
}

func (m *MinHeight) Name() string { return m.name }

func (m *MinHeight) Observe(s dynamo.Sample) {
	m.min = math.Min(m.min, s.Height())
}

func (m *MinHeight) Value() float64 {
	if math.IsInf(m.min, 1) {
		return 0
	}
	return m.min
}

func (m *MinHeight) Reset() { m.min = math.Inf(1) }
