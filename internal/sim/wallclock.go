package sim

import (
	"time"

	"github.com/san-kum/spheredrop/internal/dynamo"
)

// WallClock drives a Simulation from real elapsed time instead of one fixed
// step per frame. Each Advance hands the time since the previous call to
// World.Step, which runs as many fixed steps as fit, up to the substep cap.
type WallClock struct {
	sim   *Simulation
	now   func() time.Time
	last  time.Time
	steps int
}

var _ dynamo.Driver = (*WallClock)(nil)

// NewWallClock returns a driver reading time from now, or time.Now if nil.
func NewWallClock(s *Simulation, now func() time.Time) *WallClock {
	if now == nil {
		now = time.Now
	}
	return &WallClock{sim: s, now: now}
}

// Advance steps the world by the time elapsed since the last call. The first
// call advances exactly one fixed step.
func (w *WallClock) Advance() {
	t := w.now()
	elapsed := w.sim.World.FixedStepSize()
	if !w.last.IsZero() {
		elapsed = t.Sub(w.last).Seconds()
	}
	w.last = t
	w.steps += w.sim.World.Step(elapsed)
}

// Steps is the number of fixed steps taken so far.
func (w *WallClock) Steps() int { return w.steps }
