package sim

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestWallClockAdvance(t *testing.T) {
	s, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	d := NewWallClock(s, clock.now)

	tests := []struct {
		name  string
		gap   time.Duration
		total int
	}{
		{"first frame takes one step", 0, 1},
		{"forty milliseconds", 40 * time.Millisecond, 3},
		{"leftover below one step", 5 * time.Millisecond, 3},
		{"leftover carried over", 6 * time.Millisecond, 4},
		{"long stall hits the substep cap", time.Second, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.advance(tt.gap)
			d.Advance()
			if d.Steps() != tt.total {
				t.Errorf("steps = %d, want %d", d.Steps(), tt.total)
			}
			if s.World.StepCount() != tt.total {
				t.Errorf("world step count = %d, want %d", s.World.StepCount(), tt.total)
			}
		})
	}
}
