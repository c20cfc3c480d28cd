package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/spheredrop/internal/dynamo"
)

const (
	DefaultFixedStep   = 1.0 / 60.0
	DefaultMaxSubSteps = 10
)

type WorldOptions struct {
	Gravity     mgl64.Vec3
	FixedStep   float64
	MaxSubSteps int
}

// World owns a set of bodies and advances them under constant gravity.
// It is not safe for concurrent use.
type World struct {
	gravity     mgl64.Vec3
	fixedStep   float64
	maxSubSteps int
	bodies      []*Body
	contacts    []Contact
	accumulator float64
	time        float64
	steps       int
	nextID      int
}

func NewWorld(opts WorldOptions) (*World, error) {
	for _, g := range opts.Gravity {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return nil, fmt.Errorf("gravity %v: %w", opts.Gravity, dynamo.ErrParameterBounds)
		}
	}
	if opts.FixedStep == 0 {
		opts.FixedStep = DefaultFixedStep
	}
	if !(opts.FixedStep > 0) || math.IsInf(opts.FixedStep, 0) {
		return nil, fmt.Errorf("fixed step %v: %w", opts.FixedStep, dynamo.ErrParameterBounds)
	}
	if opts.MaxSubSteps <= 0 {
		opts.MaxSubSteps = DefaultMaxSubSteps
	}
	return &World{
		gravity:     opts.Gravity,
		fixedStep:   opts.FixedStep,
		maxSubSteps: opts.MaxSubSteps,
		bodies:      make([]*Body, 0, 2),
	}, nil
}

func (w *World) Gravity() mgl64.Vec3    { return w.gravity }
func (w *World) FixedStepSize() float64 { return w.fixedStep }
func (w *World) Time() float64          { return w.time }
func (w *World) StepCount() int         { return w.steps }

func (w *World) AddBody(b *Body) {
	if b == nil {
		return
	}
	w.nextID++
	b.ID = w.nextID
	w.bodies = append(w.bodies, b)
}

func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// InContact reports whether b touched any other body in the last step.
func (w *World) InContact(b *Body) (Contact, bool) {
	for _, c := range w.contacts {
		if c.A == b || c.B == b {
			return c, true
		}
	}
	return Contact{}, false
}

// FixedStep advances the world by exactly one fixed increment.
func (w *World) FixedStep() {
	w.step(w.fixedStep)
}

// Step consumes elapsed wall-clock time in fixed increments, running at most
// MaxSubSteps of them. Leftover time below one increment carries over; time
// beyond the substep cap is dropped. It returns the number of steps taken.
func (w *World) Step(elapsed float64) int {
	if !(elapsed > 0) {
		return 0
	}
	w.accumulator += elapsed
	n := 0
	for w.accumulator >= w.fixedStep && n < w.maxSubSteps {
		w.step(w.fixedStep)
		w.accumulator -= w.fixedStep
		n++
	}
	if w.accumulator >= w.fixedStep {
		w.accumulator = math.Mod(w.accumulator, w.fixedStep)
	}
	return n
}

func (w *World) step(dt float64) {
	for _, b := range w.bodies {
		if b.Type != Dynamic {
			continue
		}
		b.integrate(w.gravity, dt)
	}

	w.contacts = w.detectContacts(w.contacts[:0])
	rest := w.restingSpeed()
	for i := range w.contacts {
		resolveContact(&w.contacts[i], rest)
	}

	w.time += dt
	w.steps++
}

// restingSpeed is the approach speed below which contacts stop bouncing.
// Gravity alone adds this much speed over two steps.
func (w *World) restingSpeed() float64 {
	return 2 * w.gravity.Len() * w.fixedStep
}
