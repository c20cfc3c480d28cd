// Package frame drives a simulation once per display refresh and mirrors the
// simulated sphere onto its render mesh.
package frame

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/san-kum/spheredrop/internal/dynamo"
	"github.com/san-kum/spheredrop/internal/physics"
	"github.com/san-kum/spheredrop/internal/render"
)

const linePrefix = "Sphere y position: "

// Loop holds non-owning references to the driver, the tracked body and the
// mesh it copies onto. It is not safe for concurrent use.
type Loop struct {
	driver dynamo.Driver
	body   *physics.Body
	mesh   *render.Mesh
	sink   io.Writer
	buf    []byte
	frames int
}

// NewLoop returns a loop writing diagnostics to sink. A nil sink discards them.
func NewLoop(driver dynamo.Driver, body *physics.Body, mesh *render.Mesh, sink io.Writer) *Loop {
	if sink == nil {
		sink = io.Discard
	}
	return &Loop{
		driver: driver,
		body:   body,
		mesh:   mesh,
		sink:   sink,
		buf:    make([]byte, 0, 64),
	}
}

// OnFrame advances the world one fixed step, copies the body's position and
// orientation onto the mesh, and writes the body's height to the sink.
func (l *Loop) OnFrame() {
	l.driver.Advance()

	l.mesh.Position = l.body.Position
	l.mesh.Quaternion = l.body.Quaternion

	l.buf = append(l.buf[:0], linePrefix...)
	l.buf = strconv.AppendFloat(l.buf, l.body.Position.Y(), 'g', -1, 64)
	l.buf = append(l.buf, '\n')
	l.sink.Write(l.buf)

	l.frames++
}

func (l *Loop) Frames() int { return l.frames }

// Run invokes OnFrame once per tick of sched. The next tick is requested
// before each frame's work runs. Run returns nil when the scheduler is
// exhausted and ctx.Err() when ctx ends first.
func (l *Loop) Run(ctx context.Context, sched Scheduler) error {
	defer sched.Stop()
	for {
		if err := sched.Next(ctx); err != nil {
			if errors.Is(err, ErrExhausted) {
				return nil
			}
			return err
		}
		l.OnFrame()
	}
}

// FormatLine renders the diagnostic line for height y, without a newline.
func FormatLine(y float64) string {
	return linePrefix + strconv.FormatFloat(y, 'g', -1, 64)
}
