// Package gui hosts the frame loop in a raylib window. The window's
// vsync-paced present is the refresh facility that schedules frames.
package gui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/spheredrop/internal/config"
	"github.com/san-kum/spheredrop/internal/frame"
	"github.com/san-kum/spheredrop/internal/render"
	"github.com/san-kum/spheredrop/internal/sim"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

var (
	ColBg   = rl.NewColor(10, 10, 10, 255)
	ColText = rl.NewColor(140, 140, 140, 255)
)

// Host is a frame.Scheduler backed by a raylib window. Next presents the
// previous frame, waits for the target frame rate, and releases the next one.
type Host struct {
	scene   *render.Scene
	readout func() mgl64.Vec3
	camera  rl.Camera3D
	started bool
	opened  bool
}

var _ frame.Scheduler = (*Host)(nil)

// NewHost opens a window targeting fps frames per second.
func NewHost(scene *render.Scene, fps int, title string, readout func() mgl64.Vec3) *Host {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, title)
	rl.SetTargetFPS(int32(fps))
	slog.Info("window opened", "width", windowWidth, "height", windowHeight, "fps", fps)

	return &Host{
		scene:   scene,
		readout: readout,
		camera: rl.NewCamera3D(
			rl.NewVector3(12, 8, 18),
			rl.NewVector3(0, 4, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		opened: true,
	}
}

func (h *Host) Next(ctx context.Context) error {
	if h.started {
		h.draw()
	}
	h.started = true
	if err := ctx.Err(); err != nil {
		return err
	}
	if rl.WindowShouldClose() {
		return frame.ErrExhausted
	}
	return nil
}

func (h *Host) Stop() {
	if !h.opened {
		return
	}
	h.opened = false
	rl.CloseWindow()
	slog.Info("window closed")
}

func (h *Host) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(h.camera)
	for _, m := range h.scene.Meshes() {
		if m.Visible {
			drawMesh(m)
		}
	}
	rl.EndMode3D()

	if h.readout != nil {
		p := h.readout()
		rl.DrawText(frame.FormatLine(p.Y()), 20, 20, 20, ColText)
	}
	rl.DrawFPS(20, windowHeight-40)
	rl.EndDrawing()
}

func drawMesh(m *render.Mesh) {
	for _, seg := range m.WorldWireframe() {
		mid := seg[0].Add(seg[1]).Mul(0.5)
		rl.DrawLine3D(vec(seg[0]), vec(seg[1]), shade(m.Material, mid.Sub(m.Position)))
	}
}

func shade(mat render.Material, normal mgl64.Vec3) rl.Color {
	if mat == nil {
		return rl.White
	}
	c := mat.Shade(normal)
	return rl.NewColor(uint8(c[0]*255), uint8(c[1]*255), uint8(c[2]*255), 255)
}

func vec(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// Run opens a window and runs the frame loop in it until the window closes.
// Diagnostic lines go to sink.
func Run(ctx context.Context, cfg *config.Config, sink io.Writer) error {
	s, err := sim.New(cfg)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	loop := frame.NewLoop(s, s.Sphere, s.Mesh, sink)
	host := NewHost(s.Scene, s.Config().Loop.FPS, "spheredrop", func() mgl64.Vec3 { return s.Mesh.Position })
	return loop.Run(ctx, host)
}
