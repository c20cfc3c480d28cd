package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/spheredrop/internal/config"
	"github.com/san-kum/spheredrop/internal/sim"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(1, 5)
	c.Set(-1, 0)
	c.Set(100, 100)

	if !c.IsSet(1, 5) {
		t.Error("expected pixel to be set")
	}
	if c.Grid[1][0] != brailleBlank|0x10 {
		t.Errorf("unexpected cell %U", c.Grid[1][0])
	}

	c.Clear()
	if c.IsSet(1, 5) {
		t.Error("expected pixel cleared")
	}
	if lines := strings.Count(c.String(), "\n"); lines != 2 {
		t.Errorf("expected 2 rows, got %d", lines)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 0)
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 0) {
			t.Fatalf("pixel %d not set", x)
		}
	}
}

func TestCameraProjectsTargetToCentre(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{0, 5, 0}, 1)
	x, y, _, ok := cam.Project(mgl64.Vec3{0, 5, 0}, 120, 80)
	if !ok || x != 60 || y != 40 {
		t.Errorf("expected target at centre, got (%d,%d) visible=%v", x, y, ok)
	}
}

func TestNextTheme(t *testing.T) {
	seen := map[string]bool{}
	name := Themes[0].Name
	for range Themes {
		name = NextTheme(name).Name
		seen[name] = true
	}
	if len(seen) != len(Themes) {
		t.Errorf("expected to cycle through %d themes, saw %d", len(Themes), len(seen))
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("expected fallback theme")
	}
}

func TestModelTickRunsOneFrame(t *testing.T) {
	m, err := NewModel(config.DefaultConfig(), 60)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	for i := 0; i < 5; i++ {
		next, cmd := m.Update(TickMsg(time.Now()))
		if cmd == nil {
			t.Fatal("expected next tick to be scheduled")
		}
		m = next.(Model)
	}

	if m.loop.Frames() != 5 {
		t.Errorf("expected 5 frames, got %d", m.loop.Frames())
	}
	if m.sim.Mesh.Position != m.sim.Sphere.Position {
		t.Error("mesh not synced with body")
	}
	if !strings.HasPrefix(m.diag.line, "Sphere y position: ") {
		t.Errorf("unexpected diagnostic line %q", m.diag.line)
	}
	if !strings.Contains(m.View(), "SPHERE DROP") {
		t.Error("expected title in view")
	}
}

func TestModelPauseAndReset(t *testing.T) {
	m, err := NewModel(config.DefaultConfig(), 60)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("paused view should keep ticking")
	}
	if m.loop.Frames() != 0 {
		t.Errorf("expected no frames while paused, got %d", m.loop.Frames())
	}

	m.running = true
	m.Update(TickMsg(time.Now()))
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if m.loop.Frames() != 0 || m.sim.World.StepCount() != 0 {
		t.Error("expected reset to rebuild the scene")
	}
}

func TestSnapshotDrawsScene(t *testing.T) {
	s, err := sim.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	cv := Snapshot(s)

	w, h := cv.PixelSize()
	lit := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if cv.IsSet(x, y) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected the sphere and ground to light the canvas")
	}
}
