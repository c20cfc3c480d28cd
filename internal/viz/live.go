package viz

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/spheredrop/internal/config"
	"github.com/san-kum/spheredrop/internal/frame"
	"github.com/san-kum/spheredrop/internal/sim"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 240
	defaultZoom     = 0.13
)

type TickMsg time.Time

// lastLine keeps the most recent diagnostic line written by the loop.
type lastLine struct{ line string }

func (l *lastLine) Write(p []byte) (int, error) {
	l.line = string(bytes.TrimRight(p, "\n"))
	return len(p), nil
}

// Model is the live terminal view. Each TickMsg schedules the next tick and
// then runs one frame.
type Model struct {
	cfg      *config.Config
	fps      int
	sim      *sim.Simulation
	loop     *frame.Loop
	diag     *lastLine
	canvas   *Canvas
	camera   *Camera
	heights  []float64
	running  bool
	showHelp bool
	theme    Theme
	styles   styles
}

func NewModel(cfg *config.Config, fps int) (Model, error) {
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	m := Model{
		cfg:     cfg,
		fps:     fps,
		diag:    &lastLine{},
		canvas:  NewCanvas(width, height),
		running: true,
		theme:   Themes[0],
	}
	m.styles = newStyles(m.theme)
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) reset() error {
	s, err := sim.New(m.cfg)
	if err != nil {
		return err
	}
	m.sim = s
	m.loop = frame.NewLoop(s, s.Sphere, s.Mesh, m.diag)
	m.heights = make([]float64, 0, historyCapacity)
	m.camera = sceneCamera(s)
	return nil
}

// sceneCamera frames the drop: it looks at half the start height and zooms
// out for taller drops.
func sceneCamera(s *sim.Simulation) *Camera {
	target := mgl64.Vec3{0, s.Sphere.Position.Y() / 2, 0}
	return NewCamera(target, defaultZoom*10/max(target.Y()*2, 10))
}

// Snapshot draws the simulation's scene, as it is now, onto a fresh canvas
// of the live view's size.
func Snapshot(s *sim.Simulation) *Canvas {
	cv := NewCanvas(width, height)
	DrawScene(cv, s.Scene, sceneCamera(s))
	return cv
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				return m, tea.Quit
			}
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case TickMsg:
		next := m.tick()
		if m.running {
			m.step()
		}
		return m, next
	}
	return m, nil
}

func (m *Model) step() {
	m.loop.OnFrame()
	m.heights = append(m.heights, m.sim.Mesh.Position.Y())
	if len(m.heights) > historyCapacity {
		m.heights = m.heights[1:]
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	DrawScene(m.canvas, m.sim.Scene, m.camera)
	canvasView := m.styles.canvas.Render(m.canvas.String())

	var s strings.Builder
	title := "SPHERE DROP"
	if m.cfg != nil && m.cfg.Preset != "" {
		title += " · " + strings.ToUpper(m.cfg.Preset)
	}
	s.WriteString(m.styles.header.Render(title) + "\n")
	if m.running {
		s.WriteString(m.styles.run.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(m.styles.pause.Render("PAUSED") + "\n\n")
	}

	sample := m.sim.Sample()
	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.3f s", sample.Time))
	row("frame", fmt.Sprintf("%d", m.loop.Frames()))
	row("height", fmt.Sprintf("%.4f m", sample.Height()))
	row("velocity", fmt.Sprintf("%.4f m/s", sample.Velocity.Y()))
	row("contact", fmt.Sprintf("%v", sample.InContact))
	row("gravity", fmt.Sprintf("%.2f m/s²", m.sim.World.Gravity().Y()))
	row("fps", fmt.Sprintf("%d", m.fps))

	if len(m.heights) > 1 {
		graph := asciigraph.Plot(m.heights,
			asciigraph.Height(8),
			asciigraph.Width(36),
			asciigraph.Precision(1),
			asciigraph.Caption("height (m)"))
		s.WriteString(m.styles.graph.Render(graph) + "\n")
	}
	if m.diag.line != "" {
		s.WriteString(m.styles.help.Render(m.diag.line) + "\n")
	}

	if m.showHelp {
		s.WriteString(m.styles.help.Render("space pause · r reset · t theme · x/y/z rotate · +/- zoom · q quit"))
	} else {
		s.WriteString(m.styles.help.Render("? help · q quit"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.stats.Render(s.String()))
}

// RunLive runs the live view until the user quits.
func RunLive(cfg *config.Config, fps int) error {
	m, err := NewModel(cfg, fps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
