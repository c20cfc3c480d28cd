package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/spheredrop/internal/config"
	"github.com/san-kum/spheredrop/internal/dynamo"
	"github.com/san-kum/spheredrop/internal/sim"
	"github.com/san-kum/spheredrop/internal/viz"
)

// CanvasToSVG renders every lit sub-pixel of a braille canvas as a dot,
// scale units apart.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	pw, ph := canvas.PixelSize()
	width := float64(pw) * scale
	height := float64(ph) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#7aa2f7">
`, width, height, width, height)

	r := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SceneToSVG rebuilds the scene described by cfg, poses the sphere as in
// sample and renders the wireframe view as SVG dots.
func SceneToSVG(cfg *config.Config, sample dynamo.Sample, scale float64) (string, error) {
	s, err := sim.New(cfg)
	if err != nil {
		return "", err
	}
	s.Sphere.Position = sample.Position
	s.Sphere.Quaternion = sample.Quaternion
	s.Mesh.Position = sample.Position
	s.Mesh.Quaternion = sample.Quaternion
	return CanvasToSVG(viz.Snapshot(s), scale), nil
}

// Point is one vertex of a plotted trace.
type Point struct{ X, Y float64 }

// HeightTrace returns (time, height) points for a run.
func HeightTrace(samples []dynamo.Sample) []Point {
	pts := make([]Point, len(samples))
	for i, s := range samples {
		pts[i] = Point{X: s.Time, Y: s.Height()}
	}
	return pts
}

// TraceToSVG draws points as a single polyline scaled to fit the viewport,
// with an optional dashed reference line at height refY.
func TraceToSVG(points []Point, width, height int, strokeColor string, refY *float64) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	if refY != nil {
		minY = min(minY, *refY)
		maxY = max(maxY, *refY)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	sx := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	sy := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if refY != nil {
		y := sy(*refY)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444444" stroke-dasharray="4 4"/>
`, y, width, y))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", sx(p.X), sy(p.Y)))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", sx(p.X), sy(p.Y)))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
