package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/spheredrop/internal/render"
)

// Camera orbits Target at a fixed distance and projects onto a canvas.
type Camera struct {
	Target           mgl64.Vec3
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera(target mgl64.Vec3, zoom float64) *Camera {
	return &Camera{Target: target, Distance: 50, Near: 0.1, RotX: -0.25, RotY: 0.4, Zoom: zoom}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.01, c.Zoom/1.2) }

// view moves p into camera space: relative to the target, rotated about X,
// then Y, then Z.
func (c *Camera) view(p mgl64.Vec3) mgl64.Vec3 {
	q := mgl64.QuatRotate(c.RotZ, mgl64.Vec3{0, 0, 1}).
		Mul(mgl64.QuatRotate(c.RotY, mgl64.Vec3{0, 1, 0})).
		Mul(mgl64.QuatRotate(c.RotX, mgl64.Vec3{1, 0, 0}))
	return q.Rotate(p.Sub(c.Target))
}

// Project converts world coordinates to sub-pixel coordinates on a sw x sh
// surface. It returns x, y, depth, and whether the point is on screen.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.view(p).Mul(c.Zoom)
	dist := c.Distance
	if rot.Z() >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z())
	pScale := float64(min(sw, sh)) / 3.0
	sx := int(rot.X()*scale*pScale) + sw/2
	sy := int(-rot.Y()*scale*pScale) + sh/2
	return sx, sy, rot.Z(), sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// DrawScene draws every visible mesh of the scene as a wireframe.
func DrawScene(cv *Canvas, scene *render.Scene, cam *Camera) {
	if cv == nil || scene == nil || cam == nil {
		return
	}
	w, h := cv.PixelSize()
	for _, m := range scene.Meshes() {
		if !m.Visible {
			continue
		}
		for _, seg := range m.WorldWireframe() {
			x1, y1, _, v1 := cam.Project(seg[0], w, h)
			x2, y2, _, v2 := cam.Project(seg[1], w, h)
			if v1 || v2 {
				cv.DrawLine(x1, y1, x2, y2)
			}
		}
	}
}
