// Package render holds the presentation side of the simulation: a scene
// graph of meshes whose transforms are written by the frame loop and read by
// whichever host draws them.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultWidthSegments  = 16
	DefaultHeightSegments = 12
)

type Geometry interface {
	// Wireframe returns line segments in mesh-local coordinates.
	Wireframe() [][2]mgl64.Vec3
}

type SphereGeometry struct {
	Radius         float64
	WidthSegments  int
	HeightSegments int
}

func NewSphereGeometry(radius float64) *SphereGeometry {
	return &SphereGeometry{
		Radius:         radius,
		WidthSegments:  DefaultWidthSegments,
		HeightSegments: DefaultHeightSegments,
	}
}

// Wireframe returns latitude rings and longitude meridians.
func (g *SphereGeometry) Wireframe() [][2]mgl64.Vec3 {
	ws, hs := max(g.WidthSegments, 3), max(g.HeightSegments, 2)
	point := func(i, j int) mgl64.Vec3 {
		phi := float64(i) / float64(ws) * 2 * math.Pi
		theta := float64(j) / float64(hs) * math.Pi
		return mgl64.Vec3{
			-g.Radius * math.Cos(phi) * math.Sin(theta),
			g.Radius * math.Cos(theta),
			g.Radius * math.Sin(phi) * math.Sin(theta),
		}
	}

	segs := make([][2]mgl64.Vec3, 0, ws*hs*2)
	for j := 1; j < hs; j++ {
		for i := 0; i < ws; i++ {
			segs = append(segs, [2]mgl64.Vec3{point(i, j), point(i+1, j)})
		}
	}
	for i := 0; i < ws; i++ {
		for j := 0; j < hs; j++ {
			segs = append(segs, [2]mgl64.Vec3{point(i, j), point(i, j+1)})
		}
	}
	return segs
}

// GridGeometry is a flat square grid in the local XZ plane.
type GridGeometry struct {
	Size      float64
	Divisions int
}

func (g *GridGeometry) Wireframe() [][2]mgl64.Vec3 {
	n := max(g.Divisions, 1)
	half := g.Size / 2
	step := g.Size / float64(n)
	segs := make([][2]mgl64.Vec3, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		k := -half + float64(i)*step
		segs = append(segs,
			[2]mgl64.Vec3{{k, 0, -half}, {k, 0, half}},
			[2]mgl64.Vec3{{-half, 0, k}, {half, 0, k}},
		)
	}
	return segs
}

type Material interface {
	// Shade returns an RGB colour in [0,1] for a surface with the given
	// world-space normal.
	Shade(normal mgl64.Vec3) [3]float64
}

// NormalMaterial maps the surface normal onto RGB.
type NormalMaterial struct{}

func (NormalMaterial) Shade(n mgl64.Vec3) [3]float64 {
	n = n.Normalize()
	return [3]float64{(n.X() + 1) / 2, (n.Y() + 1) / 2, (n.Z() + 1) / 2}
}

// BasicMaterial shades every surface with one colour.
type BasicMaterial struct {
	Color [3]float64
}

func (m BasicMaterial) Shade(mgl64.Vec3) [3]float64 { return m.Color }

// Mesh is a visual proxy. The physics step never touches it; the frame loop
// copies body transforms onto Position and Quaternion.
type Mesh struct {
	Name       string
	Geometry   Geometry
	Material   Material
	Position   mgl64.Vec3
	Quaternion mgl64.Quat
	Visible    bool
}

func NewMesh(geometry Geometry, material Material) *Mesh {
	return &Mesh{
		Geometry:   geometry,
		Material:   material,
		Quaternion: mgl64.QuatIdent(),
		Visible:    true,
	}
}

// LocalToWorld transforms a mesh-local point by the mesh's orientation and
// position.
func (m *Mesh) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return m.Quaternion.Rotate(p).Add(m.Position)
}

// WorldWireframe returns the geometry's segments in world space.
func (m *Mesh) WorldWireframe() [][2]mgl64.Vec3 {
	if m.Geometry == nil {
		return nil
	}
	segs := m.Geometry.Wireframe()
	for i := range segs {
		segs[i][0] = m.LocalToWorld(segs[i][0])
		segs[i][1] = m.LocalToWorld(segs[i][1])
	}
	return segs
}
