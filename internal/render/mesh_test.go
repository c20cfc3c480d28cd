package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereWireframe_OnSurface(t *testing.T) {
	g := NewSphereGeometry(2)
	segs := g.Wireframe()
	require.NotEmpty(t, segs)
	for _, s := range segs {
		assert.InDelta(t, 2.0, s[0].Len(), 1e-9)
		assert.InDelta(t, 2.0, s[1].Len(), 1e-9)
	}
}

func TestMeshLocalToWorld(t *testing.T) {
	m := NewMesh(NewSphereGeometry(1), NormalMaterial{})
	m.Position = mgl64.Vec3{1, 2, 3}
	m.Quaternion = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})

	got := m.LocalToWorld(mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, 0, got.Sub(mgl64.Vec3{1, 3, 3}).Len(), 1e-9, "got %v", got)
}

func TestNormalMaterial(t *testing.T) {
	c := NormalMaterial{}.Shade(mgl64.Vec3{0, 1, 0})
	assert.InDeltaSlice(t, []float64{0.5, 1, 0.5}, c[:], 1e-12)
}

func TestScene(t *testing.T) {
	s := NewScene()
	m := NewMesh(&GridGeometry{Size: 10, Divisions: 5}, BasicMaterial{})
	m.Name = "ground"
	s.Add(m)
	s.Add(nil)

	assert.Len(t, s.Meshes(), 1)
	found, ok := s.Find("ground")
	require.True(t, ok)
	assert.Same(t, m, found)
	assert.Len(t, found.Geometry.Wireframe(), 12)

	_, ok = s.Find("missing")
	assert.False(t, ok)
}
