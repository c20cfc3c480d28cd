package render

// Scene owns the meshes that hosts draw each frame.
type Scene struct {
	meshes []*Mesh
}

func NewScene() *Scene {
	return &Scene{meshes: make([]*Mesh, 0, 2)}
}

func (s *Scene) Add(m *Mesh) {
	if m == nil {
		return
	}
	s.meshes = append(s.meshes, m)
}

func (s *Scene) Meshes() []*Mesh {
	out := make([]*Mesh, len(s.meshes))
	copy(out, s.meshes)
	return out
}

// Find returns the first mesh with the given name.
func (s *Scene) Find(name string) (*Mesh, bool) {
	for _, m := range s.meshes {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
