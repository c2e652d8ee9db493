package objmodel

import "path/filepath"

// ResourceIdentifier names the on-disk geometry of the tracked objects:
// one mesh file per rigid body, all under one directory.
type ResourceIdentifier struct {
	Directory string   `yaml:"directory"`
	Meshes    []string `yaml:"meshes"`
}

// Count returns the number of rigid bodies the identifier resolves to.
func (ri ResourceIdentifier) Count() int {
	return len(ri.Meshes)
}

// MeshPath returns the full path of mesh i.
func (ri ResourceIdentifier) MeshPath(i int) string {
	return filepath.Join(ri.Directory, ri.Meshes[i])
}

// Body is the geometry of one rigid body in its local frame.
type Body struct {
	Name      string
	Vertices  [][3]float64
	Triangles [][3]int
}

// ObjectModel is the loaded geometry of all tracked rigid bodies.
// Read-only after construction.
type ObjectModel struct {
	bodies []Body
}

// New builds an object model directly from body geometry, bypassing the
// filesystem loader.
func New(bodies []Body) *ObjectModel {
	return &ObjectModel{bodies: bodies}
}

func (m *ObjectModel) BodyCount() int {
	return len(m.bodies)
}

func (m *ObjectModel) Body(i int) *Body {
	return &m.bodies[i]
}

// Loader resolves a resource identifier into an object model.
type Loader interface {
	Load(ri ResourceIdentifier) (*ObjectModel, error)
}
