// Package models provides mesh loading and representation for facet.
package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// ErrIndexRange is returned when a face references a vertex that does not exist.
var ErrIndexRange = errors.New("face index out of range")

// Face is an ordered sequence of 0-based indices into Mesh.Vertices.
// Faces with fewer than 3 indices are degenerate and never drawn; faces with
// more than 3 are drawn as their leading triangle only.
type Face []int

// Triangle returns the leading triangle of the face.
// ok is false for faces with fewer than 3 indices.
func (f Face) Triangle() (tri [3]int, ok bool) {
	if len(f) < 3 {
		return tri, false
	}
	return [3]int{f[0], f[1], f[2]}, true
}

// Mesh is a flat vertex list plus a face list. It is loaded once and then
// shared read-only by the transform stage and the rasterizer.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Bounds returns the axis-aligned bounding box computed by CalculateBounds.
func (m *Mesh) Bounds() (lo, hi math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces, degenerate ones included.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Vertex returns the object-space position of vertex i.
func (m *Mesh) Vertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// Face returns the indices of face i.
func (m *Mesh) Face(i int) []int {
	return m.Faces[i]
}

// Validate checks that every face index lies in [0, VertexCount).
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for fi, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d: index %d with %d vertices: %w", fi, idx, n, ErrIndexRange)
			}
		}
	}
	return nil
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Fit recentres the mesh on the origin and scales it so its largest
// dimension equals target. Empty or flat-to-a-point meshes are left alone.
func (m *Mesh) Fit(target float64) {
	m.CalculateBounds()
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim <= 0 || target <= 0 {
		return
	}
	scale := target / maxDim
	m.Transform(math3d.ScaleUniform(scale).Mul(math3d.Translate(m.Center().Scale(-1))))
}

// Stats summarises the face list.
type Stats struct {
	Vertices   int
	Faces      int
	Triangles  int // faces with exactly 3 indices
	Polygons   int // faces with more than 3 indices, drawn as their leading triangle
	Degenerate int // faces with fewer than 3 indices, never drawn
}

// Stats counts faces by arity.
func (m *Mesh) Stats() Stats {
	s := Stats{Vertices: len(m.Vertices), Faces: len(m.Faces)}
	for _, f := range m.Faces {
		switch {
		case len(f) < 3:
			s.Degenerate++
		case len(f) == 3:
			s.Triangles++
		default:
			s.Polygons++
		}
	}
	return s
}
