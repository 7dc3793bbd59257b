package spatialmath

import (
	"math"

	"github.com/pkg/errors"
	"github.com/golang/geo/r3"
)

// Triangle is a triangle in three dimensions.
type Triangle struct {
	P0 r3.Vector
	P1 r3.Vector
	P2 r3.Vector
}

// Mesh is an immutable triangle mesh. The zero transform places its vertices in the frame
// they were constructed in; use Transform to pose a copy in the world.
type Mesh struct {
	label    string
	vertices []r3.Vector
	faces    [][3]int

	center r3.Vector
	radius float64
}

// NewMesh creates a mesh from a vertex list and triangular faces indexing into it.
func NewMesh(label string, vertices []r3.Vector, faces [][3]int) (*Mesh, error) {
	for _, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(vertices) {
				return nil, errors.Errorf("mesh %q: face index %d out of range for %d vertices", label, idx, len(vertices))
			}
		}
	}
	m := &Mesh{label: label, vertices: vertices, faces: faces}
	m.computeBoundingSphere()
	return m, nil
}

// Label returns the name of the mesh.
func (m *Mesh) Label() string {
	return m.label
}

// NumTriangles returns the number of triangular faces.
func (m *Mesh) NumTriangles() int {
	return len(m.faces)
}

// Triangle returns the i-th triangular face.
func (m *Mesh) Triangle(i int) Triangle {
	f := m.faces[i]
	return Triangle{P0: m.vertices[f[0]], P1: m.vertices[f[1]], P2: m.vertices[f[2]]}
}

// Transform returns a copy of the mesh with every vertex moved by the given pose. Faces are
// shared with the receiver; vertex storage is not.
func (m *Mesh) Transform(pose Pose) *Mesh {
	moved := make([]r3.Vector, len(m.vertices))
	for i, v := range m.vertices {
		moved[i] = pose.TransformPoint(v)
	}
	posed := &Mesh{label: m.label, vertices: moved, faces: m.faces}
	posed.computeBoundingSphere()
	return posed
}

// BoundingSphere returns a sphere containing every vertex of the mesh, for cheap
// pair rejection before exact triangle queries.
func (m *Mesh) BoundingSphere() (r3.Vector, float64) {
	return m.center, m.radius
}

func (m *Mesh) computeBoundingSphere() {
	if len(m.vertices) == 0 {
		return
	}
	var c r3.Vector
	for _, v := range m.vertices {
		c = c.Add(v)
	}
	c = c.Mul(1 / float64(len(m.vertices)))
	r := 0.
	for _, v := range m.vertices {
		if d := v.Sub(c).Norm(); d > r {
			r = d
		}
	}
	m.center, m.radius = c, r
}

// NewBoxMesh returns an axis-aligned box of the given full extents centered at center,
// triangulated with two faces per side.
func NewBoxMesh(label string, dims, center r3.Vector) *Mesh {
	h := dims.Mul(0.5)
	vertices := []r3.Vector{
		{X: center.X - h.X, Y: center.Y - h.Y, Z: center.Z - h.Z},
		{X: center.X + h.X, Y: center.Y - h.Y, Z: center.Z - h.Z},
		{X: center.X + h.X, Y: center.Y + h.Y, Z: center.Z - h.Z},
		{X: center.X - h.X, Y: center.Y + h.Y, Z: center.Z - h.Z},
		{X: center.X - h.X, Y: center.Y - h.Y, Z: center.Z + h.Z},
		{X: center.X + h.X, Y: center.Y - h.Y, Z: center.Z + h.Z},
		{X: center.X + h.X, Y: center.Y + h.Y, Z: center.Z + h.Z},
		{X: center.X - h.X, Y: center.Y + h.Y, Z: center.Z + h.Z},
	}
	faces := [][3]int{
		{0, 1, 2}, {0, 2, 3},
		{4, 6, 5}, {4, 7, 6},
		{0, 5, 1}, {0, 4, 5},
		{3, 2, 6}, {3, 6, 7},
		{0, 3, 7}, {0, 7, 4},
		{1, 5, 6}, {1, 6, 2},
	}
	m := &Mesh{label: label, vertices: vertices, faces: faces}
	m.computeBoundingSphere()
	return m
}

// MeshDistance returns the minimum distance between the surfaces of two posed meshes.
// Interpenetrating meshes report 0.
func MeshDistance(a, b *Mesh) float64 {
	best := math.Inf(1)
	for i := 0; i < a.NumTriangles(); i++ {
		ta := a.Triangle(i)
		for j := 0; j < b.NumTriangles(); j++ {
			d := TriangleDistance(ta, b.Triangle(j))
			if d < best {
				best = d
			}
			if best == 0 {
				return 0
			}
		}
	}
	return best
}

// MeshesIntersect reports whether any pair of triangles from the two meshes intersects.
func MeshesIntersect(a, b *Mesh) bool {
	for i := 0; i < a.NumTriangles(); i++ {
		ta := a.Triangle(i)
		for j := 0; j < b.NumTriangles(); j++ {
			if trianglesIntersect(ta, b.Triangle(j)) {
				return true
			}
		}
	}
	return false
}
