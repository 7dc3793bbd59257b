package spatialmath

import (
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestReadOBJ(t *testing.T) {
	mesh, err := NewMeshFromOBJFile("testdata/cube.obj")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mesh.Label(), test.ShouldEqual, "cube")
	// Six quads fan into twelve triangles.
	test.That(t, mesh.NumTriangles(), test.ShouldEqual, 12)

	center, radius := mesh.BoundingSphere()
	vectorAlmostEqual(t, center, r3.Vector{})
	test.That(t, radius, test.ShouldAlmostEqual, math.Sqrt(0.75), 1e-9)
}

func TestReadOBJIndexForms(t *testing.T) {
	mesh, err := readOBJ("tri", strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/2/3 2//1 -1\n"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mesh.NumTriangles(), test.ShouldEqual, 1)
	tri := mesh.Triangle(0)
	vectorAlmostEqual(t, tri.P2, r3.Vector{Y: 1})
}

func TestReadOBJErrors(t *testing.T) {
	_, err := NewMeshFromOBJFile("testdata/does_not_exist.obj")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrMeshLoadFailed), test.ShouldBeTrue)

	_, err = readOBJ("bad", strings.NewReader("v 0 0 0\nf 1 2 9\n"))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = readOBJ("empty", strings.NewReader("v 0 0 0\n"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMeshTransform(t *testing.T) {
	box := NewBoxMesh("box", r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{})
	moved := box.Transform(NewPoseFromPoint(r3.Vector{X: 3}))

	center, _ := moved.BoundingSphere()
	vectorAlmostEqual(t, center, r3.Vector{X: 3})
	// The original is untouched.
	center, _ = box.BoundingSphere()
	vectorAlmostEqual(t, center, r3.Vector{})
}

func TestMeshDistance(t *testing.T) {
	a := NewBoxMesh("a", r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{})
	b := NewBoxMesh("b", r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 3})

	test.That(t, MeshDistance(a, b), test.ShouldAlmostEqual, 2, 1e-9)
	test.That(t, MeshesIntersect(a, b), test.ShouldBeFalse)

	overlapping := NewBoxMesh("c", r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 0.6, Y: 0.3, Z: 0.2})
	test.That(t, MeshesIntersect(a, overlapping), test.ShouldBeTrue)
	test.That(t, MeshDistance(a, overlapping), test.ShouldEqual, 0)
}
