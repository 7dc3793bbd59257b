package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestClosestPointTo(t *testing.T) {
	tri := Triangle{P0: r3.Vector{}, P1: r3.Vector{X: 1}, P2: r3.Vector{Y: 1}}

	// Projects onto the interior.
	vectorAlmostEqual(t, tri.ClosestPointTo(r3.Vector{X: 0.25, Y: 0.25, Z: 5}), r3.Vector{X: 0.25, Y: 0.25})
	// Clamps to a vertex.
	vectorAlmostEqual(t, tri.ClosestPointTo(r3.Vector{X: -1, Y: -1}), r3.Vector{})
	// Clamps to an edge.
	vectorAlmostEqual(t, tri.ClosestPointTo(r3.Vector{X: 0.5, Y: -2}), r3.Vector{X: 0.5})
}

func TestTriangleDistance(t *testing.T) {
	base := Triangle{P0: r3.Vector{}, P1: r3.Vector{X: 1}, P2: r3.Vector{Y: 1}}

	// Parallel copy two units up.
	lifted := Triangle{P0: r3.Vector{Z: 2}, P1: r3.Vector{X: 1, Z: 2}, P2: r3.Vector{Y: 1, Z: 2}}
	test.That(t, TriangleDistance(base, lifted), test.ShouldAlmostEqual, 2, 1e-9)

	// An edge piercing the base reports contact.
	piercing := Triangle{
		P0: r3.Vector{X: 0.2, Y: 0.2, Z: -1},
		P1: r3.Vector{X: 0.2, Y: 0.2, Z: 1},
		P2: r3.Vector{X: 3, Y: 3, Z: 1},
	}
	test.That(t, trianglesIntersect(base, piercing), test.ShouldBeTrue)
	test.That(t, TriangleDistance(base, piercing), test.ShouldEqual, 0)

	// Closest features are a pair of edges.
	crossed := Triangle{
		P0: r3.Vector{X: 0.5, Y: -1, Z: 1},
		P1: r3.Vector{X: 0.5, Y: 2, Z: 1},
		P2: r3.Vector{X: 5, Y: 0, Z: 5},
	}
	test.That(t, TriangleDistance(base, crossed), test.ShouldAlmostEqual, 1, 1e-9)
}

func TestSegmentDistance(t *testing.T) {
	test.That(t, segmentDistance(
		r3.Vector{X: -1}, r3.Vector{X: 1},
		r3.Vector{Y: -1, Z: 3}, r3.Vector{Y: 1, Z: 3},
	), test.ShouldAlmostEqual, 3, 1e-9)

	// Degenerate segments fall back to point distance.
	test.That(t, segmentDistance(
		r3.Vector{}, r3.Vector{},
		r3.Vector{X: 2}, r3.Vector{X: 2},
	), test.ShouldAlmostEqual, 2, 1e-9)
}
