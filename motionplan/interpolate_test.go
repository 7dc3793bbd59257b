package motionplan

import (
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestInterpolatePath(t *testing.T) {
	path := [][]float64{{0, 0}, {1, 0}}
	dense := InterpolatePath(path, 0.1)

	// A unit segment at step 0.1 yields 11 waypoints at spacing <= 0.1.
	test.That(t, len(dense), test.ShouldEqual, 11)
	test.That(t, dense[0], test.ShouldResemble, []float64{0, 0})
	test.That(t, dense[len(dense)-1], test.ShouldResemble, []float64{1, 0})
	for i := 0; i+1 < len(dense); i++ {
		test.That(t, configDistance(dense[i], dense[i+1]), test.ShouldBeLessThanOrEqualTo, 0.1+1e-12)
	}
}

func TestInterpolatePathDegenerate(t *testing.T) {
	single := [][]float64{{1, 2}}
	test.That(t, InterpolatePath(single, 0.1), test.ShouldResemble, single)

	// Zero step disables densification.
	path := [][]float64{{0, 0}, {1, 0}}
	test.That(t, InterpolatePath(path, 0), test.ShouldResemble, path)

	// Duplicate waypoints survive without division blowups.
	dup := [][]float64{{1, 1}, {1, 1}}
	dense := InterpolatePath(dup, 0.1)
	test.That(t, dense[0], test.ShouldResemble, []float64{1, 1})
	test.That(t, dense[len(dense)-1], test.ShouldResemble, []float64{1, 1})
}

func TestWritePath(t *testing.T) {
	var sb strings.Builder
	err := WritePath(&sb, [][]float64{{0, 0.5}, {1, -2}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sb.String(), test.ShouldEqual, "0,0.5\n1,-2\n")
}
