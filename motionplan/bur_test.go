package motionplan

import (
	"math"
	"testing"

	"go.viam.com/test"
)

// Every sampled point along every bur arm must keep positive workspace clearance.
func TestBurEndpointSafety(t *testing.T) {
	model := planarArm(t)
	env := blockedLineEnv(t, model)

	qNear := []float64{math.Pi / 2, 0}
	test.That(t, env.SetPose(qNear), test.ShouldBeNil)
	actual := env.ClosestDistance()
	test.That(t, actual, test.ShouldBeGreaterThan, 0.5)

	// Certify against a clearance deliberately smaller than the measured one.
	dClosest := 0.5
	directions := [][]float64{
		{qNear[0] + 1, qNear[1]},
		{qNear[0], qNear[1] - 1},
	}
	b, err := burEndpoints(model, qNear, directions, dClosest)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(b.endpoints), test.ShouldEqual, 2)

	for _, endpoint := range b.endpoints {
		for i := 0; i <= 64; i++ {
			s := float64(i) / 64
			sample := []float64{
				qNear[0] + s*(endpoint[0]-qNear[0]),
				qNear[1] + s*(endpoint[1]-qNear[1]),
			}
			test.That(t, env.SetPose(sample), test.ShouldBeNil)
			test.That(t, env.ClosestDistance(), test.ShouldBeGreaterThan, 0)
		}
	}
}

// Bur arms make real progress away from the center when clearance allows.
func TestBurEndpointProgress(t *testing.T) {
	model := planarArm(t)
	qNear := []float64{math.Pi / 2, 0}
	b, err := burEndpoints(model, qNear, [][]float64{{qNear[0] + 1, qNear[1]}}, 0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, configDistance(b.endpoints[0], qNear), test.ShouldBeGreaterThan, 0.01)
	// Never further than the direction itself.
	test.That(t, configDistance(b.endpoints[0], qNear), test.ShouldBeLessThanOrEqualTo, 1+1e-9)
}

// A zero-length direction clamps its endpoint to the center.
func TestBurZeroDirection(t *testing.T) {
	model := planarArm(t)
	qNear := []float64{0.3, -0.2}
	b, err := burEndpoints(model, qNear, [][]float64{cloneConfig(qNear)}, 0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.endpoints[0], test.ShouldResemble, qNear)
}

// Infinite clearance certifies the entire segment to each direction.
func TestBurInfiniteClearance(t *testing.T) {
	model := planarArm(t)
	qNear := []float64{0, 0}
	direction := []float64{1.2, -0.7}
	b, err := burEndpoints(model, qNear, [][]float64{direction}, math.Inf(1))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.endpoints[0], test.ShouldResemble, direction)
}

// rhoR is symmetric in its snapshots and zero for identical configurations.
func TestRhoR(t *testing.T) {
	model := planarArm(t)
	a, err := forwardPoints(model, []float64{0, 0})
	test.That(t, err, test.ShouldBeNil)
	b, err := forwardPoints(model, []float64{math.Pi / 2, 0})
	test.That(t, err, test.ShouldBeNil)

	test.That(t, rhoR(a, a), test.ShouldEqual, 0)
	// The stretched tip sweeps from (2,0) to (0,2).
	test.That(t, rhoR(a, b), test.ShouldAlmostEqual, 2*math.Sqrt2, 1e-9)
	test.That(t, rhoR(a, b), test.ShouldAlmostEqual, rhoR(b, a), 1e-12)
}
