package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func vectorAlmostEqual(t *testing.T, got, want r3.Vector) {
	t.Helper()
	test.That(t, got.X, test.ShouldAlmostEqual, want.X, 1e-9)
	test.That(t, got.Y, test.ShouldAlmostEqual, want.Y, 1e-9)
	test.That(t, got.Z, test.ShouldAlmostEqual, want.Z, 1e-9)
}

func TestTransformPoint(t *testing.T) {
	quarter := NewPose(r3.Vector{X: 1}, NewR4AA(math.Pi/2, r3.Vector{Z: 1}))
	vectorAlmostEqual(t, quarter.TransformPoint(r3.Vector{X: 1}), r3.Vector{X: 1, Y: 1})

	shift := NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3})
	vectorAlmostEqual(t, shift.TransformPoint(r3.Vector{X: 1}), r3.Vector{X: 2, Y: 2, Z: 3})
}

func TestCompose(t *testing.T) {
	rot := NewPose(r3.Vector{}, NewR4AA(math.Pi/2, r3.Vector{Z: 1}))
	shift := NewPoseFromPoint(r3.Vector{X: 1})

	// Rotating first carries the later translation along.
	combined := Compose(rot, shift)
	vectorAlmostEqual(t, combined.Point(), r3.Vector{Y: 1})

	// Translating first leaves the rotation downstream.
	combined = Compose(shift, rot)
	vectorAlmostEqual(t, combined.Point(), r3.Vector{X: 1})
	vectorAlmostEqual(t, combined.TransformPoint(r3.Vector{X: 1}), r3.Vector{X: 1, Y: 1})

	identity := Compose(NewZeroPose(), NewZeroPose())
	vectorAlmostEqual(t, identity.TransformPoint(r3.Vector{X: 2, Y: 3}), r3.Vector{X: 2, Y: 3})
}

func TestEulerAngles(t *testing.T) {
	yaw := NewEulerAngles(0, 0, math.Pi/2)
	vectorAlmostEqual(t, RotateVector(yaw.Quaternion(), r3.Vector{X: 1}), r3.Vector{Y: 1})

	roll := NewEulerAngles(math.Pi/2, 0, 0)
	vectorAlmostEqual(t, RotateVector(roll.Quaternion(), r3.Vector{Y: 1}), r3.Vector{Z: 1})

	// Fixed-axis composition: roll about x, then pitch about the fixed y.
	rp := NewEulerAngles(math.Pi/2, math.Pi/2, 0)
	vectorAlmostEqual(t, RotateVector(rp.Quaternion(), r3.Vector{Y: 1}), r3.Vector{X: 1})
}

func TestR4AA(t *testing.T) {
	zero := NewR4AA(1.5, r3.Vector{})
	vectorAlmostEqual(t, RotateVector(zero.Quaternion(), r3.Vector{X: 1}), r3.Vector{X: 1})

	// Axis normalization is handled internally.
	unnormalized := NewR4AA(math.Pi, r3.Vector{Z: 10})
	vectorAlmostEqual(t, RotateVector(unnormalized.Quaternion(), r3.Vector{X: 1}), r3.Vector{X: -1})
}
