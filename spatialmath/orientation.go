package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Orientation is any representation of a rotation that can express itself as a unit quaternion.
type Orientation interface {
	Quaternion() quat.Number
}

// EulerAngles are the fixed-axis roll (x), pitch (y), yaw (z) angles, in radians, as used by
// URDF origin `rpy` attributes.
type EulerAngles struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

// NewEulerAngles returns an EulerAngles rotation from roll, pitch and yaw in radians.
func NewEulerAngles(roll, pitch, yaw float64) *EulerAngles {
	return &EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}
}

// Quaternion returns the orientation as a unit quaternion. Fixed-axis xyz rotation is the
// intrinsic ZYX composition.
func (ea *EulerAngles) Quaternion() quat.Number {
	q := mgl64.AnglesToQuat(ea.Yaw, ea.Pitch, ea.Roll, mgl64.ZYX)
	return quat.Number{Real: q.W, Imag: q.V.X(), Jmag: q.V.Y(), Kmag: q.V.Z()}
}

// R4AA is an axis-angle rotation: Theta radians about the (normalized) axis RX, RY, RZ.
type R4AA struct {
	Theta float64
	RX    float64
	RY    float64
	RZ    float64
}

// NewR4AA returns a rotation of theta radians about the given axis.
func NewR4AA(theta float64, axis r3.Vector) *R4AA {
	return &R4AA{Theta: theta, RX: axis.X, RY: axis.Y, RZ: axis.Z}
}

// Quaternion returns the orientation as a unit quaternion.
func (aa *R4AA) Quaternion() quat.Number {
	axis := r3.Vector{X: aa.RX, Y: aa.RY, Z: aa.RZ}
	norm := axis.Norm()
	if norm == 0 {
		return quat.Number{Real: 1}
	}
	axis = axis.Mul(1 / norm)
	s, c := math.Sincos(aa.Theta / 2)
	return quat.Number{Real: c, Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}
