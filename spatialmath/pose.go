// Package spatialmath defines the spatial math primitives the planner operates on: rigid
// transforms, orientations, and triangle meshes with proximity queries.
package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a rigid transform in three dimensions: a rotation followed by a translation.
type Pose struct {
	o quat.Number
	p r3.Vector
}

// NewZeroPose returns the identity transform.
func NewZeroPose() Pose {
	return Pose{o: quat.Number{Real: 1}}
}

// NewPose takes a point and an orientation and returns the Pose they represent.
func NewPose(p r3.Vector, o Orientation) Pose {
	return Pose{o: o.Quaternion(), p: p}
}

// NewPoseFromPoint takes a point and returns the Pose that translates to it without rotation.
func NewPoseFromPoint(p r3.Vector) Pose {
	return Pose{o: quat.Number{Real: 1}, p: p}
}

// Point returns the translation component of the pose.
func (p Pose) Point() r3.Vector {
	return p.p
}

// Quaternion returns the rotation component of the pose as a unit quaternion.
func (p Pose) Quaternion() quat.Number {
	return p.o
}

// TransformPoint applies the pose to a point expressed in the pose's frame.
func (p Pose) TransformPoint(pt r3.Vector) r3.Vector {
	return RotateVector(p.o, pt).Add(p.p)
}

// Compose treats `b` as being expressed in the frame of `a` and returns the combined transform.
func Compose(a, b Pose) Pose {
	return Pose{
		o: quat.Mul(a.o, b.o),
		p: a.p.Add(RotateVector(a.o, b.p)),
	}
}

// RotateVector rotates v by the unit quaternion q.
func RotateVector(q quat.Number, v r3.Vector) r3.Vector {
	qv := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	res := quat.Mul(quat.Mul(q, qv), quat.Conj(q))
	return r3.Vector{X: res.Imag, Y: res.Jmag, Z: res.Kmag}
}
