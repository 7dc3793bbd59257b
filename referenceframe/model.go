// Package referenceframe describes the robot as an ordered chain of frames and computes the
// forward kinematics the planner's workspace bounds are derived from.
package referenceframe

import (
	"github.com/pkg/errors"
	"github.com/golang/geo/r3"
	"go.uber.org/multierr"

	"go.viam.com/rbt/spatialmath"
)

// ErrModelInvalid denotes a robot description that cannot be assembled into a joint chain
// with limits.
var ErrModelInvalid = errors.New("robot model invalid")

// JointType distinguishes how a frame articulates.
type JointType string

// The joint types a robot description may carry.
const (
	JointRevolute  = JointType("revolute")
	JointPrismatic = JointType("prismatic")
	JointFixed     = JointType("fixed")
)

// Limit represents the bounds of a movable joint.
type Limit struct {
	Min float64
	Max float64
}

// Frame is one segment of the kinematic chain: a fixed parent-to-joint transform, an optional
// actuated motion about (or along) an axis, and the collision mesh of the link it carries.
type Frame struct {
	Name   string
	Type   JointType
	Origin spatialmath.Pose
	Axis   r3.Vector
	Limit  Limit
	Mesh   *spatialmath.Mesh
}

// Model is a serial chain of frames rooted at the world. It is immutable after construction
// and safe for shared read-only use.
type Model struct {
	name     string
	frames   []Frame
	actuated []int
}

// NewModel assembles and validates a chain of frames.
func NewModel(name string, frames []Frame) (*Model, error) {
	var faults error
	if len(frames) == 0 {
		faults = multierr.Append(faults, errors.New("chain has no frames"))
	}
	var actuated []int
	for i, f := range frames {
		switch f.Type {
		case JointRevolute, JointPrismatic:
			if f.Axis.Norm() == 0 {
				faults = multierr.Append(faults, errors.Errorf("joint %q has a zero axis", f.Name))
			}
			if !(f.Limit.Min < f.Limit.Max) {
				faults = multierr.Append(faults, errors.Errorf("joint %q is missing usable limits", f.Name))
			}
			actuated = append(actuated, i)
		case JointFixed:
		default:
			faults = multierr.Append(faults, errors.Errorf("joint %q has unsupported type %q", f.Name, f.Type))
		}
	}
	if faults != nil {
		return nil, errors.Wrapf(ErrModelInvalid, "%s: %v", name, faults)
	}
	return &Model{name: name, frames: frames, actuated: actuated}, nil
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.name
}

// DoF returns the number of actuated joints.
func (m *Model) DoF() int {
	return len(m.actuated)
}

// Bounds returns the per-joint limits, in joint order.
func (m *Model) Bounds() []Limit {
	bounds := make([]Limit, 0, len(m.actuated))
	for _, i := range m.actuated {
		bounds = append(bounds, m.frames[i].Limit)
	}
	return bounds
}

// framePoses composes the chain under configuration q and returns the world pose reached
// after every frame.
func (m *Model) framePoses(q []float64) ([]spatialmath.Pose, error) {
	if len(q) != m.DoF() {
		return nil, newDimensionError(len(q), m.DoF())
	}
	poses := make([]spatialmath.Pose, len(m.frames))
	pose := spatialmath.NewZeroPose()
	joint := 0
	for i, f := range m.frames {
		origin := f.Origin
		if origin == (spatialmath.Pose{}) {
			// A frame built without an Origin sits at its parent: the zero value is the identity.
			origin = spatialmath.NewZeroPose()
		}
		pose = spatialmath.Compose(pose, origin)
		switch f.Type {
		case JointRevolute:
			pose = spatialmath.Compose(pose, spatialmath.NewPose(r3.Vector{}, spatialmath.NewR4AA(q[joint], f.Axis)))
			joint++
		case JointPrismatic:
			pose = spatialmath.Compose(pose, spatialmath.NewPoseFromPoint(f.Axis.Normalize().Mul(q[joint])))
			joint++
		case JointFixed:
		}
		poses[i] = pose
	}
	return poses, nil
}

// ForwardAll computes forward kinematics in a single traversal: the world pose of the frame
// past each actuated joint, plus the end-effector frame as the final entry. The result has
// DoF()+1 entries.
func (m *Model) ForwardAll(q []float64) ([]spatialmath.Pose, error) {
	poses, err := m.framePoses(q)
	if err != nil {
		return nil, err
	}
	out := make([]spatialmath.Pose, 0, len(m.actuated)+1)
	for _, i := range m.actuated {
		out = append(out, poses[i])
	}
	out = append(out, poses[len(poses)-1])
	return out, nil
}

// ForwardPoint returns the world position of the origin of the frame attached past joint i.
// i == DoF() addresses the end-effector frame.
func (m *Model) ForwardPoint(i int, q []float64) (r3.Vector, error) {
	if i < 0 || i > m.DoF() {
		return r3.Vector{}, errors.Errorf("no frame past joint %d in a %d-joint chain", i, m.DoF())
	}
	all, err := m.ForwardAll(q)
	if err != nil {
		return r3.Vector{}, err
	}
	return all[i].Point(), nil
}

// Radius returns an upper bound on the workspace speed induced on the end effector by unit
// motion at joint i: the distance from the end effector to joint i's axis, measured in the
// plane orthogonal to that axis. Prismatic joints slide at unit speed.
func (m *Model) Radius(i int, q []float64) (float64, error) {
	radii, err := m.Radii(q)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(radii) {
		return 0, errors.Errorf("no joint %d in a %d-joint chain", i, m.DoF())
	}
	return radii[i], nil
}

// Radii returns the reach radius of every joint under configuration q in a single traversal.
func (m *Model) Radii(q []float64) ([]float64, error) {
	poses, err := m.framePoses(q)
	if err != nil {
		return nil, err
	}
	end := poses[len(poses)-1].Point()
	radii := make([]float64, 0, len(m.actuated))
	for _, i := range m.actuated {
		f := m.frames[i]
		if f.Type == JointPrismatic {
			radii = append(radii, 1)
			continue
		}
		axis := spatialmath.RotateVector(poses[i].Quaternion(), f.Axis.Normalize())
		diff := end.Sub(poses[i].Point())
		perp := diff.Sub(axis.Mul(diff.Dot(axis)))
		radii = append(radii, perp.Norm())
	}
	return radii, nil
}

// PosedMeshes returns the collision meshes of every link posed under configuration q.
func (m *Model) PosedMeshes(q []float64) ([]*spatialmath.Mesh, error) {
	poses, err := m.framePoses(q)
	if err != nil {
		return nil, err
	}
	var meshes []*spatialmath.Mesh
	for i, f := range m.frames {
		if f.Mesh == nil {
			continue
		}
		meshes = append(meshes, f.Mesh.Transform(poses[i]))
	}
	return meshes, nil
}

func newDimensionError(got, want int) error {
	return errors.Errorf("configuration has length %d, model has %d degrees of freedom", got, want)
}
