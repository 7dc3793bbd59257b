package motionplan

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/rbt/collision"
	"go.viam.com/rbt/logging"
	"go.viam.com/rbt/referenceframe"
	"go.viam.com/rbt/spatialmath"
)

var testLogger = logging.NewLogger("motionplan-test")

// planarArm is a two-revolute-joint arm in the xy plane: unit link boxes and an end-effector
// frame at the tip, reach 2.
func planarArm(t *testing.T) *referenceframe.Model {
	t.Helper()
	linkBox := func(name string) *spatialmath.Mesh {
		return spatialmath.NewBoxMesh(name, r3.Vector{X: 1, Y: 0.1, Z: 0.1}, r3.Vector{X: 0.5})
	}
	model, err := referenceframe.NewModel("planar2", []referenceframe.Frame{
		{
			Name:  "joint1",
			Type:  referenceframe.JointRevolute,
			Axis:  r3.Vector{Z: 1},
			Limit: referenceframe.Limit{Min: -math.Pi, Max: math.Pi},
			Mesh:  linkBox("link1"),
		},
		{
			Name:   "joint2",
			Type:   referenceframe.JointRevolute,
			Origin: spatialmath.NewPoseFromPoint(r3.Vector{X: 1}),
			Axis:   r3.Vector{Z: 1},
			Limit:  referenceframe.Limit{Min: -math.Pi, Max: math.Pi},
			Mesh:   linkBox("link2"),
		},
		{
			Name:   "tip",
			Type:   referenceframe.JointFixed,
			Origin: spatialmath.NewPoseFromPoint(r3.Vector{X: 1}),
		},
	})
	test.That(t, err, test.ShouldBeNil)
	return model
}

// emptyEnv has no obstacles at all.
func emptyEnv(t *testing.T, model *referenceframe.Model) *collision.Environment {
	t.Helper()
	return collision.NewEnvironment(model)
}

// blockedLineEnv places a cube in front of the stretched arm: the straight configuration-space
// segment between (pi/2, 0) and (-pi/2, 0) passes through collision, but folded-elbow paths
// around it are free.
func blockedLineEnv(t *testing.T, model *referenceframe.Model) *collision.Environment {
	t.Helper()
	env := collision.NewEnvironment(model)
	cube := spatialmath.NewBoxMesh("cube", r3.Vector{X: 0.4, Y: 0.4, Z: 0.4}, r3.Vector{})
	env.AddObstacle(cube, spatialmath.NewPoseFromPoint(r3.Vector{X: 1.6}))
	return env
}

// wallEnv splits the arm's configuration space into two components: a wall at x ~ 0.25 spans
// the entire workspace height, so the first link can never sweep through the +x direction and
// the joint bounds forbid going around through +-pi.
func wallEnv(t *testing.T, model *referenceframe.Model) *collision.Environment {
	t.Helper()
	env := collision.NewEnvironment(model)
	wall := spatialmath.NewBoxMesh("wall", r3.Vector{X: 0.1, Y: 6, Z: 0.4}, r3.Vector{})
	env.AddObstacle(wall, spatialmath.NewPoseFromPoint(r3.Vector{X: 0.25}))
	return env
}
