// Package collision maintains the posed robot meshes and the obstacle meshes, and answers the
// two proximity queries the planner needs: closest workspace distance and boolean collision.
package collision

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/rbt/referenceframe"
	"go.viam.com/rbt/spatialmath"
)

// Environment owns the obstacle set and the last-set robot pose. It is not safe for
// concurrent use; both queries read the pose set by the most recent SetPose call.
type Environment struct {
	model     *referenceframe.Model
	obstacles []*spatialmath.Mesh
	posed     []*spatialmath.Mesh
}

// NewEnvironment creates an environment for the given robot model with no obstacles.
func NewEnvironment(model *referenceframe.Model) *Environment {
	return &Environment{model: model}
}

// AddObstacle registers an obstacle mesh at a fixed world pose. Obstacles are immutable once
// registered.
func (e *Environment) AddObstacle(mesh *spatialmath.Mesh, pose spatialmath.Pose) {
	e.obstacles = append(e.obstacles, mesh.Transform(pose))
}

// NumObstacles returns the number of registered obstacles.
func (e *Environment) NumObstacles() int {
	return len(e.obstacles)
}

// SetPose computes forward kinematics for q and re-poses every robot link mesh. Queries made
// before the next SetPose refer to this configuration.
func (e *Environment) SetPose(q []float64) error {
	posed, err := e.model.PosedMeshes(q)
	if err != nil {
		return errors.Wrap(err, "posing robot meshes")
	}
	e.posed = posed
	return nil
}

// ClosestDistance returns the minimum distance between any robot link surface and any
// obstacle surface at the last-set pose. Interpenetrating pairs report 0; with no obstacles
// (or no robot meshes) the distance is +Inf.
func (e *Environment) ClosestDistance() float64 {
	best := math.Inf(1)
	for _, link := range e.posed {
		lc, lr := link.BoundingSphere()
		for _, obstacle := range e.obstacles {
			oc, or := obstacle.BoundingSphere()
			if lc.Sub(oc).Norm()-lr-or >= best {
				continue
			}
			if d := spatialmath.MeshDistance(link, obstacle); d < best {
				best = d
			}
			if best == 0 {
				return 0
			}
		}
	}
	return best
}

// IsColliding reports whether any robot link interpenetrates any obstacle at the last-set pose.
func (e *Environment) IsColliding() bool {
	for _, link := range e.posed {
		lc, lr := link.BoundingSphere()
		for _, obstacle := range e.obstacles {
			oc, or := obstacle.BoundingSphere()
			if lc.Sub(oc).Norm() > lr+or {
				continue
			}
			if spatialmath.MeshesIntersect(link, obstacle) {
				return true
			}
		}
	}
	return false
}
