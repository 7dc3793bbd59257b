package motionplan

import (
	"context"

	"go.viam.com/rbt/collision"
	"go.viam.com/rbt/logging"
	"go.viam.com/rbt/referenceframe"
	"go.viam.com/rbt/spatialmath"
)

// URDFPlanner bundles a robot model parsed from a URDF file with a collision environment and
// planner options, for callers that want a scene-level front door rather than the individual
// pieces.
type URDFPlanner struct {
	model  *referenceframe.Model
	env    *collision.Environment
	opt    *PlannerOptions
	logger logging.Logger
}

// NewURDFPlanner parses the robot description and prepares an obstacle-free environment.
func NewURDFPlanner(urdfPath string, cfg *referenceframe.URDFConfig, opt *PlannerOptions, logger logging.Logger) (*URDFPlanner, error) {
	model, err := referenceframe.ParseURDFFile(urdfPath, cfg)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		opt = NewBasicPlannerOptions()
	}
	return &URDFPlanner{
		model:  model,
		env:    collision.NewEnvironment(model),
		opt:    opt,
		logger: logger,
	}, nil
}

// Model returns the parsed robot model.
func (p *URDFPlanner) Model() *referenceframe.Model {
	return p.model
}

// NrOfJoints returns the robot's degrees of freedom.
func (p *URDFPlanner) NrOfJoints() int {
	return p.model.DoF()
}

// AddObstacle loads a mesh file and registers it as an obstacle at the given world pose.
func (p *URDFPlanner) AddObstacle(meshPath string, pose spatialmath.Pose) error {
	mesh, err := spatialmath.NewMeshFromOBJFile(meshPath)
	if err != nil {
		return err
	}
	p.env.AddObstacle(mesh, pose)
	return nil
}

// PlanPath plans a collision-free path from start to goal, interpolated per the options.
func (p *URDFPlanner) PlanPath(ctx context.Context, start, goal []float64) ([][]float64, error) {
	return PlanMotion(ctx, p.logger, p.model, p.env, start, goal, p.opt)
}
