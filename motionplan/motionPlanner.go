// Package motionplan plans collision-free paths through an articulated robot's configuration
// space using the bur-based bidirectional RRT algorithm (RBT-Connect).
package motionplan

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/rbt/collision"
	"go.viam.com/rbt/logging"
	"go.viam.com/rbt/referenceframe"
)

// motionPlanner provides an interface to path planning methods, providing ways to request a
// path to be planned and access to the parameters used to plan it.
type motionPlanner interface {
	// plan will take a context, a start and a goal configuration, and return a series of
	// configurations which should be visited in order to arrive at the goal without collision.
	plan(ctx context.Context, start, goal []float64) ([][]float64, error)

	opt() *PlannerOptions
}

type planner struct {
	model    *referenceframe.Model
	env      *collision.Environment
	logger   logging.Logger
	randseed *rand.Rand
	start    time.Time
	planOpts *PlannerOptions
}

func newPlanner(
	model *referenceframe.Model,
	env *collision.Environment,
	seed *rand.Rand,
	logger logging.Logger,
	opt *PlannerOptions,
) (*planner, error) {
	if opt == nil {
		return nil, errNoPlannerOptions
	}
	if err := opt.validate(); err != nil {
		return nil, err
	}
	return &planner{
		model:    model,
		env:      env,
		logger:   logger,
		randseed: seed,
		planOpts: opt,
	}, nil
}

func (mp *planner) opt() *PlannerOptions {
	return mp.planOpts
}

// closestDistance poses the robot at q and queries workspace clearance. The result is valid
// until the environment's pose changes again.
func (mp *planner) closestDistance(q []float64) (float64, error) {
	if err := mp.env.SetPose(q); err != nil {
		return 0, err
	}
	return mp.env.ClosestDistance(), nil
}

// isColliding poses the robot at q and queries for interpenetration.
func (mp *planner) isColliding(q []float64) (bool, error) {
	if err := mp.env.SetPose(q); err != nil {
		return false, err
	}
	return mp.env.IsColliding(), nil
}

// checkPlanInputs validates dimension and joint bounds of each configuration.
func (mp *planner) checkPlanInputs(configs ...[]float64) error {
	bounds := mp.model.Bounds()
	for _, q := range configs {
		if len(q) != mp.model.DoF() {
			return errors.Wrapf(ErrBadInput, "configuration has length %d, model has %d degrees of freedom", len(q), mp.model.DoF())
		}
		for i, v := range q {
			if v < bounds[i].Min || v > bounds[i].Max {
				return errors.Wrapf(ErrBadInput, "joint %d value %f outside bounds [%f, %f]", i, v, bounds[i].Min, bounds[i].Max)
			}
		}
	}
	return nil
}

// randomConfig draws a configuration uniformly from the bounds box.
func (mp *planner) randomConfig() []float64 {
	bounds := mp.model.Bounds()
	q := make([]float64, len(bounds))
	for i, lim := range bounds {
		q[i] = lim.Min + mp.randseed.Float64()*(lim.Max-lim.Min)
	}
	return q
}

// scaledEndpoint returns `from` moved `factor` along the unit direction toward `to`. A
// zero-norm direction clamps to `from`.
func scaledEndpoint(from, to []float64, factor float64) []float64 {
	out := make([]float64, len(from))
	floats.SubTo(out, to, from)
	norm := floats.Norm(out, 2)
	if norm == 0 {
		copy(out, from)
		return out
	}
	floats.AddScaledTo(out, from, factor/norm, out)
	return out
}

func configDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// PlanMotion plans a collision-free path from start to goal for the given model within the
// given environment. A nil opt plans with defaults. The random stream uses a fixed seed, so
// identical inputs produce identical paths.
func PlanMotion(
	ctx context.Context,
	logger logging.Logger,
	model *referenceframe.Model,
	env *collision.Environment,
	start, goal []float64,
	opt *PlannerOptions,
) ([][]float64, error) {
	//nolint:gosec
	return PlanMotionWithSeed(ctx, logger, model, env, start, goal, opt, rand.New(rand.NewSource(1)))
}

// PlanMotionWithSeed plans like PlanMotion using a caller-supplied random stream.
func PlanMotionWithSeed(
	ctx context.Context,
	logger logging.Logger,
	model *referenceframe.Model,
	env *collision.Environment,
	start, goal []float64,
	opt *PlannerOptions,
	seed *rand.Rand,
) ([][]float64, error) {
	if opt == nil {
		opt = NewBasicPlannerOptions()
	}
	mp, err := newRBTConnectPlanner(model, env, seed, logger, opt)
	if err != nil {
		return nil, err
	}
	path, err := mp.plan(ctx, start, goal)
	if err != nil {
		return nil, err
	}
	if opt.InterpolateStep > 0 {
		path = InterpolatePath(path, opt.InterpolateStep)
	}
	return path, nil
}
