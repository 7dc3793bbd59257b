package motionplan

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// Defaults tuned on the 7-DOF arm scenes this planner was developed against.
const (
	defaultMaxIters  = 500
	defaultDCrit     = 0.1
	defaultDeltaQ    = 1.0
	defaultEpsilonQ  = 0.05
	defaultNumSpikes = 7

	// Workspace clearance below which a tree frontier counts as in contact.
	defaultContactEpsilon = 1e-3
	// Configuration-space distance below which BurConnect considers the target reached.
	defaultConnectTolerance = 1e-2
	// Bur endpoint iteration stops once the remaining certified clearance drops below this
	// fraction of the initial closest distance.
	burStopRatio = 0.1

	// Cap on BurConnect inner iterations, in case a step size degenerates.
	maxConnectIter = 5000
)

// PlannerOptions are the configurable parameters of a plan invocation.
type PlannerOptions struct {
	// MaxIters bounds the outer iterations before the planner declares failure.
	MaxIters int `mapstructure:"max_iters"`
	// DCrit is the workspace-distance threshold, in meters, separating the bur regime from
	// the basic-RRT regime.
	DCrit float64 `mapstructure:"d_crit"`
	// DeltaQ is the configuration-space length sampled directions are rescaled to.
	DeltaQ float64 `mapstructure:"delta_q"`
	// EpsilonQ is the configuration-space step length used in the near-obstacle regime.
	EpsilonQ float64 `mapstructure:"epsilon_q"`
	// NumSpikes is the number of simultaneous bur directions.
	NumSpikes int `mapstructure:"num_spikes"`
	// InterpolateStep, when positive, densifies the returned path to approximately this
	// configuration-space spacing.
	InterpolateStep float64 `mapstructure:"interpolate_step"`
}

// NewBasicPlannerOptions returns planner options with documented defaults.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		MaxIters:  defaultMaxIters,
		DCrit:     defaultDCrit,
		DeltaQ:    defaultDeltaQ,
		EpsilonQ:  defaultEpsilonQ,
		NumSpikes: defaultNumSpikes,
	}
}

// NewPlannerOptionsFromMap overlays the recognized keys of an untyped option map onto the
// defaults.
func NewPlannerOptionsFromMap(config map[string]interface{}) (*PlannerOptions, error) {
	opt := NewBasicPlannerOptions()
	if err := mapstructure.Decode(config, opt); err != nil {
		return nil, errors.Wrap(err, "decoding planner options")
	}
	if err := opt.validate(); err != nil {
		return nil, err
	}
	return opt, nil
}

func (opt *PlannerOptions) validate() error {
	switch {
	case opt.MaxIters <= 0:
		return errors.New("max_iters must be positive")
	case opt.DCrit <= 0:
		return errors.New("d_crit must be positive")
	case opt.DeltaQ <= 0:
		return errors.New("delta_q must be positive")
	case opt.EpsilonQ <= 0:
		return errors.New("epsilon_q must be positive")
	case opt.NumSpikes <= 0:
		return errors.New("num_spikes must be positive")
	case opt.InterpolateStep < 0:
		return errors.New("interpolate_step can not be negative")
	}
	return nil
}
