package motionplan

import "github.com/pkg/errors"

var (
	// ErrBadInput denotes a start or goal configuration of the wrong dimension or outside the
	// joint bounds.
	ErrBadInput = errors.New("bad planning input")

	// ErrStartInContact denotes a tree frontier whose closest workspace distance is below the
	// contact epsilon; planning cannot proceed from it.
	ErrStartInContact = errors.New("tree frontier is in contact with an obstacle")

	// ErrIterationLimit denotes that the iteration budget ran out before the trees connected.
	ErrIterationLimit = errors.New("exceeded maximum iterations without connecting the trees")

	errNoPlannerOptions = errors.New("planner options can not be nil")
)
