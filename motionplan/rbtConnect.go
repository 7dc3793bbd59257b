package motionplan

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.viam.com/utils"

	"go.viam.com/rbt/collision"
	"go.viam.com/rbt/logging"
	"go.viam.com/rbt/referenceframe"
)

// rbtConnectPlanner grows two configuration trees toward each other, expanding whole burs of
// free space per iteration when far from obstacles and falling back to basic RRT steps close
// to them. Lacevic et al 2016, "Burs of free C-space: a novel structure for path planning".
type rbtConnectPlanner struct {
	*planner
}

// newRBTConnectPlanner creates an rbtConnectPlanner object with a user specified random seed.
func newRBTConnectPlanner(
	model *referenceframe.Model,
	env *collision.Environment,
	seed *rand.Rand,
	logger logging.Logger,
	opt *PlannerOptions,
) (motionPlanner, error) {
	mp, err := newPlanner(model, env, seed, logger, opt)
	if err != nil {
		return nil, err
	}
	return &rbtConnectPlanner{planner: mp}, nil
}

type rrtSolution struct {
	steps [][]float64
	err   error
}

type connectState int

const (
	trapped connectState = iota
	reached
)

func (mp *rbtConnectPlanner) plan(ctx context.Context, start, goal []float64) ([][]float64, error) {
	if err := mp.checkPlanInputs(start, goal); err != nil {
		return nil, err
	}
	solutionChan := make(chan *rrtSolution, 1)
	utils.PanicCapturingGo(func() {
		mp.rbtBackgroundRunner(ctx, start, goal, solutionChan)
	})
	solution := <-solutionChan
	if solution.err != nil {
		return nil, solution.err
	}
	return solution.steps, nil
}

// rbtBackgroundRunner will execute the plan. plan() calls it in a separate goroutine and waits
// for results, keeping the goroutine-agnostic entry point accessible.
func (mp *rbtConnectPlanner) rbtBackgroundRunner(
	ctx context.Context,
	qStart, qGoal []float64,
	solutionChan chan<- *rrtSolution,
) {
	defer close(solutionChan)
	mp.start = time.Now()
	opt := mp.planOpts

	tA := newBurTree(qStart)
	tB := newBurTree(qGoal)
	// Swapping trees every iteration keeps growth even; this tracks which one holds the start.
	aIsStartTree := true

	for k := 0; k < opt.MaxIters; k++ {
		select {
		case <-ctx.Done():
			mp.logger.CDebugf(ctx, "RBT-Connect timed out after %d iterations", k)
			solutionChan <- &rrtSolution{err: ctx.Err()}
			return
		default:
		}
		if k > 0 && k%100 == 0 {
			mp.logger.CDebugf(ctx, "RBT-Connect planner iteration %d", k)
		}

		directions := make([][]float64, opt.NumSpikes)
		for i := range directions {
			directions[i] = mp.randomConfig()
		}
		qe0 := directions[0]
		n := tA.nearest(qe0)
		qNear := tA.q(n)
		for i := range directions {
			directions[i] = scaledEndpoint(qNear, directions[i], opt.DeltaQ)
		}

		d, err := mp.closestDistance(qNear)
		if err != nil {
			solutionChan <- &rrtSolution{err: err}
			return
		}
		if d < defaultContactEpsilon {
			solutionChan <- &rrtSolution{err: ErrStartInContact}
			return
		}

		var qNew []float64
		if d < opt.DCrit {
			// Near-obstacle regime: one small certified step.
			qNew = scaledEndpoint(qNear, directions[0], opt.EpsilonQ)
			colliding, err := mp.isColliding(qNew)
			if err != nil {
				solutionChan <- &rrtSolution{err: err}
				return
			}
			if colliding {
				continue
			}
			tA.add(n, qNew)
		} else {
			// Far regime: expand a whole bur of certified free space at once.
			b, err := burEndpoints(mp.model, qNear, directions, d)
			if err != nil {
				solutionChan <- &rrtSolution{err: err}
				return
			}
			for _, endpoint := range b.endpoints {
				tA.add(n, endpoint)
			}
			// Any column serves as the connect target; they all go in random directions.
			qNew = b.endpoints[0]
		}

		status, err := mp.burConnect(ctx, tB, qNew)
		if err != nil {
			solutionChan <- &rrtSolution{err: err}
			return
		}
		if status == reached {
			mp.logger.CDebugf(ctx, "RBT-Connect found solution after %d iterations in %s", k+1, time.Since(mp.start))
			solutionChan <- &rrtSolution{steps: extractPath(tA, tB, qNew, aIsStartTree)}
			return
		}

		tA, tB = tB, tA
		aIsStartTree = !aIsStartTree
	}
	solutionChan <- &rrtSolution{err: ErrIterationLimit}
}

// burConnect greedily extends tree t toward configuration q, inserting every accepted
// intermediate under its predecessor so path extraction can recover the segment.
func (mp *rbtConnectPlanner) burConnect(ctx context.Context, t *burTree, q []float64) (connectState, error) {
	opt := mp.planOpts
	n := t.nearest(q)
	qn := t.q(n)
	q0 := cloneConfig(qn)

	deltaS := math.MaxFloat64
	for i := 0; deltaS >= opt.DCrit && i < maxConnectIter; i++ {
		select {
		case <-ctx.Done():
			return trapped, ctx.Err()
		default:
		}

		d, err := mp.closestDistance(qn)
		if err != nil {
			return trapped, err
		}
		if d > opt.DCrit {
			b, err := burEndpoints(mp.model, qn, [][]float64{q}, d)
			if err != nil {
				return trapped, err
			}
			qt := b.endpoints[0]
			deltaS = configDistance(qt, qn)
			n = t.add(n, qt)
			qn = t.q(n)
			if configDistance(qn, q) < defaultConnectTolerance {
				return reached, nil
			}
		} else {
			qt := scaledEndpoint(qn, q, opt.EpsilonQ)
			colliding, err := mp.isColliding(qt)
			if err != nil {
				return trapped, err
			}
			if colliding {
				return trapped, nil
			}
			// The epsilon step is the step length for the convergence test.
			deltaS = opt.EpsilonQ
			n = t.add(n, qt)
			qn = t.q(n)
			if configDistance(qn, q0) >= configDistance(q, q0) {
				return reached, nil
			}
		}
	}
	return trapped, nil
}

// extractPath walks each tree's own parent chain from its node nearest qNew to its root and
// stitches the walks into a start-to-goal path.
func extractPath(tA, tB *burTree, qNew []float64, aIsStartTree bool) [][]float64 {
	aIdx := tA.nearest(qNew)
	bIdx := tB.nearest(qNew)

	var path [][]float64
	for i := aIdx; i != -1; i = tA.parent(i) {
		path = append(path, tA.q(i))
	}
	reversePath(path)
	for i := bIdx; i != -1; i = tB.parent(i) {
		path = append(path, tB.q(i))
	}
	if !aIsStartTree {
		reversePath(path)
	}
	return path
}

func reversePath(path [][]float64) {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
}
