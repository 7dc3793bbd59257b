package motionplan

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/rbt/spatialmath"
)

// kinematics is the capability set the bur construction needs from a robot model.
type kinematics interface {
	ForwardAll(q []float64) ([]spatialmath.Pose, error)
	Radii(q []float64) ([]float64, error)
}

// bur is a star-shaped collision-free neighborhood of configuration space: a center and one
// certified endpoint per direction. Every straight segment from the center to an endpoint is
// free of collision, by the Lipschitz bound relating joint motion to workspace motion.
type bur struct {
	center    []float64
	endpoints [][]float64
}

// burEndpoints computes the bur of qNear toward each direction, given the workspace clearance
// dClosest measured at qNear. Infinite clearance certifies the full segments outright.
func burEndpoints(model kinematics, qNear []float64, directions [][]float64, dClosest float64) (*bur, error) {
	b := &bur{center: cloneConfig(qNear), endpoints: make([][]float64, 0, len(directions))}
	if math.IsInf(dClosest, 1) {
		for _, qe := range directions {
			b.endpoints = append(b.endpoints, cloneConfig(qe))
		}
		return b, nil
	}

	dSmall := burStopRatio * dClosest
	nearPoints, err := forwardPoints(model, qNear)
	if err != nil {
		return nil, err
	}

	diff := make([]float64, len(qNear))
	for _, qe := range directions {
		floats.SubTo(diff, qe, qNear)

		tk := 0.
		qk := cloneConfig(qNear)
		phi := dClosest
		for phi > dSmall {
			kPoints, err := forwardPoints(model, qk)
			if err != nil {
				return nil, err
			}
			phi = dClosest - rhoR(nearPoints, kPoints)

			radii, err := model.Radii(qk)
			if err != nil {
				return nil, err
			}
			var denom float64
			for i, r := range radii {
				denom += r * math.Abs(qe[i]-qk[i])
			}
			if denom <= 0 {
				// No direction component or all radii zero; the center is the endpoint.
				qk = cloneConfig(qNear)
				break
			}

			dt := phi * (1 - tk) / denom
			if dt <= 1e-12 {
				break
			}
			tk += dt
			if tk > 1 {
				qk = cloneConfig(qe)
				break
			}
			floats.AddScaledTo(qk, qNear, tk, diff)
		}
		b.endpoints = append(b.endpoints, qk)
	}
	return b, nil
}

// rhoR is the largest workspace displacement of any joint frame between the two forward
// kinematics snapshots.
func rhoR(a, b []r3.Vector) float64 {
	max := 0.
	for i := range a {
		if d := a[i].Sub(b[i]).Norm(); d > max {
			max = d
		}
	}
	return max
}

func forwardPoints(model kinematics, q []float64) ([]r3.Vector, error) {
	poses, err := model.ForwardAll(q)
	if err != nil {
		return nil, err
	}
	points := make([]r3.Vector, len(poses))
	for i, p := range poses {
		points[i] = p.Point()
	}
	return points, nil
}

func cloneConfig(q []float64) []float64 {
	out := make([]float64, len(q))
	copy(out, q)
	return out
}
