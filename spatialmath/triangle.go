package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// ClosestPointTo returns the point on the triangle closest to p.
func (t Triangle) ClosestPointTo(p r3.Vector) r3.Vector {
	ab := t.P1.Sub(t.P0)
	ac := t.P2.Sub(t.P0)
	ap := p.Sub(t.P0)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return t.P0
	}

	bp := p.Sub(t.P1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return t.P1
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return t.P0.Add(ab.Mul(v))
	}

	cp := p.Sub(t.P2)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return t.P2
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return t.P0.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return t.P1.Add(t.P2.Sub(t.P1).Mul(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return t.P0.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// segmentDistance returns the minimum distance between segments p1q1 and p2q2.
func segmentDistance(p1, q1, p2, q2 r3.Vector) float64 {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float64
	const eps = 1e-12
	switch {
	case a <= eps && e <= eps:
		return r.Norm()
	case a <= eps:
		t = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e <= eps {
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom > eps {
				s = clamp01((b*f - c*e) / denom)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}
	c1 := p1.Add(d1.Mul(s))
	c2 := p2.Add(d2.Mul(t))
	return c1.Sub(c2).Norm()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// TriangleDistance returns the minimum distance between two triangles, 0 if they intersect.
func TriangleDistance(a, b Triangle) float64 {
	if trianglesIntersect(a, b) {
		return 0
	}
	best := math.Inf(1)
	for _, p := range []r3.Vector{a.P0, a.P1, a.P2} {
		if d := p.Sub(b.ClosestPointTo(p)).Norm(); d < best {
			best = d
		}
	}
	for _, p := range []r3.Vector{b.P0, b.P1, b.P2} {
		if d := p.Sub(a.ClosestPointTo(p)).Norm(); d < best {
			best = d
		}
	}
	ae := [3][2]r3.Vector{{a.P0, a.P1}, {a.P1, a.P2}, {a.P2, a.P0}}
	be := [3][2]r3.Vector{{b.P0, b.P1}, {b.P1, b.P2}, {b.P2, b.P0}}
	for _, e1 := range ae {
		for _, e2 := range be {
			if d := segmentDistance(e1[0], e1[1], e2[0], e2[1]); d < best {
				best = d
			}
		}
	}
	return best
}

// trianglesIntersect reports whether two triangles intersect. Segment-triangle tests in both
// directions cover every non-coplanar crossing; coplanar contact resolves through the distance
// terms instead.
func trianglesIntersect(a, b Triangle) bool {
	ae := [3][2]r3.Vector{{a.P0, a.P1}, {a.P1, a.P2}, {a.P2, a.P0}}
	for _, e := range ae {
		if segmentIntersectsTriangle(e[0], e[1], b) {
			return true
		}
	}
	be := [3][2]r3.Vector{{b.P0, b.P1}, {b.P1, b.P2}, {b.P2, b.P0}}
	for _, e := range be {
		if segmentIntersectsTriangle(e[0], e[1], a) {
			return true
		}
	}
	return false
}

// segmentIntersectsTriangle is the Moller-Trumbore ray test restricted to the segment pq.
func segmentIntersectsTriangle(p, q r3.Vector, t Triangle) bool {
	const eps = 1e-12
	dir := q.Sub(p)
	e1 := t.P1.Sub(t.P0)
	e2 := t.P2.Sub(t.P0)
	h := dir.Cross(e2)
	det := e1.Dot(h)
	if math.Abs(det) < eps {
		return false
	}
	inv := 1 / det
	s := p.Sub(t.P0)
	u := s.Dot(h) * inv
	if u < 0 || u > 1 {
		return false
	}
	qv := s.Cross(e1)
	v := dir.Dot(qv) * inv
	if v < 0 || u+v > 1 {
		return false
	}
	w := e2.Dot(qv) * inv
	return w >= 0 && w <= 1
}
