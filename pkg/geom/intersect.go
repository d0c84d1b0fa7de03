package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/tidwall/rtree"
)

// Intersection returns the points where a and b cross, in discovery order
// walking a's segments from its start. A collinear overlap contributes the
// point where the overlap begins. Returns nil when the lines do not touch.
func Intersection(a, b orb.LineString) []orb.Point {
	var pts []orb.Point
	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(b)-1; j++ {
			p, ok := segmentIntersection(a[i], a[i+1], b[j], b[j+1])
			if !ok {
				continue
			}
			// Crossings at shared segment vertices are found twice.
			if n := len(pts); n > 0 && planar.Distance(pts[n-1], p) <= eps {
				continue
			}
			pts = append(pts, p)
		}
	}
	return pts
}

// segmentIntersection intersects segments p1-p2 and p3-p4. For collinear
// overlapping segments it returns the start of the overlap along p1-p2.
func segmentIntersection(p1, p2, p3, p4 orb.Point) (orb.Point, bool) {
	rx, ry := p2[0]-p1[0], p2[1]-p1[1]
	sx, sy := p4[0]-p3[0], p4[1]-p3[1]
	qpx, qpy := p3[0]-p1[0], p3[1]-p1[1]

	denom := rx*sy - ry*sx
	if math.Abs(denom) <= eps {
		if math.Abs(qpx*ry-qpy*rx) > eps {
			return orb.Point{}, false // parallel, not collinear
		}
		rr := rx*rx + ry*ry
		if rr <= eps {
			return orb.Point{}, false
		}
		t0 := (qpx*rx + qpy*ry) / rr
		t1 := t0 + (sx*rx+sy*ry)/rr
		if t1 < t0 {
			t0, t1 = t1, t0
		}
		if t1 < 0 || t0 > 1 {
			return orb.Point{}, false
		}
		t := math.Max(t0, 0)
		return orb.Point{p1[0] + t*rx, p1[1] + t*ry}, true
	}

	t := (qpx*sy - qpy*sx) / denom
	u := (qpx*ry - qpy*rx) / denom
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return orb.Point{}, false
	}
	return orb.Point{p1[0] + t*rx, p1[1] + t*ry}, true
}

// IsSimple reports whether ls has no self-intersections. Consecutive
// segments may share their common vertex, and a closed ring may share its
// first and last point; any other contact makes the line non-simple.
// Candidate segment pairs come from an r-tree over segment bounding boxes.
func IsSimple(ls orb.LineString) bool {
	n := len(ls) - 1
	if n < 1 {
		return false
	}

	var tr rtree.RTreeG[int]
	for i := 0; i < n; i++ {
		min, max := segmentBox(ls[i], ls[i+1])
		tr.Insert(min, max, i)
	}

	closed := planar.Distance(ls[0], ls[len(ls)-1]) <= eps

	simple := true
	for i := 0; i < n && simple; i++ {
		min, max := segmentBox(ls[i], ls[i+1])
		tr.Search(min, max, func(_, _ [2]float64, j int) bool {
			if j <= i {
				return true
			}
			p, ok := segmentIntersection(ls[i], ls[i+1], ls[j], ls[j+1])
			if !ok {
				return true
			}
			if j == i+1 && planar.Distance(p, ls[j]) <= eps {
				return true // shared vertex of consecutive segments
			}
			if closed && i == 0 && j == n-1 && planar.Distance(p, ls[0]) <= eps {
				return true // ring closure
			}
			simple = false
			return false
		})
	}
	return simple
}

func segmentBox(a, b orb.Point) (min, max [2]float64) {
	min = [2]float64{math.Min(a[0], b[0]) - eps, math.Min(a[1], b[1]) - eps}
	max = [2]float64{math.Max(a[0], b[0]) + eps, math.Max(a[1], b[1]) + eps}
	return min, max
}
