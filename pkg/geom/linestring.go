// Package geom provides the planar polyline primitives the sidewalk pipeline
// is built on: one-sided parallel offsets, polyline intersection, and
// arc-length projection, interpolation and cutting. Coordinates are orb
// types; all distances are in the units of the input coordinate system.
package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const eps = 1e-9

// Length returns the planar length of a linestring.
func Length(ls orb.LineString) float64 {
	return planar.Length(ls)
}

// Project returns the arc length along ls of the point on ls nearest to p.
func Project(ls orb.LineString, p orb.Point) float64 {
	best := math.Inf(1)
	bestArc := 0.0
	cum := 0.0

	for i := 0; i < len(ls)-1; i++ {
		a, b := ls[i], ls[i+1]
		segLen := planar.Distance(a, b)

		t := 0.0
		if segLen > 0 {
			dx, dy := b[0]-a[0], b[1]-a[1]
			t = ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (segLen * segLen)
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
		}
		q := orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
		d := planar.DistanceSquared(p, q)
		if d < best {
			best = d
			bestArc = cum + t*segLen
		}
		cum += segLen
	}
	return bestArc
}

// Interpolate returns the point at arc length d along ls. Values outside
// [0, length] clamp to the endpoints.
func Interpolate(ls orb.LineString, d float64) orb.Point {
	if len(ls) == 0 {
		return orb.Point{}
	}
	if d <= 0 {
		return ls[0]
	}
	cum := 0.0
	for i := 0; i < len(ls)-1; i++ {
		a, b := ls[i], ls[i+1]
		segLen := planar.Distance(a, b)
		if cum+segLen >= d && segLen > 0 {
			t := (d - cum) / segLen
			return orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
		}
		cum += segLen
	}
	return ls[len(ls)-1]
}

// Cut splits ls at arc length d, inserting a vertex there if d does not fall
// on an existing one. A cut at or beyond either end leaves that side empty.
func Cut(ls orb.LineString, d float64) (before, after orb.LineString) {
	if len(ls) < 2 {
		return nil, nil
	}
	if d <= eps {
		return nil, ls.Clone()
	}

	cum := 0.0
	for i := 0; i < len(ls)-1; i++ {
		segLen := planar.Distance(ls[i], ls[i+1])
		next := cum + segLen

		if math.Abs(next-d) <= eps {
			// Falls on vertex i+1.
			if i+1 == len(ls)-1 {
				return ls.Clone(), nil
			}
			before = append(before, ls[:i+2]...)
			after = append(after, ls[i+1:]...)
			return before, after
		}
		if next > d {
			p := Interpolate(ls, d)
			before = append(before, ls[:i+1]...)
			before = append(before, p)
			after = append(after, p)
			after = append(after, ls[i+1:]...)
			return before, after
		}
		cum = next
	}
	return ls.Clone(), nil
}
