package draw

import (
	"github.com/paulmach/orb"

	"sidewalkify/pkg/geom"
	"sidewalkify/pkg/graph"
)

// When one side of a corner has no sidewalk, a virtual offset of its street
// centerline stands in as the trim target so the neighboring sidewalk ends
// at the street edge instead of running past it.
const (
	virtualDistance   = 7
	virtualResolution = 10
)

// trim mutually adjusts the sidewalks of two consecutive path edges at
// their shared corner. Two offsets generally cross slightly before or after
// the geometric corner; cutting each back to the crossing produces a clean
// mitre. Returns the replacement sidewalks for (e1, e2).
func trim(e1, e2 *graph.Edge, g1, g2 orb.LineString) (orb.LineString, orb.LineString) {
	// Matching IDs mean the path doubled back on the same street at a dead
	// end; the natural offset ends are the sidewalk ends there.
	if e1.ID == e2.ID {
		return g1, g2
	}

	switch {
	case len(g1) == 0 && len(g2) == 0:
		return g1, g2

	case len(g1) == 0:
		virtual := geom.OffsetLeft(e1.Geometry, virtualDistance, virtualResolution, geom.JoinMitre)
		ixn := geom.Intersection(virtual, g2)
		if len(ixn) == 0 {
			return g1, g2
		}
		_, after := geom.Cut(g2, geom.Project(g2, ixn[0]))
		return g1, after

	case len(g2) == 0:
		virtual := geom.OffsetLeft(e2.Geometry, virtualDistance, virtualResolution, geom.JoinMitre)
		ixn := geom.Intersection(g1, virtual)
		if len(ixn) == 0 {
			return g1, g2
		}
		before, _ := geom.Cut(g1, geom.Project(g1, ixn[0]))
		return before, g2

	default:
		ixn := geom.Intersection(g1, g2)
		if len(ixn) == 0 {
			// Near-parallel offsets that failed to cross: force them to
			// meet end-to-end at the midpoint of the gap.
			return bridge(g1, g2)
		}
		before, _ := geom.Cut(g1, geom.Project(g1, ixn[0]))
		_, after := geom.Cut(g2, geom.Project(g2, ixn[0]))
		return before, after
	}
}

// bridge replaces g1's last and g2's first vertex with the midpoint of the
// two, making the sidewalks touch end-to-end.
func bridge(g1, g2 orb.LineString) (orb.LineString, orb.LineString) {
	p1 := g1[len(g1)-1]
	p2 := g2[0]
	mid := orb.Point{(p1[0] + p2[0]) / 2, (p1[1] + p2[1]) / 2}

	n1 := make(orb.LineString, 0, len(g1))
	n1 = append(n1, g1[:len(g1)-1]...)
	n1 = append(n1, mid)

	n2 := make(orb.LineString, 0, len(g2))
	n2 = append(n2, mid)
	n2 = append(n2, g2[1:]...)

	return n1, n2
}
