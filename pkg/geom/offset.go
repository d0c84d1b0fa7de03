package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// JoinStyle selects how an offset polyline turns outside corners.
type JoinStyle int

const (
	JoinRound JoinStyle = iota + 1
	JoinMitre
	JoinBevel
)

// Miter joins longer than this multiple of the offset distance fall back to
// a bevel, matching the usual stroking convention.
const miterLimit = 5.0

// OffsetLeft returns the polyline parallel to ls at the given distance on the
// left side of its direction of travel, oriented the same way as ls.
//
// Inside corners place the exact intersection of the two offset segment
// lines. Outside corners are expanded per the join style; for round joins,
// resolution is the number of arc segments per quarter turn. Returns nil for
// degenerate input or a non-positive distance.
func OffsetLeft(ls orb.LineString, distance float64, resolution int, join JoinStyle) orb.LineString {
	if distance <= 0 || resolution < 1 {
		return nil
	}

	pts := dedupe(ls)
	if len(pts) < 2 {
		return nil
	}

	// Unit left normal per segment.
	norms := make([]orb.Point, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		dx := pts[i+1][0] - pts[i][0]
		dy := pts[i+1][1] - pts[i][1]
		l := math.Hypot(dx, dy)
		norms[i] = orb.Point{-dy / l, dx / l}
	}

	var out orb.LineString
	out = append(out, translate(pts[0], norms[0], distance))

	for j := 1; j < len(pts)-1; j++ {
		nk, nj := norms[j-1], norms[j]
		sinA := nk[0]*nj[1] - nk[1]*nj[0]
		cosA := nk[0]*nj[0] + nk[1]*nj[1]

		switch {
		case cosA > 0.999:
			// Near-collinear: a single miter point suffices.
			out = append(out, miterPoint(pts[j], nk, nj, distance, cosA))
		case sinA > 0:
			// Left turn: the offset side is concave. The miter point is
			// the exact intersection of the two offset segment lines.
			if 1+cosA < 1e-12 {
				// Near-exact reversal; the intersection is unbounded.
				out = append(out, translate(pts[j], nk, distance), translate(pts[j], nj, distance))
			} else {
				out = append(out, miterPoint(pts[j], nk, nj, distance, cosA))
			}
		default:
			// Right turn: the offset side is convex, expand the corner.
			switch join {
			case JoinMitre:
				// Limit test per Clipper: cosA > 2/limit^2 - 1.
				if cosA > 2/(miterLimit*miterLimit)-1 {
					out = append(out, miterPoint(pts[j], nk, nj, distance, cosA))
				} else {
					out = append(out, translate(pts[j], nk, distance), translate(pts[j], nj, distance))
				}
			case JoinBevel:
				out = append(out, translate(pts[j], nk, distance), translate(pts[j], nj, distance))
			default:
				out = append(out, arc(pts[j], nk, nj, distance, cosA, resolution)...)
			}
		}
	}

	out = append(out, translate(pts[len(pts)-1], norms[len(norms)-1], distance))
	out = dedupe(out)
	if len(out) < 2 {
		return nil
	}
	return out
}

func translate(p, n orb.Point, d float64) orb.Point {
	return orb.Point{p[0] + d*n[0], p[1] + d*n[1]}
}

// miterPoint is the intersection of the two offset lines meeting at vertex v:
// v + d*(nk+nj)/(1+nk·nj).
func miterPoint(v, nk, nj orb.Point, d, cosA float64) orb.Point {
	q := d / (1 + cosA)
	return orb.Point{v[0] + (nk[0]+nj[0])*q, v[1] + (nk[1]+nj[1])*q}
}

// arc sweeps the offset vector clockwise from nk to nj around v, emitting
// resolution segments per quarter turn.
func arc(v, nk, nj orb.Point, d, cosA float64, resolution int) []orb.Point {
	sinA := nk[0]*nj[1] - nk[1]*nj[0]
	angle := math.Atan2(-sinA, cosA) // clockwise sweep, in (0, pi]

	steps := int(math.Ceil(angle / (math.Pi / 2) * float64(resolution)))
	if steps < 1 {
		steps = 1
	}

	pts := make([]orb.Point, 0, steps+1)
	vec := orb.Point{nk[0] * d, nk[1] * d}
	pts = append(pts, orb.Point{v[0] + vec[0], v[1] + vec[1]})

	step := angle / float64(steps)
	sin, cos := math.Sin(step), math.Cos(step)
	for i := 1; i < steps; i++ {
		// Clockwise rotation.
		vec = orb.Point{vec[0]*cos + vec[1]*sin, -vec[0]*sin + vec[1]*cos}
		pts = append(pts, orb.Point{v[0] + vec[0], v[1] + vec[1]})
	}

	pts = append(pts, translate(v, nj, d))
	return pts
}

// dedupe drops consecutive coincident vertices.
func dedupe(ls orb.LineString) orb.LineString {
	if len(ls) == 0 {
		return nil
	}
	out := orb.LineString{ls[0]}
	for _, p := range ls[1:] {
		if planar.Distance(out[len(out)-1], p) > eps {
			out = append(out, p)
		}
	}
	return out
}
