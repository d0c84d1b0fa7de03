// Package draw renders sidewalk polylines for the paths produced by the
// graph traversal: every edge is offset to the left of its direction of
// travel by its sidewalk width, then consecutive sidewalks are trimmed or
// extended to meet at corners.
package draw

import (
	"github.com/paulmach/orb"

	"sidewalkify/pkg/geom"
	"sidewalkify/pkg/graph"
	"sidewalkify/pkg/streets"
)

// Options configures rendering.
type Options struct {
	// Resolution is the number of arc segments per quarter turn used for
	// round corner joins when offsetting.
	Resolution int
}

// DrawSidewalks renders one sidewalk per edge with a positive offset.
// Trimming within a path is sequential: each pair observes the previous
// pair's output on the shared edge, so the corner work cannot be reordered.
// Empty, zero-length, and self-intersecting results are dropped.
func DrawSidewalks(paths []*graph.Path, opts Options) []streets.Sidewalk {
	resolution := opts.Resolution
	if resolution < 1 {
		resolution = 1
	}

	var out []streets.Sidewalk
	for _, path := range paths {
		walks := make([]orb.LineString, len(path.Edges))
		for i, e := range path.Edges {
			if e.Offset > 0 {
				walks[i] = geom.OffsetLeft(e.Geometry, e.Offset, resolution, geom.JoinRound)
			}
		}

		for i := 0; i < len(path.Edges)-1; i++ {
			walks[i], walks[i+1] = trim(path.Edges[i], path.Edges[i+1], walks[i], walks[i+1])
		}
		if path.Cyclic {
			last := len(path.Edges) - 1
			walks[last], walks[0] = trim(path.Edges[last], path.Edges[0], walks[last], walks[0])
		}

		for i, e := range path.Edges {
			w := walks[i]
			if len(w) < 2 || geom.Length(w) <= 0 || !geom.IsSimple(w) {
				continue
			}
			out = append(out, streets.Sidewalk{
				Geometry: w,
				StreetID: e.ID,
				Forward:  e.Forward,
			})
		}
	}
	return out
}
