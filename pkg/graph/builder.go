package graph

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"sidewalkify/pkg/geo"
	"sidewalkify/pkg/streets"
)

// ErrNonFiniteCoordinate is returned when an input geometry contains a NaN
// or infinite coordinate.
var ErrNonFiniteCoordinate = errors.New("graph: non-finite coordinate")

// Options configures graph construction.
type Options struct {
	// Precision is the number of decimal places endpoints are rounded to
	// when merged into nodes. Larger values merge less.
	Precision int

	// Simplify is the Douglas-Peucker tolerance applied to every input
	// geometry before edges are built. Street geometries sometimes carry
	// tiny trailing segments that would corrupt the endpoint azimuths.
	Simplify float64

	// Azimuth computes the bearing between two points. Defaults to
	// geo.AzimuthCartesian; use geo.AzimuthLngLat for unprojected data.
	Azimuth func(p1, p2 orb.Point) float64
}

// DefaultOptions returns the options used by the CLI when no flags are set.
func DefaultOptions() Options {
	return Options{
		Precision: 1,
		Simplify:  0.05,
		Azimuth:   geo.AzimuthCartesian,
	}
}

// CreateGraph builds the directed multigraph for a set of streets. Each
// street becomes two opposing edges: forward with Offset = SWLeft, reverse
// with Offset = SWRight. Insertion follows input order, so iteration over
// the result is deterministic.
//
// Streets left with fewer than two coordinates after simplification are
// skipped and counted; a non-finite coordinate fails the whole build.
func CreateGraph(sts []streets.Street, opts Options) (*Graph, error) {
	if opts.Azimuth == nil {
		opts.Azimuth = geo.AzimuthCartesian
	}

	g := NewGraph()
	simplifier := simplify.DouglasPeucker(opts.Simplify)

	skipped := 0
	for _, s := range sts {
		for _, p := range s.Geometry {
			if !finite(p) {
				return nil, fmt.Errorf("street %q: %w", s.ID, ErrNonFiniteCoordinate)
			}
		}

		geom := simplifier.LineString(s.Geometry.Clone())
		if len(geom) < 2 {
			skipped++
			continue
		}

		reversed := geom.Clone()
		reversed.Reverse()

		for _, half := range []struct {
			forward bool
			geom    orb.LineString
			offset  float64
		}{
			{true, geom, s.SWLeft},
			{false, reversed, s.SWRight},
		} {
			n := len(half.geom)
			g.addEdge(&Edge{
				ID:       s.ID,
				Forward:  half.forward,
				Geometry: half.geom,
				Offset:   half.offset,
				Az1:      opts.Azimuth(half.geom[0], half.geom[1]),
				Az2:      opts.Azimuth(half.geom[n-2], half.geom[n-1]),
				From:     quantize(half.geom[0], opts.Precision),
				To:       quantize(half.geom[n-1], opts.Precision),
			})
		}
	}

	if skipped > 0 {
		log.Printf("Skipped %d degenerate street(s) with fewer than 2 coordinates", skipped)
	}
	return g, nil
}

func finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsInf(p[0], 0) &&
		!math.IsNaN(p[1]) && !math.IsInf(p[1], 0)
}
