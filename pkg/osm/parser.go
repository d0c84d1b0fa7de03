// Package osm imports street centerlines with per-side sidewalk widths from
// OSM PBF extracts, producing features in the schema the pipeline consumes.
package osm

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"sidewalkify/pkg/streets"
)

// ParseOptions configures the importer.
type ParseOptions struct {
	// DefaultWidth is the sidewalk offset assigned to a side whose presence
	// is tagged (or assumed) without an explicit width, in the units of the
	// input coordinate system.
	DefaultWidth float64
}

// streetHighways lists highway tag values treated as sidewalk-carrying
// streets. Footways and cycleways are separate geometries in OSM, not
// centerlines to offset from.
var streetHighways = map[string]bool{
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

// isStreet returns true if the way is a street whose sidewalks we model.
func isStreet(tags osm.Tags) bool {
	if !streetHighways[tags.Find("highway")] {
		return false
	}

	// Skip area highways (pedestrian plazas).
	if tags.Find("area") == "yes" {
		return false
	}

	// Skip restricted access.
	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false
	}

	return true
}

// sidewalkWidths derives per-side sidewalk offsets from OSM sidewalk tags.
// An untagged street is assumed to have sidewalks on both sides; explicit
// "no" or "separate" removes them. Per-side sidewalk:left / sidewalk:right
// tags override the combined form.
func sidewalkWidths(tags osm.Tags, def float64) (left, right float64) {
	switch tags.Find("sidewalk") {
	case "left":
		left = def
	case "right":
		right = def
	case "no", "none", "separate":
		// Neither side.
	default:
		// "both", untagged, or an unrecognized value.
		left, right = def, def
	}

	switch tags.Find("sidewalk:left") {
	case "yes":
		left = def
	case "no", "separate":
		left = 0
	}
	switch tags.Find("sidewalk:right") {
	case "yes":
		right = def
	case "no", "separate":
		right = 0
	}

	return left, right
}

// wayInfo holds parsed way data collected during Pass 1.
type wayInfo struct {
	ID      osm.WayID
	NodeIDs []osm.NodeID
	Left    float64
	Right   float64
}

// Parse reads an OSM PBF file and returns street features with per-side
// sidewalk widths. The reader is consumed twice (seeks back to start for
// the second pass), so it must implement io.ReadSeeker.
func Parse(ctx context.Context, rs io.ReadSeeker, opts ParseOptions) ([]streets.Street, error) {
	if opts.DefaultWidth <= 0 {
		return nil, fmt.Errorf("default sidewalk width must be positive, got %v", opts.DefaultWidth)
	}

	// Pass 1: Scan ways to collect referenced node IDs and way info.
	referencedNodes := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}

		if !isStreet(w.Tags) {
			continue
		}
		if len(w.Nodes) < 2 {
			continue
		}

		left, right := sidewalkWidths(w.Tags, opts.DefaultWidth)

		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			referencedNodes[wn.ID] = struct{}{}
		}

		ways = append(ways, wayInfo{
			ID:      w.ID,
			NodeIDs: nodeIDs,
			Left:    left,
			Right:   right,
		})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	scanner.Close()

	log.Printf("Pass 1 complete: %d ways, %d referenced nodes", len(ways), len(referencedNodes))

	// Pass 2: Scan nodes to collect coordinates for referenced nodes only.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	nodeLoc := make(map[osm.NodeID]orb.Point, len(referencedNodes))

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referencedNodes[n.ID]; !needed {
			continue
		}
		nodeLoc[n.ID] = orb.Point{n.Lon, n.Lat}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()

	log.Printf("Pass 2 complete: %d node coordinates collected", len(nodeLoc))

	// Assemble street features from ways.
	var sts []streets.Street
	var skippedWays int

	for _, w := range ways {
		geom := make(orb.LineString, 0, len(w.NodeIDs))
		complete := true
		for _, id := range w.NodeIDs {
			loc, ok := nodeLoc[id]
			if !ok {
				complete = false
				break
			}
			geom = append(geom, loc)
		}
		if !complete || len(geom) < 2 {
			skippedWays++
			continue
		}

		sts = append(sts, streets.Street{
			ID:       strconv.FormatInt(int64(w.ID), 10),
			Geometry: geom,
			SWLeft:   w.Left,
			SWRight:  w.Right,
		})
	}

	if skippedWays > 0 {
		log.Printf("Skipped %d way(s) with missing node coordinates", skippedWays)
	}
	log.Printf("Imported %d street(s)", len(sts))

	return sts, nil
}
