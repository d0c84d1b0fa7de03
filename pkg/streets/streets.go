// Package streets defines the feature model the pipeline consumes and
// produces, and its GeoJSON serialization.
package streets

import (
	"github.com/paulmach/orb"
)

// Street is one input centerline. SWLeft and SWRight are the sidewalk
// offsets on the left and right side when traveling along the stored
// coordinate order, in the units of the coordinate system.
type Street struct {
	ID       string
	Geometry orb.LineString
	SWLeft   float64
	SWRight  float64
}

// Sidewalk is one output polyline. Forward reports which side of the
// centerline it lies on: true means left of the street's stored coordinate
// direction. Downstream consumers key on it, so it is part of the output
// contract rather than a diagnostic.
type Sidewalk struct {
	Geometry orb.LineString
	StreetID string
	Forward  bool
}
