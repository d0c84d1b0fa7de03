package streets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrNotLineString is returned when an input feature carries a geometry
// other than a LineString. Multi-part inputs are not supported.
var ErrNotLineString = errors.New("streets: feature geometry is not a LineString")

// Collection is a parsed street file. Extra holds the foreign members of the
// source FeatureCollection (notably "crs") so output can carry them verbatim.
type Collection struct {
	Streets []Street
	Extra   geojson.Properties
}

// ReadGeoJSON parses a FeatureCollection of street centerlines. The street
// identifier comes from the "id" property, falling back to the feature ID;
// missing sw_left/sw_right properties read as zero.
func ReadGeoJSON(r io.Reader) (*Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse GeoJSON: %w", err)
	}

	col := &Collection{Extra: fc.ExtraMembers}
	for i, f := range fc.Features {
		ls, ok := f.Geometry.(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("feature %d: %w", i, ErrNotLineString)
		}

		id := f.Properties["id"]
		if id == nil {
			id = f.ID
		}

		col.Streets = append(col.Streets, Street{
			ID:       stringID(id),
			Geometry: ls,
			SWLeft:   f.Properties.MustFloat64("sw_left", 0),
			SWRight:  f.Properties.MustFloat64("sw_right", 0),
		})
	}
	return col, nil
}

// WriteGeoJSON writes sidewalks as a FeatureCollection with street_id and
// forward properties, restoring the given foreign members.
func WriteGeoJSON(w io.Writer, sidewalks []Sidewalk, extra geojson.Properties) error {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = extra

	for _, s := range sidewalks {
		f := geojson.NewFeature(s.Geometry)
		f.Properties = geojson.Properties{
			"street_id": s.StreetID,
			"forward":   s.Forward,
		}
		fc.Append(f)
	}

	return marshalTo(w, fc)
}

// WriteStreetsGeoJSON writes street centerlines in the schema ReadGeoJSON
// accepts. Used by the OSM importer.
func WriteStreetsGeoJSON(w io.Writer, sts []Street, extra geojson.Properties) error {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = extra

	for _, s := range sts {
		f := geojson.NewFeature(s.Geometry)
		f.Properties = geojson.Properties{
			"id":       s.ID,
			"sw_left":  s.SWLeft,
			"sw_right": s.SWRight,
		}
		fc.Append(f)
	}

	return marshalTo(w, fc)
}

func marshalTo(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("encode GeoJSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// stringID renders a feature identifier, which GeoJSON allows to be a string
// or a number, as a stable string key.
func stringID(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
