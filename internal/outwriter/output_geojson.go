package outwriter

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sdphc/sdphc/schema"
)

// pointFeature builds a GeoJSON point feature carrying the point id.
func pointFeature(id string, x, y float64) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{x, y})
	f.ID = id
	f.Properties["point_id"] = id
	return f
}

// writeFeatureCollection encodes the features as a FeatureCollection.
// The collection carries the projected CRS survey coordinates are expressed in.
func writeFeatureCollection(w io.Writer, features []*geojson.Feature) error {
	fc := geojson.NewFeatureCollection()
	fc.Features = features
	fc.ExtraMembers = geojson.Properties{
		"crs": map[string]any{
			"type":       "name",
			"properties": map[string]any{"name": fmt.Sprintf("urn:ogc:def:crs:EPSG::%d", schema.EPSGCode)},
		},
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// scoreProperty converts a nullable score into a GeoJSON property value.
func scoreProperty(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// valueProperty converts a nullable measurement into a GeoJSON property value.
func valueProperty(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
