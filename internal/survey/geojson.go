package survey

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func readGeoJSON(path string, opts Options) ([]record, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[string]struct{})
	records := make([]record, 0, len(fc.Features))
	for i, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, nil, fmt.Errorf("feature %d: %w", i, ErrNotPoint)
		}
		for k := range f.Properties {
			seen[k] = struct{}{}
		}
		id := ""
		if opts.IDField != "" {
			id = toID(f.Properties[opts.IDField])
		}
		if id == "" && f.ID != nil {
			id = toID(f.ID)
		}
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		records = append(records, record{id: id, x: pt.X(), y: pt.Y(), attrs: f.Properties})
	}
	return records, slices.Sorted(maps.Keys(seen)), nil
}

// ReadBoundary loads every Polygon and MultiPolygon of a GeoJSON file into one MultiPolygon.
// The file may hold a FeatureCollection, a single Feature or a bare geometry.
func ReadBoundary(path string) (orb.MultiPolygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var geoms []orb.Geometry
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil && len(fc.Features) > 0 {
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	} else if f, err := geojson.UnmarshalFeature(data); err == nil && f.Geometry != nil {
		geoms = append(geoms, f.Geometry)
	} else if g, err := geojson.UnmarshalGeometry(data); err == nil {
		geoms = append(geoms, g.Geometry())
	} else {
		return nil, fmt.Errorf("failed to parse boundary %s: %w", path, err)
	}

	var mp orb.MultiPolygon
	for _, g := range geoms {
		switch t := g.(type) {
		case orb.Polygon:
			mp = append(mp, t)
		case orb.MultiPolygon:
			mp = append(mp, t...)
		}
	}
	if len(mp) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyBoundary)
	}
	return mp, nil
}
