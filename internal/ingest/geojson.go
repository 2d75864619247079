package ingest

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/truesize/engine/pkg/core"
)

// Natural Earth property keys.
const (
	propName      = "NAME"
	propAdmin     = "ADMIN"
	propAdminCode = "ADM0_A3"
	propContinent = "CONTINENT"
)

// ParseFeatureCollection decodes a GeoJSON FeatureCollection. Only the
// properties the engine uses are kept; non-string values read as empty.
func ParseFeatureCollection(data []byte) ([]core.Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decoding feature collection: %w", err)
	}

	features := make([]core.Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		features = append(features, core.Feature{
			Properties: core.FeatureProperties{
				Name:      stringProp(f.Properties, propName),
				Admin:     stringProp(f.Properties, propAdmin),
				AdminCode: stringProp(f.Properties, propAdminCode),
				Continent: stringProp(f.Properties, propContinent),
			},
			Geometry: f.Geometry,
		})
	}
	return features, nil
}

// stringProp reads key as a string. Missing, null and non-string values read
// as "".
func stringProp(props geojson.Properties, key string) string {
	s, _ := props[key].(string)
	return s
}
