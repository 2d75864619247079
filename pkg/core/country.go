// pkg/core/country.go
package core

import (
	"encoding/json"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// UnknownContinent is used when a source record carries no continent.
const UnknownContinent = "Unknown"

// Country is a relocatable landmass derived from one source record.
// Split countries share ISOCode but have distinct IDs.
type Country struct {
	ID        string       // unique among loaded countries, never contains ':' or ','
	ISOCode   string       // administrative code of the source record, shared by split parts
	Name      string       // display name, split parts carry a suffix like "(Alaska)"
	Geometry  orb.Geometry // orb.Polygon or orb.MultiPolygon in original coordinates, never mutated
	AreaKm2   float64      // true surface area
	Centroid  orb.Point    // [lng, lat]
	Continent string
}

type countryJSON struct {
	ID        string            `json:"id"`
	ISOCode   string            `json:"isoCode"`
	Name      string            `json:"name"`
	Geometry  *geojson.Geometry `json:"geometry"`
	AreaKm2   float64           `json:"areaKm2"`
	Centroid  [2]float64        `json:"centroid"`
	Continent string            `json:"continent"`
}

// MarshalJSON encodes the country with its geometry as a GeoJSON object.
func (c Country) MarshalJSON() ([]byte, error) {
	out := countryJSON{
		ID:        c.ID,
		ISOCode:   c.ISOCode,
		Name:      c.Name,
		AreaKm2:   c.AreaKm2,
		Centroid:  [2]float64{c.Centroid.Lon(), c.Centroid.Lat()},
		Continent: c.Continent,
	}
	if c.Geometry != nil {
		out.Geometry = geojson.NewGeometry(c.Geometry)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the shape produced by MarshalJSON.
func (c *Country) UnmarshalJSON(data []byte) error {
	var in countryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Country{
		ID:        in.ID,
		ISOCode:   in.ISOCode,
		Name:      in.Name,
		AreaKm2:   in.AreaKm2,
		Centroid:  orb.Point{in.Centroid[0], in.Centroid[1]},
		Continent: in.Continent,
	}
	if in.Geometry != nil {
		c.Geometry = in.Geometry.Geometry()
	}
	return nil
}

// idReplacer strips the separators used by placement share links.
var idReplacer = strings.NewReplacer(":", "_", ",", "_")

// SanitizeID makes s usable as a Country ID.
func SanitizeID(s string) string {
	return idReplacer.Replace(strings.TrimSpace(s))
}

// ValidID reports whether id is non-empty and free of ':' and ','.
func ValidID(id string) bool {
	return id != "" && !strings.ContainsAny(id, ":,")
}
