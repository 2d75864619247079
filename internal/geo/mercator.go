package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/wroge/wgs84"
)

// MaxMercatorLatitude bounds latitudes fed into Mercator formulas; the
// projection diverges at the poles.
const MaxMercatorLatitude = 85.0

// ClampLatitude limits lat to ±MaxMercatorLatitude. NaN is treated as the
// equator.
func ClampLatitude(lat float64) float64 {
	if math.IsNaN(lat) {
		return 0
	}
	return math.Max(-MaxMercatorLatitude, math.Min(MaxMercatorLatitude, lat))
}

// WebMercator converts a [lng, lat] position (EPSG:4326) to EPSG:3857 metres.
// The latitude is clamped first.
func WebMercator(p orb.Point) (x, y float64) {
	f := wgs84.EPSG().Transform(4326, 3857)
	x, y, _ = f(p.Lon(), ClampLatitude(p.Lat()), 0)
	return x, y
}
