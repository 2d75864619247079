package projection

import (
	"github.com/paulmach/orb"

	"github.com/truesize/engine/internal/geo"
	"github.com/truesize/engine/pkg/core"
)

// trueSizeDistortion is the area distortion below which a placed country
// counts as shown at its true size.
const trueSizeDistortion = 1.2

// Place computes the snapshot for c moved so its centroid sits at position.
// Geometry is not touched; see transform.RelocateCountry.
func Place(c core.Country, position orb.Point) core.PlacedCountry {
	current := AreaDistortion(position.Lat())
	x, y := geo.WebMercator(position)
	return core.PlacedCountry{
		Original:           c,
		CurrentPosition:    position,
		ScaleFactor:        SizeAdjustment(c.Centroid.Lat(), position.Lat()),
		OriginalDistortion: AreaDistortion(c.Centroid.Lat()),
		CurrentDistortion:  current,
		ApparentAreaKm2:    c.AreaKm2 * current,
		MercatorX:          x,
		MercatorY:          y,
	}
}

// RevealedAreaKm2 sums the apparent area removed by moving countries to
// latitudes with less distortion. Countries moved poleward add nothing.
func RevealedAreaKm2(placed []core.PlacedCountry) float64 {
	var total float64
	for _, p := range placed {
		before := AreaDistortion(p.Original.Centroid.Lat())
		after := AreaDistortion(p.CurrentPosition.Lat())
		if after < before {
			total += p.Original.AreaKm2 * (before - after)
		}
	}
	return total
}

// TrueSizeCount counts placed countries sitting where distortion is below 1.2.
func TrueSizeCount(placed []core.PlacedCountry) int {
	n := 0
	for _, p := range placed {
		if AreaDistortion(p.CurrentPosition.Lat()) < trueSizeDistortion {
			n++
		}
	}
	return n
}
