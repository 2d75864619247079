// pkg/core/placed.go
package core

import "github.com/paulmach/orb"

// PlacedCountry is a country the user moved to CurrentPosition. The list of
// placed countries is owned by the caller; the engine only fills in the numbers.
type PlacedCountry struct {
	Original        Country
	CurrentPosition orb.Point // [lng, lat] of the relocated centroid
	ScaleFactor     float64   // linear size change versus the original latitude

	OriginalDistortion float64 // apparent-area multiplier at the original latitude
	CurrentDistortion  float64 // apparent-area multiplier at the current latitude
	ApparentAreaKm2    float64 // area the country appears to cover at CurrentPosition

	// EPSG:3857 coordinates of CurrentPosition, in metres
	MercatorX float64
	MercatorY float64
}
