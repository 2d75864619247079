// Package projection computes how the Mercator projection distorts size at
// a given latitude.
package projection

import (
	"fmt"
	"math"

	"github.com/truesize/engine/internal/geo"
)

// Area ratios outside (smallerThreshold, largerThreshold) are reported as
// larger or smaller; the boundaries themselves count as true size.
const (
	largerThreshold  = 1.1
	smallerThreshold = 0.9
)

// MercatorScale returns the linear scale factor 1/cos(lat). Latitude is
// clamped to ±85° first; NaN is treated as the equator.
func MercatorScale(lat float64) float64 {
	return 1 / math.Cos(geo.ClampLatitude(lat)*math.Pi/180)
}

// SizeAdjustment is the linear size change of a shape moved from one
// latitude to another. Below 1 the shape appears smaller.
func SizeAdjustment(fromLat, toLat float64) float64 {
	return MercatorScale(toLat) / MercatorScale(fromLat)
}

// AreaDistortion is the apparent-area multiplier at lat.
func AreaDistortion(lat float64) float64 {
	s := MercatorScale(lat)
	return s * s
}

// noComparisonText is returned for ratios that are not positive and finite.
const noComparisonText = "size comparison unavailable"

// AreaComparisonText describes an apparent/true area ratio. Ratios that are
// not positive and finite get noComparisonText.
func AreaComparisonText(ratio float64) string {
	switch {
	case !(ratio > 0) || math.IsInf(ratio, 1):
		return noComparisonText
	case ratio > largerThreshold:
		return fmt.Sprintf("appears %.1fx larger than its true size", ratio)
	case ratio < smallerThreshold:
		return fmt.Sprintf("appears %.1fx smaller than its true size", 1/ratio)
	default:
		return "shown at approximately true size"
	}
}

// ComparisonForScale describes a linear scale factor; area grows with its
// square.
func ComparisonForScale(scale float64) string {
	return AreaComparisonText(scale * scale)
}
