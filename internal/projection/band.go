package projection

// DistortionBand groups latitudes by how strongly Mercator inflates area.
type DistortionBand int

const (
	BandTrueSize DistortionBand = iota
	BandModerate
	BandHigh
	BandExtreme
)

func (b DistortionBand) String() string {
	switch b {
	case BandTrueSize:
		return "true size"
	case BandModerate:
		return "moderate"
	case BandHigh:
		return "high"
	case BandExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// Band classifies the area distortion at lat.
func Band(lat float64) DistortionBand {
	d := AreaDistortion(lat)
	switch {
	case d < 1.1:
		return BandTrueSize
	case d < 2:
		return BandModerate
	case d < 5:
		return BandHigh
	default:
		return BandExtreme
	}
}
