package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBand(t *testing.T) {
	tests := []struct {
		lat  float64
		want DistortionBand
	}{
		{0, BandTrueSize},
		{-15, BandTrueSize},
		{30, BandModerate},
		{-40, BandModerate},
		{50, BandHigh},
		{60, BandHigh},
		{70, BandExtreme},
		{-89, BandExtreme},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Band(tt.lat), "lat %v", tt.lat)
	}
}

func TestDistortionBand_String(t *testing.T) {
	assert.Equal(t, "true size", BandTrueSize.String())
	assert.Equal(t, "moderate", BandModerate.String())
	assert.Equal(t, "high", BandHigh.String())
	assert.Equal(t, "extreme", BandExtreme.String())
	assert.Equal(t, "unknown", DistortionBand(42).String())
}
