package projection

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"github.com/truesize/engine/pkg/core"
)

func greenland() core.Country {
	return core.Country{
		ID:       "GRL",
		ISOCode:  "GRL",
		Name:     "Greenland",
		AreaKm2:  2_166_086,
		Centroid: orb.Point{-41, 72},
	}
}

func TestPlace(t *testing.T) {
	c := greenland()
	p := Place(c, orb.Point{20, 0})

	assert.Equal(t, c, p.Original)
	assert.Equal(t, orb.Point{20, 0}, p.CurrentPosition)
	assert.InDelta(t, math.Cos(72*math.Pi/180), p.ScaleFactor, 1e-9)
	assert.InDelta(t, AreaDistortion(72), p.OriginalDistortion, 1e-9)
	assert.InDelta(t, 1.0, p.CurrentDistortion, 1e-9)
	assert.InDelta(t, c.AreaKm2, p.ApparentAreaKm2, 1e-6)

	// 20 degrees of longitude along the equator in EPSG:3857 metres
	assert.InDelta(t, 6378137*20*math.Pi/180, p.MercatorX, 1)
	assert.InDelta(t, 0, p.MercatorY, 1e-3)
}

func TestPlace_PolewardInflates(t *testing.T) {
	c := core.Country{ID: "BRA", AreaKm2: 8_515_767, Centroid: orb.Point{-53, -10}}
	p := Place(c, orb.Point{-53, 60})

	assert.Greater(t, p.ScaleFactor, 1.0)
	assert.Greater(t, p.ApparentAreaKm2, c.AreaKm2)
	assert.Greater(t, p.MercatorY, 0.0)
}

func TestRevealedAreaKm2(t *testing.T) {
	c := greenland()
	toEquator := Place(c, orb.Point{20, 0})
	poleward := Place(core.Country{AreaKm2: 1000, Centroid: orb.Point{0, 0}}, orb.Point{0, 60})

	want := c.AreaKm2 * (AreaDistortion(72) - 1)
	assert.InEpsilon(t, want, RevealedAreaKm2([]core.PlacedCountry{toEquator}), 1e-9)
	assert.InEpsilon(t, want, RevealedAreaKm2([]core.PlacedCountry{toEquator, poleward}), 1e-9)
	assert.Zero(t, RevealedAreaKm2(nil))
}

func TestTrueSizeCount(t *testing.T) {
	c := greenland()
	placed := []core.PlacedCountry{
		Place(c, orb.Point{0, 0}),
		Place(c, orb.Point{0, -20}),
		Place(c, orb.Point{0, 30}),
		Place(c, orb.Point{0, 72}),
	}
	// distortion at 20° is about 1.13, at 30° about 1.33
	assert.Equal(t, 2, TrueSizeCount(placed))
	assert.Zero(t, TrueSizeCount(nil))
}
