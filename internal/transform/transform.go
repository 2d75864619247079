// Package transform moves country outlines without changing their shape.
package transform

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/truesize/engine/pkg/core"
)

// ErrUnsupportedGeometry is returned by Translate for anything other than a
// Polygon or MultiPolygon.
var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// Relocate shifts every coordinate of g by to - from. The result is a fresh
// geometry; g is never modified. Non-polygonal input is returned unchanged.
func Relocate(g orb.Geometry, from, to orb.Point) orb.Geometry {
	moved, err := Translate(g, to.Lon()-from.Lon(), to.Lat()-from.Lat())
	if err != nil {
		return g
	}
	return moved
}

// RelocateCountry moves c's geometry so its centroid lands on to.
func RelocateCountry(c core.Country, to orb.Point) orb.Geometry {
	return Relocate(c.Geometry, c.Centroid, to)
}

// Translate shifts g by (dlng, dlat) degrees into a fresh geometry.
func Translate(g orb.Geometry, dlng, dlat float64) (orb.Geometry, error) {
	switch g := g.(type) {
	case orb.Polygon:
		return translatePolygon(g, dlng, dlat), nil
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, p := range g {
			out[i] = translatePolygon(p, dlng, dlat)
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("translating nil geometry: %w", ErrUnsupportedGeometry)
	default:
		return nil, fmt.Errorf("translating %s: %w", g.GeoJSONType(), ErrUnsupportedGeometry)
	}
}

func translatePolygon(p orb.Polygon, dlng, dlat float64) orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, r := range p {
		ring := make(orb.Ring, len(r))
		for j, pt := range r {
			ring[j] = orb.Point{pt.Lon() + dlng, pt.Lat() + dlat}
		}
		out[i] = ring
	}
	return out
}
