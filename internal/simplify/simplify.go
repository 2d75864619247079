// Package simplify reduces outline vertex counts so relocation stays
// responsive. Tolerances are in degrees.
package simplify

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

const minRingPositions = 4

// Simplify runs a radial-distance pass followed by Douglas-Peucker. The
// input is never modified. Non-polygonal geometry and tolerance <= 0 are
// returned as is.
func Simplify(g orb.Geometry, tolerance float64) orb.Geometry {
	return run(g, tolerance, true)
}

// HighQuality runs Douglas-Peucker only.
func HighQuality(g orb.Geometry, tolerance float64) orb.Geometry {
	return run(g, tolerance, false)
}

func run(g orb.Geometry, tolerance float64, fast bool) orb.Geometry {
	if !(tolerance > 0) {
		return g
	}

	switch g := g.(type) {
	case orb.Polygon:
		return polygon(g, tolerance, fast)
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, p := range g {
			out[i] = polygon(p, tolerance, fast)
		}
		return out
	default:
		return g
	}
}

// polygon keeps the original outline when the outer ring would collapse.
// Holes that collapse are dropped.
func polygon(p orb.Polygon, tolerance float64, fast bool) orb.Polygon {
	if len(p) == 0 {
		return p.Clone()
	}

	outer := ring(p[0], tolerance, fast)
	if len(outer) < minRingPositions {
		return p.Clone()
	}

	out := make(orb.Polygon, 1, len(p))
	out[0] = outer
	for _, hole := range p[1:] {
		if h := ring(hole, tolerance, fast); len(h) >= minRingPositions {
			out = append(out, h)
		}
	}
	return out
}

func ring(r orb.Ring, tolerance float64, fast bool) orb.Ring {
	out := r.Clone()
	if fast {
		out = simplify.Radial(planar.Distance, tolerance).Ring(out)
	}
	return simplify.DouglasPeucker(tolerance).Ring(out)
}
