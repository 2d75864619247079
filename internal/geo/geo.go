// Package geo measures country outlines on the sphere.
//
// Coordinates are always [lng, lat] degrees. Areas follow the ring-area
// algorithm on a sphere of radius orb.EarthRadius, centroids are
// area-weighted and computed on the unit sphere so parts on both sides of the
// antimeridian average correctly.
package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	geom "github.com/peterstace/simplefeatures/geom"
)

const (
	squareMetresPerKm2 = 1e6

	// a closed triangle: three corners plus the repeated first position
	minRingPositions = 4

	// rings below this are treated as having no area (one square metre)
	minAreaKm2 = 1e-6
)

// Measurement is the area and centroid of a polygon or multipolygon.
type Measurement struct {
	AreaKm2  float64
	Centroid orb.Point
}

// Validate checks that g is a Polygon or MultiPolygon whose rings are closed,
// in range and enclose some area.
func Validate(g orb.Geometry) error {
	switch g := g.(type) {
	case nil:
		return degenerate("missing geometry")
	case orb.Polygon:
		return validatePolygon(g, -1)
	case orb.MultiPolygon:
		if len(g) == 0 {
			return degenerate("multipolygon has no parts")
		}
		for i, p := range g {
			if err := validatePolygon(p, i); err != nil {
				return err
			}
		}
		return nil
	default:
		return degenerate(fmt.Sprintf("cannot measure %s", g.GeoJSONType()))
	}
}

func validatePolygon(p orb.Polygon, part int) error {
	if len(p) == 0 {
		return &DegenerateGeometryError{Part: part, Ring: -1, Reason: "polygon has no rings"}
	}
	for i, r := range p {
		if reason := ringProblem(r); reason != "" {
			return &DegenerateGeometryError{Part: part, Ring: i, Reason: reason}
		}
	}
	return nil
}

// ringProblem returns why r is unusable, or "" when it is fine.
func ringProblem(r orb.Ring) string {
	if len(r) < minRingPositions {
		return fmt.Sprintf("ring has %d positions, need at least %d", len(r), minRingPositions)
	}
	flat := make([]float64, 0, 2*len(r))
	for _, pt := range r {
		lng, lat := pt.Lon(), pt.Lat()
		if math.IsNaN(lng) || math.IsNaN(lat) || math.IsInf(lng, 0) || math.IsInf(lat, 0) {
			return "ring has a non-finite coordinate"
		}
		if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
			return fmt.Sprintf("position [%g, %g] is out of range", lng, lat)
		}
		flat = append(flat, lng, lat)
	}
	ls, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return err.Error()
	}
	if !ls.IsClosed() {
		return "ring is not closed"
	}
	if orbgeo.Area(r)/squareMetresPerKm2 < minAreaKm2 {
		return "ring has zero area"
	}
	return ""
}

// Area returns the surface area of g in km², outer rings minus holes.
func Area(g orb.Geometry) (float64, error) {
	m, err := Measure(g)
	return m.AreaKm2, err
}

// Centroid returns the area-weighted centroid of g. For a MultiPolygon it is
// the area-weighted average of the part centroids.
func Centroid(g orb.Geometry) (orb.Point, error) {
	m, err := Measure(g)
	return m.Centroid, err
}

// Measure returns both the area and the centroid of g.
func Measure(g orb.Geometry) (Measurement, error) {
	if err := Validate(g); err != nil {
		return Measurement{}, err
	}

	area := orbgeo.Area(g) / squareMetresPerKm2
	if !(area >= minAreaKm2) {
		return Measurement{}, degenerate("holes cover the whole polygon")
	}

	var moment r3.Vector
	switch g := g.(type) {
	case orb.Polygon:
		moment = polygonMoment(g)
	case orb.MultiPolygon:
		for _, p := range g {
			moment = moment.Add(polygonMoment(p))
		}
	}

	c, ok := toLngLat(moment)
	if !ok {
		return Measurement{}, degenerate("centroid is undefined")
	}
	return Measurement{AreaKm2: area, Centroid: c}, nil
}

// polygonMoment is the polygon's true centroid scaled by its spherical area.
// Summing moments and normalising gives an area-weighted centroid.
func polygonMoment(p orb.Polygon) r3.Vector {
	var sum r3.Vector
	for i, r := range p {
		m := ringMoment(r)
		if i == 0 {
			sum = sum.Add(m)
		} else {
			sum = sum.Sub(m)
		}
	}
	return sum
}

// maxEdgeDegrees bounds the edge length handed to s2. Longer edges are
// split so loop edges follow the same lng/lat lines the area formula uses
// rather than great circles.
const maxEdgeDegrees = 1.0

func ringMoment(r orb.Ring) r3.Vector {
	pts := make([]s2.Point, 0, len(r))
	add := func(pt orb.Point) {
		sp := s2.PointFromLatLng(s2.LatLngFromDegrees(pt.Lat(), pt.Lon()))
		// consecutive duplicates, including every vertex sitting on a pole
		if n := len(pts); n > 0 && pts[n-1].ApproxEqual(sp) {
			return
		}
		pts = append(pts, sp)
	}
	for i, pt := range r {
		if i > 0 {
			densify(r[i-1], pt, add)
		}
		add(pt)
	}
	// s2 loops close implicitly
	if n := len(pts); n > 1 && pts[0].ApproxEqual(pts[n-1]) {
		pts = pts[:n-1]
	}
	if len(pts) < 3 {
		return r3.Vector{}
	}

	loop := s2.LoopFromPoints(pts)
	// winding differs between sources; always measure the smaller side
	loop.Normalize()
	return loop.Centroid().Vector
}

// densify calls add for the points strictly between a and b, spaced at most
// maxEdgeDegrees apart.
func densify(a, b orb.Point, add func(orb.Point)) {
	dlng, dlat := b.Lon()-a.Lon(), b.Lat()-a.Lat()
	steps := int(math.Ceil(math.Max(math.Abs(dlng), math.Abs(dlat)) / maxEdgeDegrees))
	for k := 1; k < steps; k++ {
		f := float64(k) / float64(steps)
		add(orb.Point{a.Lon() + f*dlng, a.Lat() + f*dlat})
	}
}

func toLngLat(v r3.Vector) (orb.Point, bool) {
	n := v.Norm()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return orb.Point{}, false
	}
	ll := s2.LatLngFromPoint(s2.Point{Vector: v.Mul(1 / n)})
	return orb.Point{ll.Lng.Degrees(), ll.Lat.Degrees()}, true
}
