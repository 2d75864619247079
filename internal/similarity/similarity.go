// Package similarity finds countries of comparable true size.
package similarity

import (
	"math"
	"sort"

	"github.com/truesize/engine/pkg/core"
)

// DefaultTolerance accepts areas within 20% of the target.
const DefaultTolerance = 0.2

// FindSimilarSized returns the countries whose area lies in
// [target*(1-tolerance), target*(1+tolerance)], closest first. Ties keep
// input order. Negative or NaN tolerance behaves as 0.
func FindSimilarSized(targetKm2 float64, countries []core.Country, tolerance float64) []core.Country {
	if !(tolerance > 0) {
		tolerance = 0
	}
	lo := targetKm2 * (1 - tolerance)
	hi := targetKm2 * (1 + tolerance)

	out := make([]core.Country, 0)
	for _, c := range countries {
		if c.AreaKm2 >= lo && c.AreaKm2 <= hi {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].AreaKm2-targetKm2) < math.Abs(out[j].AreaKm2-targetKm2)
	})
	return out
}

// SimilarTo is FindSimilarSized around c's own area with c left out.
func SimilarTo(c core.Country, countries []core.Country, tolerance float64) []core.Country {
	all := FindSimilarSized(c.AreaKm2, countries, tolerance)
	out := all[:0]
	for _, other := range all {
		if other.ID != c.ID {
			out = append(out, other)
		}
	}
	return out
}

// ByID returns the country with the given id.
func ByID(id string, countries []core.Country) (core.Country, bool) {
	for _, c := range countries {
		if c.ID == id {
			return c, true
		}
	}
	return core.Country{}, false
}

// ByISOCode returns every country carrying code, split parts included, in
// input order.
func ByISOCode(code string, countries []core.Country) []core.Country {
	var out []core.Country
	for _, c := range countries {
		if c.ISOCode == code {
			out = append(out, c)
		}
	}
	return out
}

// SortedByArea returns a copy of countries ordered largest first.
func SortedByArea(countries []core.Country) []core.Country {
	out := make([]core.Country, len(countries))
	copy(out, countries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AreaKm2 > out[j].AreaKm2
	})
	return out
}
