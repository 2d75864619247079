// Package placement encodes placed countries as a share string of
// id:lat:lng entries joined by commas.
package placement

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/truesize/engine/pkg/core"
)

var ErrMalformedPlacement = errors.New("malformed placement")

const (
	entrySeparator = ","
	fieldSeparator = ":"
)

type Placement struct {
	ID       string
	Position orb.Point // [lng, lat]
}

// FromPlaced extracts the share entries of placed countries.
func FromPlaced(placed []core.PlacedCountry) []Placement {
	out := make([]Placement, len(placed))
	for i, p := range placed {
		out[i] = Placement{ID: p.Original.ID, Position: p.CurrentPosition}
	}
	return out
}

// Encode writes latitude before longitude, as share links always have.
func Encode(placements []Placement) (string, error) {
	entries := make([]string, len(placements))
	for i, p := range placements {
		if !core.ValidID(p.ID) {
			return "", fmt.Errorf("entry %d: id %q: %w", i, p.ID, ErrMalformedPlacement)
		}
		if !finite(p.Position.Lat()) || !finite(p.Position.Lon()) {
			return "", fmt.Errorf("entry %d: non-finite position: %w", i, ErrMalformedPlacement)
		}
		entries[i] = p.ID + fieldSeparator +
			strconv.FormatFloat(p.Position.Lat(), 'f', -1, 64) + fieldSeparator +
			strconv.FormatFloat(p.Position.Lon(), 'f', -1, 64)
	}
	return strings.Join(entries, entrySeparator), nil
}

// Decode parses a share string. An empty string holds no placements.
func Decode(s string) ([]Placement, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	entries := strings.Split(s, entrySeparator)
	out := make([]Placement, 0, len(entries))
	for i, entry := range entries {
		fields := strings.Split(entry, fieldSeparator)
		if len(fields) != 3 || fields[0] == "" {
			return nil, fmt.Errorf("entry %d %q: %w", i, entry, ErrMalformedPlacement)
		}

		lat, err := parseCoord(fields[1], 90)
		if err != nil {
			return nil, fmt.Errorf("entry %d latitude: %w", i, err)
		}
		lng, err := parseCoord(fields[2], 180)
		if err != nil {
			return nil, fmt.Errorf("entry %d longitude: %w", i, err)
		}
		out = append(out, Placement{ID: fields[0], Position: orb.Point{lng, lat}})
	}
	return out, nil
}

func parseCoord(s string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrMalformedPlacement)
	}
	if !finite(v) || math.Abs(v) > limit {
		return 0, fmt.Errorf("%q out of range: %w", s, ErrMalformedPlacement)
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
