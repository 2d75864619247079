// Package splitter decides whether a multipolygon is one country or several
// independently relocatable landmasses.
package splitter

import (
	"fmt"
	"maps"
	"math"
	"sort"
	"strconv"

	"github.com/paulmach/orb"

	"github.com/truesize/engine/internal/geo"
	"github.com/truesize/engine/internal/logging"
	"github.com/truesize/engine/pkg/core"
)

// Source is the identity shared by every country produced from one record.
type Source struct {
	ID        string
	ISOCode   string
	Name      string
	Continent string
}

// Splitter is immutable after New and safe for concurrent use.
type Splitter struct {
	thresholdKm2 float64
	mainland     map[string]Label
	regions      map[RegionKey]Label
	logger       logging.Logger
}

// New copies cfg so later changes to its maps have no effect. A
// non-positive threshold falls back to DefaultThresholdKm2.
func New(cfg Config, logger logging.Logger) *Splitter {
	threshold := cfg.ThresholdKm2
	if !(threshold > 0) || math.IsInf(threshold, 0) {
		threshold = DefaultThresholdKm2
	}
	return &Splitter{
		thresholdKm2: threshold,
		mainland:     maps.Clone(cfg.MainlandLabels),
		regions:      maps.Clone(cfg.Regions),
		logger:       logging.OrNop(logger),
	}
}

func (s *Splitter) ThresholdKm2() float64 {
	return s.thresholdKm2
}

// MainlandLabel returns the label for the largest part of adminCode.
func (s *Splitter) MainlandLabel(adminCode string) Label {
	if l, ok := s.mainland[adminCode]; ok {
		return l
	}
	return Label{Name: DefaultMainlandName, IDSuffix: DefaultMainlandSuffix}
}

// RegionLabel names a secondary part from the region table, or synthesizes
// "<Northern|Southern> <Eastern|Western> Region" from the part's hemisphere
// and its side relative to the mainland.
func (s *Splitter) RegionLabel(adminCode string, centroid, mainland orb.Point) Label {
	if l, ok := s.regions[KeyFor(adminCode, centroid)]; ok {
		return l
	}

	ns := "Northern"
	if centroid.Lat() < 0 {
		ns = "Southern"
	}
	ew := "Eastern"
	if lngDelta(mainland.Lon(), centroid.Lon()) < 0 {
		ew = "Western"
	}
	return Label{
		Name:     ns + " " + ew + " Region",
		IDSuffix: ns[:1] + ew[:1],
	}
}

// lngDelta is the signed shortest longitude difference from -> to.
func lngDelta(from, to float64) float64 {
	return math.Mod(to-from+540, 360) - 180
}

type part struct {
	index   int
	polygon orb.Polygon
	m       geo.Measurement
}

// Split turns mp into one or more countries. Degenerate parts are skipped;
// when no part can be measured the error matches geo.ErrDegenerateGeometry.
func (s *Splitter) Split(src Source, mp orb.MultiPolygon) ([]core.Country, error) {
	parts := s.measure(src, mp)
	if len(parts) == 0 {
		return nil, &geo.DegenerateGeometryError{Part: -1, Ring: -1, Reason: "no measurable part"}
	}

	significant := make([]part, 0, len(parts))
	for _, p := range parts {
		if p.m.AreaKm2 >= s.thresholdKm2 {
			significant = append(significant, p)
		}
	}

	if len(significant) < 2 {
		c, err := s.whole(src, mp, parts)
		if err != nil {
			return nil, err
		}
		return []core.Country{c}, nil
	}
	return s.split(src, significant), nil
}

func (s *Splitter) measure(src Source, mp orb.MultiPolygon) []part {
	parts := make([]part, 0, len(mp))
	for i, poly := range mp {
		m, err := geo.Measure(poly)
		if err != nil {
			s.logger.Warn("Skipping degenerate part", "id", src.ID, "part", i, "error", err)
			continue
		}
		parts = append(parts, part{index: i, polygon: poly, m: m})
	}
	return parts
}

// whole keeps the record as a single country. Skipped parts are left out of
// the geometry so area, centroid and outline agree.
func (s *Splitter) whole(src Source, mp orb.MultiPolygon, parts []part) (core.Country, error) {
	geometry := mp
	if len(parts) != len(mp) {
		geometry = make(orb.MultiPolygon, len(parts))
		for i, p := range parts {
			geometry[i] = p.polygon
		}
	}

	m, err := geo.Measure(geometry)
	if err != nil {
		return core.Country{}, fmt.Errorf("measuring %s: %w", src.ID, err)
	}
	return core.Country{
		ID:        src.ID,
		ISOCode:   src.ISOCode,
		Name:      src.Name,
		Geometry:  geometry,
		AreaKm2:   m.AreaKm2,
		Centroid:  m.Centroid,
		Continent: src.Continent,
	}, nil
}

func (s *Splitter) split(src Source, significant []part) []core.Country {
	sort.SliceStable(significant, func(i, j int) bool {
		return significant[i].m.AreaKm2 > significant[j].m.AreaKm2
	})

	mainland := significant[0]
	labels := make([]Label, len(significant))
	labels[0] = s.MainlandLabel(src.ISOCode)
	for i := 1; i < len(significant); i++ {
		labels[i] = s.RegionLabel(src.ISOCode, significant[i].m.Centroid, mainland.m.Centroid)
	}
	dedupeLabels(labels)

	out := make([]core.Country, len(significant))
	for i, p := range significant {
		out[i] = core.Country{
			ID:        src.ID + "_" + labels[i].IDSuffix,
			ISOCode:   src.ISOCode,
			Name:      fmt.Sprintf("%s (%s)", src.Name, labels[i].Name),
			Geometry:  p.polygon,
			AreaKm2:   p.m.AreaKm2,
			Centroid:  p.m.Centroid,
			Continent: src.Continent,
		}
		s.logger.Debug("Split part", "id", out[i].ID, "sourcePart", p.index, "areaKm2", p.m.AreaKm2)
	}
	s.logger.Info("Split country", "id", src.ID, "parts", len(out))
	return out
}

// dedupeLabels numbers repeated suffixes, e.g. two synthesized "NE" parts.
func dedupeLabels(labels []Label) {
	seen := make(map[string]int, len(labels))
	for i, l := range labels {
		seen[l.IDSuffix]++
		if n := seen[l.IDSuffix]; n > 1 {
			labels[i] = Label{
				Name:     l.Name + " " + strconv.Itoa(n),
				IDSuffix: l.IDSuffix + "_" + strconv.Itoa(n),
			}
		}
	}
}
