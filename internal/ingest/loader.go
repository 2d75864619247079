// Package ingest turns raw country records into Country entities.
package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/truesize/engine/internal/geo"
	"github.com/truesize/engine/internal/logging"
	"github.com/truesize/engine/internal/splitter"
	"github.com/truesize/engine/pkg/core"
)

// Skip reasons reported in logs and the ingest.skipped counter.
const (
	reasonNoGeometry  = "no_geometry"
	reasonNoCode      = "no_code"
	reasonNoName      = "no_name"
	reasonUnsupported = "unsupported_geometry"
	reasonDegenerate  = "degenerate_geometry"
)

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for skipped records.
func WithLogger(l logging.Logger) Option {
	return func(ld *Loader) {
		ld.logger = l
	}
}

// WithSplitter replaces the default splitter.
func WithSplitter(s *splitter.Splitter) Option {
	return func(ld *Loader) {
		ld.splitter = s
	}
}

// WithMeterProvider records metrics on mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(ld *Loader) {
		ld.meter = mp.Meter(instrumentationName)
	}
}

// Loader converts features into countries. It is immutable after New.
type Loader struct {
	logger   logging.Logger
	splitter *splitter.Splitter
	meter    metric.Meter

	records   metric.Int64Counter
	countries metric.Int64Counter
	skipped   metric.Int64Counter
	splits    metric.Int64Counter
}

// New creates a Loader. Uses the global OTel meter for metrics (no-op if
// not configured).
func New(opts ...Option) (*Loader, error) {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = logging.OrNop(l.logger)
	if l.splitter == nil {
		l.splitter = splitter.New(splitter.DefaultConfig(), l.logger)
	}
	if l.meter == nil {
		l.meter = meter()
	}

	var err error
	l.records, err = l.meter.Int64Counter(
		"ingest.records",
		metric.WithDescription("Total source records read"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating records counter: %w", err)
	}

	l.countries, err = l.meter.Int64Counter(
		"ingest.countries",
		metric.WithDescription("Total countries produced"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating countries counter: %w", err)
	}

	l.skipped, err = l.meter.Int64Counter(
		"ingest.skipped",
		metric.WithDescription("Total source records skipped"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating skipped counter: %w", err)
	}

	l.splits, err = l.meter.Int64Counter(
		"ingest.splits",
		metric.WithDescription("Total records split into several countries"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating splits counter: %w", err)
	}

	return l, nil
}

// Load converts features in order. Records that cannot be measured are
// skipped and logged; Load itself never fails.
func (l *Loader) Load(features []core.Feature) []core.Country {
	return l.collect(context.Background(), features, func(i int) ([]core.Country, string, error) {
		return l.convert(features[i])
	})
}

// collect assembles converted records in source order, giving every country
// a unique id.
func (l *Loader) collect(ctx context.Context, features []core.Feature, convert func(int) ([]core.Country, string, error)) []core.Country {
	out := make([]core.Country, 0, len(features))
	ids := make(map[string]int, len(features))

	for i, f := range features {
		l.records.Add(ctx, 1)

		produced, reason, err := convert(i)
		if reason != "" {
			l.skip(ctx, i, f, reason, err)
			continue
		}
		if len(produced) > 1 {
			l.splits.Add(ctx, 1)
		}

		for _, c := range produced {
			c.ID = uniqueID(ids, c.ID)
			out = append(out, c)
		}
		l.countries.Add(ctx, int64(len(produced)))
	}

	l.logger.Info("Loaded countries", "records", len(features), "countries", len(out))
	return out
}

// LoadGeoJSON parses a FeatureCollection and loads it.
func (l *Loader) LoadGeoJSON(data []byte) ([]core.Country, error) {
	features, err := ParseFeatureCollection(data)
	if err != nil {
		return nil, err
	}
	return l.Load(features), nil
}

func (l *Loader) convert(f core.Feature) ([]core.Country, string, error) {
	props := f.Properties
	code := strings.TrimSpace(props.AdminCode)
	name := strings.TrimSpace(props.DisplayName())

	switch {
	case f.Geometry == nil:
		return nil, reasonNoGeometry, nil
	case code == "":
		return nil, reasonNoCode, nil
	case name == "":
		return nil, reasonNoName, nil
	}

	continent := strings.TrimSpace(props.Continent)
	if continent == "" {
		continent = core.UnknownContinent
	}
	src := splitter.Source{
		ID:        core.SanitizeID(code),
		ISOCode:   code,
		Name:      name,
		Continent: continent,
	}

	switch g := f.Geometry.(type) {
	case orb.Polygon:
		m, err := geo.Measure(g)
		if err != nil {
			return nil, reasonDegenerate, err
		}
		return []core.Country{{
			ID:        src.ID,
			ISOCode:   src.ISOCode,
			Name:      src.Name,
			Geometry:  g,
			AreaKm2:   m.AreaKm2,
			Centroid:  m.Centroid,
			Continent: src.Continent,
		}}, "", nil
	case orb.MultiPolygon:
		countries, err := l.splitter.Split(src, g)
		if err != nil {
			return nil, reasonDegenerate, err
		}
		return countries, "", nil
	default:
		return nil, reasonUnsupported, fmt.Errorf("geometry type %s", f.Geometry.GeoJSONType())
	}
}

func (l *Loader) skip(ctx context.Context, index int, f core.Feature, reason string, err error) {
	l.skipped.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))

	kv := []any{"index", index, "code", f.Properties.AdminCode, "name", f.Properties.DisplayName(), "reason", reason}
	if err != nil {
		kv = append(kv, "error", err)
	}
	l.logger.Warn("Skipping record", kv...)
}

// uniqueID returns id, or id with a numeric suffix when it was already used.
func uniqueID(seen map[string]int, id string) string {
	seen[id]++
	n := seen[id]
	if n == 1 {
		return id
	}
	for {
		candidate := id + "_" + strconv.Itoa(n)
		if seen[candidate] == 0 {
			seen[candidate] = 1
			return candidate
		}
		n++
	}
}
