package ingest

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/truesize/engine/internal/splitter"
	"github.com/truesize/engine/pkg/core"
)

func box(minLng, minLat, maxLng, maxLat float64) orb.Polygon {
	return orb.Polygon{{
		{minLng, minLat},
		{maxLng, minLat},
		{maxLng, maxLat},
		{minLng, maxLat},
		{minLng, minLat},
	}}
}

// sizedBox returns a box whose width is chosen so it covers areaKm2.
func sizedBox(minLng, minLat, maxLat, areaKm2 float64) orb.Polygon {
	rad := math.Pi / 180
	r := orb.EarthRadius / 1000
	width := areaKm2 / (r * r * (math.Sin(maxLat*rad) - math.Sin(minLat*rad))) / rad
	return box(minLng, minLat, minLng+width, maxLat)
}

func feature(name, code, continent string, g orb.Geometry) core.Feature {
	return core.Feature{
		Properties: core.FeatureProperties{Name: name, AdminCode: code, Continent: continent},
		Geometry:   g,
	}
}

func newTestLoader(t *testing.T, opts ...Option) (*Loader, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]Option{WithLogger(logger), WithMeterProvider(noop.NewMeterProvider())}, opts...)
	l, err := New(opts...)
	require.NoError(t, err)
	return l, &buf
}

func TestNew_Defaults(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	assert.NotNil(t, l.splitter)
	assert.NotNil(t, l.logger)
}

func TestLoad_Testland(t *testing.T) {
	l, _ := newTestLoader(t)
	mp := orb.MultiPolygon{
		sizedBox(0, 0, 20, 2_000_000),
		sizedBox(60, 30, 40, 600_000),
	}

	got := l.Load([]core.Feature{feature("Testland", "TST", "Asia", mp)})
	require.Len(t, got, 2)

	assert.Equal(t, "Testland (Mainland)", got[0].Name)
	assert.InEpsilon(t, 2_000_000, got[0].AreaKm2, 1e-6)
	assert.Equal(t, "Testland (Northern Eastern Region)", got[1].Name)
	assert.InEpsilon(t, 600_000, got[1].AreaKm2, 1e-6)
	for _, c := range got {
		assert.Equal(t, "TST", c.ISOCode)
		assert.Equal(t, "Asia", c.Continent)
	}
}

func TestLoad_PolygonBecomesOneCountry(t *testing.T) {
	l, _ := newTestLoader(t)
	got := l.Load([]core.Feature{feature("Squareland", "SQL", "Africa", box(10, -5, 20, 5))})
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, "SQL", c.ID)
	assert.Equal(t, "SQL", c.ISOCode)
	assert.Equal(t, "Squareland", c.Name)
	assert.Greater(t, c.AreaKm2, 0.0)
	assert.InDelta(t, 15, c.Centroid.Lon(), 1e-6)
	assert.InDelta(t, 0, c.Centroid.Lat(), 1e-6)
}

func TestLoad_Fallbacks(t *testing.T) {
	l, _ := newTestLoader(t)
	f := core.Feature{
		Properties: core.FeatureProperties{Admin: "Adminland", AdminCode: "ADM"},
		Geometry:   box(-70, -30, -60, -20),
	}

	got := l.Load([]core.Feature{f})
	require.Len(t, got, 1)
	assert.Equal(t, "Adminland", got[0].Name)
	assert.Equal(t, core.UnknownContinent, got[0].Continent)
}

func TestLoad_SkipsBadRecords(t *testing.T) {
	l, logs := newTestLoader(t)
	flat := orb.Polygon{{{0, 0}, {1, 0}, {2, 0}, {0, 0}}}

	features := []core.Feature{
		feature("First", "AAA", "Europe", box(0, 40, 5, 45)),
		feature("No geometry", "BBB", "Europe", nil),
		feature("No code", "", "Europe", box(0, 40, 5, 45)),
		feature("", "CCC", "Europe", box(0, 40, 5, 45)),
		feature("Point", "DDD", "Europe", orb.Point{5, 50}),
		feature("Flat", "EEE", "Europe", flat),
		feature("All parts flat", "FFF", "Europe", orb.MultiPolygon{flat}),
		feature("Last", "GGG", "Europe", box(10, 40, 15, 45)),
	}

	got := l.Load(features)
	require.Len(t, got, 2)
	assert.Equal(t, "AAA", got[0].ID)
	assert.Equal(t, "GGG", got[1].ID)

	out := logs.String()
	for _, reason := range []string{reasonNoGeometry, reasonNoCode, reasonNoName, reasonUnsupported, reasonDegenerate} {
		assert.Contains(t, out, "reason="+reason)
	}
	assert.Equal(t, 6, strings.Count(out, "Skipping record"))
}

func TestLoad_IDsAreSanitizedAndUnique(t *testing.T) {
	l, _ := newTestLoader(t)
	features := []core.Feature{
		feature("One", "A:B", "Europe", box(0, 40, 5, 45)),
		feature("Two", "A,B", "Europe", box(10, 40, 15, 45)),
		feature("Three", "A_B", "Europe", box(20, 40, 25, 45)),
	}

	got := l.Load(features)
	require.Len(t, got, 3)
	assert.Equal(t, "A_B", got[0].ID)
	assert.Equal(t, "A_B_2", got[1].ID)
	assert.Equal(t, "A_B_3", got[2].ID)
	assert.Equal(t, "A:B", got[0].ISOCode)
	for _, c := range got {
		assert.True(t, core.ValidID(c.ID), c.ID)
	}
}

func TestLoad_CustomSplitter(t *testing.T) {
	cfg := splitter.DefaultConfig()
	cfg.ThresholdKm2 = 50_000
	cfg.MainlandLabels["TST"] = splitter.Label{Name: "Core", IDSuffix: "CORE"}
	l, _ := newTestLoader(t, WithSplitter(splitter.New(cfg, nil)))

	mp := orb.MultiPolygon{
		sizedBox(0, 0, 20, 2_000_000),
		sizedBox(60, 30, 40, 100_000),
	}
	got := l.Load([]core.Feature{feature("Testland", "TST", "Asia", mp)})
	require.Len(t, got, 2)
	assert.Equal(t, "TST_CORE", got[0].ID)
	assert.Equal(t, "Testland (Core)", got[0].Name)
}

func TestLoad_Empty(t *testing.T) {
	l, _ := newTestLoader(t)
	got := l.Load(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadGeoJSON(t *testing.T) {
	data, err := os.ReadFile("testdata/countries.geojson")
	require.NoError(t, err)

	l, _ := newTestLoader(t)
	got, err := l.LoadGeoJSON(data)
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"SQL", "TST_MAIN", "TST_NE", "ADM"}, ids)
}

func TestLoadGeoJSON_OddPropertyValues(t *testing.T) {
	const square = `{"type":"Polygon","coordinates":[[[10,-5],[20,-5],[20,5],[10,5],[10,-5]]]}`
	tests := []struct {
		name      string
		props     string
		wantIDs   []string
		wantName  string
		wantCont  string
		wantInLog string
	}{
		{"numeric code", `{"NAME":"Oddland","ADM0_A3":840}`, []string{"SQL"}, "", "", reasonNoCode},
		{"null code", `{"NAME":"Oddland","ADM0_A3":null}`, []string{"SQL"}, "", "", reasonNoCode},
		{"boolean name without admin", `{"NAME":true,"ADM0_A3":"ODD"}`, []string{"SQL"}, "", "", reasonNoName},
		{"numeric name falls back to admin", `{"NAME":1,"ADMIN":"Oddland","ADM0_A3":"ODD"}`, []string{"ODD", "SQL"}, "Oddland", "Unknown", ""},
		{"boolean continent", `{"NAME":"Oddland","ADM0_A3":"ODD","CONTINENT":false}`, []string{"ODD", "SQL"}, "Oddland", "Unknown", ""},
		{"object continent", `{"NAME":"Oddland","ADM0_A3":"ODD","CONTINENT":{"a":1}}`, []string{"ODD", "SQL"}, "Oddland", "Unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := `{"type":"FeatureCollection","features":[` +
				`{"type":"Feature","properties":` + tt.props + `,"geometry":` + square + `},` +
				`{"type":"Feature","properties":{"NAME":"Squareland","ADM0_A3":"SQL","CONTINENT":"Africa"},"geometry":` + square + `}` +
				`]}`

			l, buf := newTestLoader(t)
			got, err := l.LoadGeoJSON([]byte(data))
			require.NoError(t, err)

			ids := make([]string, len(got))
			for i, c := range got {
				ids[i] = c.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, "Squareland", got[len(got)-1].Name)

			if tt.wantName != "" {
				assert.Equal(t, tt.wantName, got[0].Name)
				assert.Equal(t, tt.wantCont, got[0].Continent)
			}
			if tt.wantInLog != "" {
				assert.Contains(t, buf.String(), "reason="+tt.wantInLog)
			}
		})
	}
}

func TestLoadGeoJSON_Invalid(t *testing.T) {
	l, _ := newTestLoader(t)
	_, err := l.LoadGeoJSON([]byte("not json"))
	assert.Error(t, err)
}

func TestUniqueID(t *testing.T) {
	seen := map[string]int{}
	assert.Equal(t, "X", uniqueID(seen, "X"))
	assert.Equal(t, "X_2", uniqueID(seen, "X"))
	assert.Equal(t, "X_2_2", uniqueID(seen, "X_2"))
	assert.Equal(t, "X_3", uniqueID(seen, "X"))
}
