package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/truesize/engine/internal/cache"
	"github.com/truesize/engine/internal/config"
	"github.com/truesize/engine/internal/ingest"
	"github.com/truesize/engine/internal/logging"
	"github.com/truesize/engine/internal/placement"
	"github.com/truesize/engine/internal/presets"
	"github.com/truesize/engine/internal/projection"
	"github.com/truesize/engine/internal/similarity"
	"github.com/truesize/engine/internal/splitter"
	"github.com/truesize/engine/internal/transform"
	"github.com/truesize/engine/pkg/core"
)

const usage = `usage: truesize <command> [args]

commands:
  countries [continent]          list countries, largest first
  compare <id> <lat>             show how <id> looks moved to latitude <lat>
  similar <id> [tolerance]       countries of comparable true size
  relocate <id> <lng> <lat>      print the moved outline as GeoJSON
  preset [id]                    list presets, or run one
  share <id:lat:lng,...>         summarize a shared placement link
  version                        print the version`

var errUsage = errors.New("invalid arguments")

// app holds the loaded countries and settings for one command.
type app struct {
	countries         []core.Country
	outlines          *cache.OutlineCache
	logger            logging.Logger
	similarTolerance  float64
	simplifyTolerance float64
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(out, usage)
		return nil
	}
	if strings.ToLower(args[0]) == "version" {
		fmt.Fprintf(out, "%s %s (built %s)\n", AppName, CurrentVersion, BuildDate)
		return nil
	}

	// a missing config file is fine, defaults apply
	cfgErr := loadConfig()

	closeLogs, err := setupLogging(config.GetLogConfig())
	defer closeLogs()
	if err != nil {
		return err
	}
	if cfgErr != nil {
		Logger.Debug("Using default configuration", "error", cfgErr)
	}

	shutdownOTel, err := setupOTel(config.GetOTelConfig())
	if err != nil {
		return err
	}
	defer shutdownOTel()

	dataFile, err := resolveDataFile(config.GetString("dataFile"))
	if err != nil {
		return err
	}
	a, err := newApp(dataFile, Logger)
	if err != nil {
		return err
	}
	return a.dispatch(args, out)
}

func newApp(dataFile string, logger logging.Logger) (*app, error) {
	splitCfg, err := config.GetSplitterConfig()
	if err != nil {
		return nil, err
	}
	loader, err := ingest.New(
		ingest.WithLogger(logger),
		ingest.WithSplitter(splitter.New(splitCfg, logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating loader: %w", err)
	}

	data, err := os.ReadFile(dataFile)
	if err != nil {
		return nil, fmt.Errorf("reading country data: %w", err)
	}
	features, err := ingest.ParseFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dataFile, err)
	}
	countries, err := loader.LoadConcurrent(context.Background(), features, config.GetInt("ingest.workers"))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dataFile, err)
	}

	return &app{
		countries:         countries,
		outlines:          cache.NewOutlineCache(),
		logger:            logging.OrNop(logger),
		similarTolerance:  config.GetFloat("similarity.tolerance"),
		simplifyTolerance: config.GetFloat("simplify.tolerance"),
	}, nil
}

func (a *app) dispatch(args []string, out io.Writer) error {
	cmd, rest := strings.ToLower(args[0]), args[1:]
	a.logger.Debug("Running command", "command", cmd, "args", rest)

	var err error
	switch cmd {
	case "countries":
		err = a.listCountries(rest, out)
	case "compare":
		err = a.compare(rest, out)
	case "similar":
		err = a.similar(rest, out)
	case "relocate":
		err = a.relocate(rest, out)
	case "preset":
		err = a.preset(rest, out)
	case "share":
		err = a.share(rest, out)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if errors.Is(err, errUsage) {
		fmt.Fprintln(out, usage)
	}
	return err
}

func (a *app) country(id string) (core.Country, error) {
	c, ok := similarity.ByID(id, a.countries)
	if !ok {
		return core.Country{}, fmt.Errorf("country %q not found", id)
	}
	return c, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, s, errUsage)
	}
	return v, nil
}

func (a *app) listCountries(args []string, out io.Writer) error {
	var continent string
	if len(args) > 0 {
		continent = strings.Join(args, " ")
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAREA\tLAT\tDISTORTION")
	for _, c := range similarity.SortedByArea(a.countries) {
		if continent != "" && !strings.EqualFold(c.Continent, continent) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.2fx (%s)\n",
			c.ID, c.Name, projection.FormatArea(c.AreaKm2), c.Centroid.Lat(),
			projection.AreaDistortion(c.Centroid.Lat()), projection.Band(c.Centroid.Lat()))
	}
	return w.Flush()
}

func (a *app) compare(args []string, out io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("compare needs <id> <lat>: %w", errUsage)
	}
	c, err := a.country(args[0])
	if err != nil {
		return err
	}
	lat, err := parseFloat("latitude", args[1])
	if err != nil {
		return err
	}

	a.printPlaced(out, projection.Place(c, orb.Point{c.Centroid.Lon(), lat}))
	return nil
}

func (a *app) printPlaced(out io.Writer, p core.PlacedCountry) {
	c := p.Original
	fmt.Fprintf(out, "%s (%s)\n", c.Name, c.ID)
	fmt.Fprintf(out, "  true area:      %s\n", projection.FormatArea(c.AreaKm2))
	fmt.Fprintf(out, "  at %6.1f°:     %s, %s\n", c.Centroid.Lat(),
		projection.FormatArea(c.AreaKm2*p.OriginalDistortion), projection.AreaComparisonText(p.OriginalDistortion))
	fmt.Fprintf(out, "  at %6.1f°:     %s, %s\n", p.CurrentPosition.Lat(),
		projection.FormatArea(p.ApparentAreaKm2), projection.AreaComparisonText(p.CurrentDistortion))
	fmt.Fprintf(out, "  size change:    %.3fx\n", p.ScaleFactor)
	fmt.Fprintf(out, "  web mercator:   %.0f, %.0f\n", p.MercatorX, p.MercatorY)
}

func (a *app) similar(args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("similar needs <id> [tolerance]: %w", errUsage)
	}
	c, err := a.country(args[0])
	if err != nil {
		return err
	}
	tolerance := a.similarTolerance
	if len(args) == 2 {
		if tolerance, err = parseFloat("tolerance", args[1]); err != nil {
			return err
		}
	}

	matches := similarity.SimilarTo(c, a.countries, tolerance)
	fmt.Fprintf(out, "%s is %s; %d similar within %.0f%%\n",
		c.Name, projection.FormatArea(c.AreaKm2), len(matches), tolerance*100)
	for _, m := range matches {
		fmt.Fprintf(out, "  %-12s %-30s %s\n", m.ID, m.Name, projection.FormatArea(m.AreaKm2))
	}
	return nil
}

func (a *app) relocate(args []string, out io.Writer) error {
	if len(args) != 3 {
		return fmt.Errorf("relocate needs <id> <lng> <lat>: %w", errUsage)
	}
	c, err := a.country(args[0])
	if err != nil {
		return err
	}
	lng, err := parseFloat("longitude", args[1])
	if err != nil {
		return err
	}
	lat, err := parseFloat("latitude", args[2])
	if err != nil {
		return err
	}

	to := orb.Point{lng, lat}
	moved := transform.Relocate(a.outlines.Simplified(c, a.simplifyTolerance), c.Centroid, to)
	p := projection.Place(c, to)

	f := geojson.NewFeature(moved)
	f.Properties["id"] = c.ID
	f.Properties["name"] = c.Name
	f.Properties["areaKm2"] = c.AreaKm2
	f.Properties["scaleFactor"] = p.ScaleFactor
	f.Properties["apparentAreaKm2"] = p.ApparentAreaKm2
	f.Properties["comparison"] = projection.AreaComparisonText(p.CurrentDistortion)

	enc := json.NewEncoder(out)
	return enc.Encode(f)
}

func (a *app) preset(args []string, out io.Writer) error {
	if len(args) == 0 {
		for _, p := range presets.All() {
			fmt.Fprintf(out, "%s %-20s %s\n", p.Emoji, p.ID, p.Description)
		}
		return nil
	}

	p, ok := presets.ByID(args[0])
	if !ok {
		return fmt.Errorf("preset %q not found", args[0])
	}
	c, ok := presets.Resolve(p, a.countries)
	if !ok {
		return fmt.Errorf("no country for preset %q is loaded", p.ID)
	}

	fmt.Fprintf(out, "%s %s: %s\n\n", p.Emoji, p.Name, p.Description)
	a.printPlaced(out, projection.Place(c, p.Target(c)))
	fmt.Fprintln(out)
	for _, fact := range p.Facts {
		fmt.Fprintf(out, "  * %s\n", fact)
	}
	return nil
}

func (a *app) share(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("share needs one encoded placement list: %w", errUsage)
	}
	entries, err := placement.Decode(args[0])
	if err != nil {
		return err
	}

	placed := make([]core.PlacedCountry, 0, len(entries))
	for _, e := range entries {
		c, ok := similarity.ByID(e.ID, a.countries)
		if !ok {
			a.logger.Warn("Dropping unknown country from share link", "id", e.ID)
			continue
		}
		placed = append(placed, projection.Place(c, e.Position))
	}

	for _, p := range placed {
		fmt.Fprintf(out, "%-12s size change %.2fx, %s\n", p.Original.ID, p.ScaleFactor, projection.AreaComparisonText(p.CurrentDistortion))
	}
	fmt.Fprintf(out, "placed: %d, at true size: %d, distortion removed: %s\n",
		len(placed), projection.TrueSizeCount(placed), projection.FormatArea(projection.RevealedAreaKm2(placed)))

	link, err := placement.Encode(placement.FromPlaced(placed))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "link: %s\n", link)
	return nil
}
