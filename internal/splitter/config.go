package splitter

import (
	"math"

	"github.com/paulmach/orb"
)

// DefaultThresholdKm2 is the area a part needs to become its own country.
const DefaultThresholdKm2 = 500_000

// Mainland label used when the admin code has no entry.
const (
	DefaultMainlandName   = "Mainland"
	DefaultMainlandSuffix = "MAIN"
)

// Label names one part of a split country.
type Label struct {
	Name     string // shown in parentheses after the country name
	IDSuffix string // appended to the id after an underscore
}

// RegionKey identifies a known region by admin code and the part centroid
// rounded to the nearest 10 degrees.
type RegionKey struct {
	AdminCode string
	Lng       int
	Lat       int
}

// KeyFor builds the lookup key for a part centroid.
func KeyFor(adminCode string, centroid orb.Point) RegionKey {
	return RegionKey{
		AdminCode: adminCode,
		Lng:       roundToTen(centroid.Lon()),
		Lat:       roundToTen(centroid.Lat()),
	}
}

func roundToTen(v float64) int {
	return int(math.Round(v/10)) * 10
}

// Config tunes the splitting heuristic. The tables are samples, not an
// authoritative gazetteer; unknown parts get a synthesized name.
type Config struct {
	ThresholdKm2   float64
	MainlandLabels map[string]Label
	Regions        map[RegionKey]Label
}

// DefaultConfig returns fresh copies of the built-in tables.
func DefaultConfig() Config {
	return Config{
		ThresholdKm2: DefaultThresholdKm2,
		MainlandLabels: map[string]Label{
			"USA": {Name: "Contiguous", IDSuffix: "CONT"},
			"FRA": {Name: "Metropolitan", IDSuffix: "METRO"},
			"ESP": {Name: "Peninsular", IDSuffix: "PEN"},
			"PRT": {Name: "Continental", IDSuffix: "CONT"},
			"CHL": {Name: "Continental", IDSuffix: "CONT"},
			"ECU": {Name: "Continental", IDSuffix: "CONT"},
			"NOR": {Name: "Mainland", IDSuffix: "MAIN"},
		},
		Regions: map[RegionKey]Label{
			{AdminCode: "USA", Lng: -150, Lat: 60}: {Name: "Alaska", IDSuffix: "ALASKA"},
			{AdminCode: "USA", Lng: -160, Lat: 20}: {Name: "Hawaii", IDSuffix: "HAWAII"},
			{AdminCode: "CAN", Lng: -70, Lat: 70}:  {Name: "Baffin Island", IDSuffix: "BAFFIN"},
			{AdminCode: "CAN", Lng: -110, Lat: 70}: {Name: "Victoria Island", IDSuffix: "VICTORIA"},
			{AdminCode: "CAN", Lng: -80, Lat: 80}:  {Name: "Ellesmere Island", IDSuffix: "ELLESMERE"},
			{AdminCode: "RUS", Lng: 60, Lat: 70}:   {Name: "Novaya Zemlya", IDSuffix: "NOVAYA_ZEMLYA"},
			{AdminCode: "IDN", Lng: 110, Lat: 0}:   {Name: "Kalimantan", IDSuffix: "KALIMANTAN"},
			{AdminCode: "IDN", Lng: 100, Lat: 0}:   {Name: "Sumatra", IDSuffix: "SUMATRA"},
			{AdminCode: "IDN", Lng: 140, Lat: 0}:   {Name: "Papua", IDSuffix: "PAPUA"},
			{AdminCode: "AUS", Lng: 150, Lat: -40}: {Name: "Tasmania", IDSuffix: "TASMANIA"},
			{AdminCode: "NOR", Lng: 20, Lat: 80}:   {Name: "Svalbard", IDSuffix: "SVALBARD"},
		},
	}
}
