// Package presets holds the guided comparisons offered by the command line
// tool: a country, a latitude to move it to, and what the move shows.
package presets

import (
	"slices"

	"github.com/paulmach/orb"

	"github.com/truesize/engine/pkg/core"
)

type Preset struct {
	ID             string
	Name           string
	Description    string
	Emoji          string
	Countries      []string // ISO A3 codes, in order of preference
	PreferredID    string   // split part to use when its code resolves, e.g. USA_ALASKA
	TargetLatitude float64
	Facts          []string
}

var presets = []Preset{
	{
		ID:             "greenland-reality",
		Name:           "Greenland Reality Check",
		Description:    "Greenland looks huge, but is it really?",
		Emoji:          "🇬🇱",
		Countries:      []string{"GRL"},
		TargetLatitude: 0,
		Facts: []string{
			"Greenland appears 14× larger than its true size on Mercator maps",
			"At true size, Greenland is smaller than Algeria",
			"Africa is actually 14× larger than Greenland",
		},
	},
	{
		ID:             "alaska-brazil",
		Name:           "Alaska vs Brazil",
		Description:    "They look similar in size, but are they?",
		Emoji:          "🇺🇸",
		Countries:      []string{"USA"},
		PreferredID:    "USA_ALASKA",
		TargetLatitude: -10,
		Facts: []string{
			"Alaska appears as large as Brazil on Mercator maps",
			"Brazil is actually 5× larger than Alaska",
			"Brazil is larger than the contiguous 48 US states",
		},
	},
	{
		ID:             "russia-stretch",
		Name:           "Russia at the Equator",
		Description:    "The largest country... or is it?",
		Emoji:          "🇷🇺",
		Countries:      []string{"RUS"},
		TargetLatitude: 0,
		Facts: []string{
			"Russia spans 11 time zones but appears even larger on Mercator",
			"At the equator, Russia would appear 40% smaller",
			"Russia is still the largest country, but not by as much as maps suggest",
		},
	},
	{
		ID:             "africa-massive",
		Name:           "Africa is Massive",
		Description:    "The second-largest continent is often underestimated",
		Emoji:          "🌍",
		Countries:      []string{"GRL", "USA", "CHN", "IND"},
		TargetLatitude: 5,
		Facts: []string{
			"Africa can fit USA, China, India, and Europe combined",
			"Africa is 3× the size of Europe",
			"Africa contains 54 countries",
		},
	},
	{
		ID:             "scandinavia-truth",
		Name:           "Scandinavian Surprise",
		Description:    "Northern countries appear larger than they are",
		Emoji:          "🇳🇴",
		Countries:      []string{"NOR", "SWE", "FIN"},
		TargetLatitude: 0,
		Facts: []string{
			"Scandinavia appears twice as large as it is on Mercator",
			"Combined, all Nordic countries are smaller than India",
			"Norway has more coastline than the entire African continent",
		},
	},
	{
		ID:             "australia-fit",
		Name:           "Things That Fit in Australia",
		Description:    "Australia is bigger than you think",
		Emoji:          "🇦🇺",
		Countries:      []string{"FRA", "DEU", "ESP"},
		TargetLatitude: -25,
		Facts: []string{
			"Australia is the 6th largest country in the world",
			"Western Europe fits inside Australia",
			"Australia is wider than the Moon",
		},
	},
	{
		ID:             "canada-stretch",
		Name:           "Canada Reality",
		Description:    "The second-largest country... adjusted",
		Emoji:          "🇨🇦",
		Countries:      []string{"CAN"},
		TargetLatitude: 0,
		Facts: []string{
			"Canada spans 6 time zones",
			"At the equator, Canada appears about 40% smaller",
			"Canada has more lakes than the rest of the world combined",
		},
	},
	{
		ID:             "antarctica-extreme",
		Name:           "Antarctica Distortion",
		Description:    "Extreme polar distortion example",
		Emoji:          "🐧",
		Countries:      []string{"ATA"},
		TargetLatitude: -30,
		Facts: []string{
			"Antarctica appears enormous on Mercator but is 5th largest continent",
			"Antarctica is smaller than Russia",
			"Antarctica contains 90% of Earth's ice",
		},
	},
}

func (p Preset) clone() Preset {
	p.Countries = slices.Clone(p.Countries)
	p.Facts = slices.Clone(p.Facts)
	return p
}

// All returns copies of every preset in display order.
func All() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = p.clone()
	}
	return out
}

func ByID(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return Preset{}, false
}

// ForCountry returns the presets that feature the ISO code.
func ForCountry(code string) []Preset {
	var out []Preset
	for _, p := range presets {
		if slices.Contains(p.Countries, code) {
			out = append(out, p.clone())
		}
	}
	return out
}

// Resolve picks the country a preset moves: the first listed code present
// in countries, narrowed to PreferredID when that split part is loaded.
func Resolve(p Preset, countries []core.Country) (core.Country, bool) {
	for _, code := range p.Countries {
		var first *core.Country
		for i := range countries {
			c := &countries[i]
			if c.ISOCode != code {
				continue
			}
			if p.PreferredID != "" && c.ID == p.PreferredID {
				return *c, true
			}
			if first == nil {
				first = c
			}
		}
		if first != nil {
			return *first, true
		}
	}
	return core.Country{}, false
}

// Target is where the preset moves c: same longitude, preset latitude.
func (p Preset) Target(c core.Country) orb.Point {
	return orb.Point{c.Centroid.Lon(), p.TargetLatitude}
}
