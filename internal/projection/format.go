package projection

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatArea renders km² the way the map labels do: "17.10M km²",
// "156,000 km²", "500 km²".
func FormatArea(km2 float64) string {
	if km2 >= 1_000_000 {
		return fmt.Sprintf("%.2fM km²", km2/1_000_000)
	}
	return humanize.Comma(int64(math.Round(km2))) + " km²"
}
