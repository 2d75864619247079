package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatArea(t *testing.T) {
	tests := []struct {
		km2  float64
		want string
	}{
		{2166086, "2.17M km²"},
		{17098242, "17.10M km²"},
		{1000000, "1.00M km²"},
		{999999, "999,999 km²"},
		{156000, "156,000 km²"},
		{2586.4, "2,586 km²"},
		{500, "500 km²"},
		{0, "0 km²"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatArea(tt.km2))
	}
}
