package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawPercBar(t *testing.T) {
	cases := []struct {
		frac float64
		want string
	}{
		{0, "[--------------------]   0.0%"},
		{0.5, "[##########----------]  50.0%"},
		{1, "[####################] 100.0%"},
		{0.524, "[##########----------]  52.4%"},
		{0.575, "[###########---------]  57.5%"},
		{0.024, "[--------------------]   2.4%"},
		{0.049, "[#-------------------]   4.9%"},
		{0.05, "[#-------------------]   5.0%"},
		{-0.3, "[--------------------]   0.0%"},
		{7, "[####################] 100.0%"},
		{math.NaN(), "[--------------------]   0.0%"},
		{math.Inf(1), "[####################] 100.0%"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DrawPercBar(tc.frac), "frac=%v", tc.frac)
	}
}

func TestDrawPercBar_ConstantWidthAndFill(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		f := float64(i) / 1000
		bar := DrawPercBar(f)
		assert.Len(t, bar, BarWidth, "frac=%v", f)

		hashes := strings.Count(bar, "#")
		want := int(math.Floor(math.Round(f*100) / 5))
		assert.Equal(t, want, hashes, "frac=%v", f)
		assert.LessOrEqual(t, hashes, BarSegments)
		assert.Equal(t, BarSegments, hashes+strings.Count(bar, "-"))
	}
}
