package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/ja7ad/procmon/pkg/system/util"
)

const (
	// BarSegments is the number of cells between the brackets of a bar.
	BarSegments = 20
	// BarWidth is the length of every string DrawPercBar returns.
	BarWidth = len("[") + BarSegments + len("] ") + len("100.0%")
)

// DrawPercBar renders a fraction as a fixed-width bar, e.g.
//
//	[##########----------]  50.0%
//
// The fraction is scaled to percent and clamped to [0,100]; NaN renders as 0.
// Each '#' stands for 5 percent of the rounded value.
func DrawPercBar(frac float64) string {
	pct := util.Clamp(frac*100, 0, 100)
	filled := int(math.Floor(math.Round(pct) / 5))

	var b strings.Builder
	b.Grow(BarWidth)
	b.WriteByte('[')
	b.WriteString(strings.Repeat("#", filled))
	b.WriteString(strings.Repeat("-", BarSegments-filled))
	b.WriteString("] ")
	fmt.Fprintf(&b, "%5.1f%%", pct)
	return b.String()
}
