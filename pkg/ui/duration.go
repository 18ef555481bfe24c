package ui

import (
	"math"
	"strconv"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerYear   = 365 * secondsPerDay
)

// FormatDuration spells out whole seconds as
// "Y years, D days, H hours, M minutes, S seconds", leaving out every
// component that is zero. Durations under one second (and NaN) yield "".
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 1 {
		return ""
	}
	total := int64(seconds)

	parts := make([]string, 0, 5)
	for _, c := range []struct {
		n    int64
		unit string
	}{
		{total / secondsPerYear, "years"},
		{total % secondsPerYear / secondsPerDay, "days"},
		{total % secondsPerDay / secondsPerHour, "hours"},
		{total % secondsPerHour / secondsPerMinute, "minutes"},
		{total % secondsPerMinute, "seconds"},
	} {
		if c.n != 0 {
			parts = append(parts, strconv.FormatInt(c.n, 10)+" "+c.unit)
		}
	}
	return strings.Join(parts, ", ")
}
