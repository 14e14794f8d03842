package report

import (
	"math"
	"strings"
)

// barChars are the eighth-block characters for fractional bar ends.
var barChars = []rune{'▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

// renderBar draws value/full as a horizontal bar of at most width cells.
// Non-positive or non-finite values draw nothing.
func renderBar(value, full float64, width int) string {
	if width <= 0 || full <= 0 || value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}
	if value > full {
		value = full
	}

	eighths := int(math.Round(value / full * float64(width*8)))
	if eighths == 0 {
		eighths = 1 // visible sliver for tiny positive values
	}

	var sb strings.Builder
	sb.Grow(width * 3)
	sb.WriteString(strings.Repeat(string(barChars[7]), eighths/8))
	if rem := eighths % 8; rem > 0 {
		sb.WriteRune(barChars[rem-1])
	}
	return sb.String()
}

// maxFinite returns the largest finite value, or 0.
func maxFinite(values ...float64) float64 {
	m := 0.0
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) && v > m {
			m = v
		}
	}
	return m
}

// logScale maps an abundance onto log10(1+v) so that singletons stay visible.
func logScale(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log10(1 + v)
}

// padRight pads s with spaces to n runes.
func padRight(s string, n int) string {
	if l := len([]rune(s)); l < n {
		return s + strings.Repeat(" ", n-l)
	}
	return s
}

func longest(labels []string) int {
	n := 0
	for _, l := range labels {
		if ln := len([]rune(l)); ln > n {
			n = ln
		}
	}
	return n
}
