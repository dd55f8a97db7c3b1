package report

import (
	"fmt"
	"strings"
)

// Terminal chart primitives used by the CLI report view.

var sparklineRamp = []rune("▁▂▃▄▅▆▇█")

// HorizontalBar renders a labelled bar scaled against max. A
// non-positive max yields an empty bar rather than dividing by zero.
func HorizontalBar(label string, value, max float64, width int) string {
	filled := 0
	if max > 0 {
		filled = int(value / max * float64(width))
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%-12s %s %.0f", label, bar, value)
}

// Sparkline renders values as a row of block characters scaled between
// the minimum and maximum of the series. An empty series renders as a
// flat line placeholder.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return "─"
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	var b strings.Builder
	for _, v := range values {
		idx := len(sparklineRamp) / 2
		if max > min {
			idx = int((v - min) / (max - min) * float64(len(sparklineRamp)-1))
		}
		b.WriteRune(sparklineRamp[idx])
	}
	return b.String()
}

// TrendArrow compares a value with the previous period. Changes within
// 5% either way read as stable; a zero baseline also reads as stable.
func TrendArrow(current, previous float64) string {
	if previous == 0 {
		return "→"
	}
	change := (current - previous) / previous
	switch {
	case change > 0.05:
		return "↑"
	case change < -0.05:
		return "↓"
	default:
		return "→"
	}
}
