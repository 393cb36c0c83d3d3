package analysis

import "metalwatch/internal/models"

// Defaults for an empty chart so the axis still renders.
const (
	defaultRangeMin = 0
	defaultRangeMax = 100
)

// paddingRatio gives the chart visible headroom above and below the series.
const paddingRatio = 0.15

// Range computes a padded [min,max] axis scale from a price series.
// Non-finite values are ignored; an empty or all-invalid series yields the
// fixed {0,100} default. The lower bound is floored at zero because prices
// are never negative in this domain. A flat series still gets at least one
// unit of padding.
func Range(values []float64) models.ChartRange {
	finite := filterFinite(values)
	if len(finite) == 0 {
		return models.ChartRange{Min: defaultRangeMin, Max: defaultRangeMax}
	}

	min, max := finite[0], finite[0]
	for _, v := range finite[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	padding := (max - min) * paddingRatio
	if padding < 1 {
		padding = 1
	}

	min -= padding
	if min < 0 {
		min = 0
	}

	return models.ChartRange{Min: min, Max: max + padding}
}

func filterFinite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if isFinite(v) {
			out = append(out, v)
		}
	}
	return out
}
