// Package analysis computes derived figures over quote data: day-over-day
// comparisons, chart axis ranges and summary statistics.
package analysis

import (
	"math"

	"metalwatch/internal/models"
	"metalwatch/internal/units"
)

// Compare computes the day-over-day delta for one metal under one unit
// selection. It returns nil when either side's active price is non-finite;
// that is an expected "no data" state, not an error. When yesterday's price
// is exactly zero the percentage is nil but the difference and direction
// are still reported.
func Compare(today, yesterday models.Quote, m models.Metal, sel models.UnitSelection) *models.ComparisonResult {
	tp := units.ActivePrice(today, m, sel)
	yp := units.ActivePrice(yesterday, m, sel)
	if !isFinite(tp) || !isFinite(yp) {
		return nil
	}

	diff := tp - yp

	var pct *float64
	if yp != 0 {
		v := diff / yp * 100
		pct = &v
	}

	return &models.ComparisonResult{
		Difference: diff,
		Percentage: pct,
		Direction:  directionOf(diff),
	}
}

// directionOf classifies a raw difference. Direction always comes from the
// difference itself, never from the percentage.
func directionOf(diff float64) models.Direction {
	switch {
	case diff > 0:
		return models.DirectionUp
	case diff < 0:
		return models.DirectionDown
	default:
		return models.DirectionNeutral
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ActivePrices extracts the active-price series from a history run. Entries
// with missing fields come through as NaN and are filtered by the consumers.
func ActivePrices(quotes []models.Quote, m models.Metal, sel models.UnitSelection) []float64 {
	prices := make([]float64, 0, len(quotes))
	for _, q := range quotes {
		prices = append(prices, units.ActivePrice(q, m, sel))
	}
	return prices
}
