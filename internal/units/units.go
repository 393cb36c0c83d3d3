// Package units maps metals and unit selections onto quote price fields.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"metalwatch/internal/models"
)

// Purity multipliers per carat. These are informational: upstream quote data
// already carries per-carat prices, the engine never multiplies spot by purity.
const (
	Purity18 = 0.75
	Purity22 = 0.916
	Purity24 = 1.0
)

// DefaultCarat is the primary purity grade shown for gold.
const DefaultCarat = models.Carat22

// Canonical price-field keys, matching the quote source's JSON shape.
const (
	FieldPrice1g    = "price_1g"
	FieldPrice8g    = "price_8g"
	FieldPricePerKg = "price_per_kg"
)

// IsGold reports whether the metal carries a gold marker in its symbol or name.
func IsGold(m models.Metal) bool {
	return strings.EqualFold(m.Symbol, "XAU") ||
		strings.Contains(strings.ToLower(m.Name), "gold")
}

// PurityMultiplier returns the informational purity factor for a carat.
func PurityMultiplier(c models.Carat) float64 {
	switch c {
	case models.Carat18:
		return Purity18
	case models.Carat24:
		return Purity24
	default:
		return Purity22
	}
}

// ValidUnits returns the ordered unit set for a metal: gold trades in grams
// and sovereigns, everything else in grams and kilograms.
func ValidUnits(m models.Metal) []models.Unit {
	if IsGold(m) {
		return []models.Unit{models.Unit1g, models.Unit8g}
	}
	return []models.Unit{models.Unit1g, models.Unit1kg}
}

// PriceField maps a unit selection to its canonical quote field key.
func PriceField(sel models.UnitSelection) string {
	switch sel.Unit {
	case models.Unit8g:
		return FieldPrice8g
	case models.Unit1kg:
		return FieldPricePerKg
	default:
		return FieldPrice1g
	}
}

// ActivePrice resolves the quote field selected by the current unit, and for
// gold at per-gram resolution the precomputed carat price. Absent or invalid
// data yields NaN; callers render that as "no data", never as an error.
func ActivePrice(q models.Quote, m models.Metal, sel models.UnitSelection) float64 {
	switch sel.Unit {
	case models.Unit8g:
		if !IsGold(m) || q.Price8g == nil {
			return math.NaN()
		}
		return *q.Price8g
	case models.Unit1kg:
		if q.PricePerKg == nil {
			return math.NaN()
		}
		return *q.PricePerKg
	default:
		if IsGold(m) && sel.Carat != 0 {
			if p, ok := q.CaratPrices[strconv.Itoa(int(sel.Carat))]; ok {
				return p
			}
		}
		return q.Price1g
	}
}

// Label renders a metal's display label, with a carat suffix for gold.
func Label(m models.Metal, sel models.UnitSelection) string {
	name := m.Name
	if name == "" {
		name = m.Symbol
	}
	if IsGold(m) {
		carat := sel.Carat
		if carat == 0 {
			carat = DefaultCarat
		}
		return fmt.Sprintf("%s (%dK)", name, carat)
	}
	return name
}
