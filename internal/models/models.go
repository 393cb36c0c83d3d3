// Package models defines the core data types shared across the application.
package models

import "strings"

// Unit identifies the weight unit a price is quoted in.
type Unit string

const (
	// Unit1g is the per-gram price.
	Unit1g Unit = "1g"
	// Unit8g is the per-sovereign (8 gram) price, gold only.
	Unit8g Unit = "8g"
	// Unit1kg is the per-kilogram price, non-gold metals.
	Unit1kg Unit = "1kg"
)

// Carat identifies a gold purity grade.
type Carat int

const (
	Carat18 Carat = 18
	Carat22 Carat = 22
	Carat24 Carat = 24
)

// UnitSelection is the user's active unit, and purity grade for gold.
// Carat is zero for non-gold metals.
type UnitSelection struct {
	Unit  Unit
	Carat Carat
}

// Metal identifies a tracked metal.
type Metal struct {
	Symbol string
	Name   string
}

// Quote is one metal's price snapshot for a date. Optional fields are
// pointers so that an absent field is distinguishable from a zero price.
type Quote struct {
	Date        string             `json:"date"`
	Price1g     float64            `json:"price_1g"`
	Price8g     *float64           `json:"price_8g,omitempty"`
	PricePerKg  *float64           `json:"price_per_kg,omitempty"`
	CaratPrices map[string]float64 `json:"carat_prices,omitempty"`
}

// ComparisonQuotes pairs today's and yesterday's quote for one metal.
type ComparisonQuotes struct {
	Today     Quote `json:"today_prices"`
	Yesterday Quote `json:"yesterday_prices"`
}

// PriceHistory is an ordered (date ascending) run of quotes for one month.
type PriceHistory struct {
	Quotes          []Quote  `json:"history"`
	AvailableMonths []string `json:"availableMonths"`
	SelectedMonth   string   `json:"selectedMonth"`
}

// TrackedMetals is the default set of metals the application follows.
var TrackedMetals = []Metal{
	{Symbol: "XAU", Name: "Gold"},
	{Symbol: "XAG", Name: "Silver"},
	{Symbol: "XPT", Name: "Platinum"},
}

// MetalBySymbol finds a tracked metal by symbol or name, case-insensitively.
func MetalBySymbol(s string) (Metal, bool) {
	for _, m := range TrackedMetals {
		if strings.EqualFold(m.Symbol, s) || strings.EqualFold(m.Name, s) {
			return m, true
		}
	}
	return Metal{}, false
}

// Direction classifies a day-over-day price change.
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

// ComparisonResult is the day-over-day delta for one metal under one unit.
// Percentage is nil when yesterday's price was zero; the difference and
// direction are still meaningful in that case.
type ComparisonResult struct {
	Difference float64   `json:"difference"`
	Percentage *float64  `json:"percentage_change"`
	Direction  Direction `json:"direction"`
}

// ChartRange is a padded axis scale for a history chart.
type ChartRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Stats summarises a price series.
type Stats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}
