package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"metalwatch/internal/models"
)

// Property: for every finite (today, yesterday) pair the direction matches
// the sign of today - yesterday exactly, including equality → neutral.
func TestProperty_DirectionMatchesSign(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("direction follows the raw difference", prop.ForAll(
		func(today, yesterday float64) bool {
			got := Compare(quoteAt(today), quoteAt(yesterday), silver, perG)
			if got == nil {
				return false
			}
			switch {
			case today > yesterday:
				return got.Direction == models.DirectionUp
			case today < yesterday:
				return got.Direction == models.DirectionDown
			default:
				return got.Direction == models.DirectionNeutral
			}
		},
		gen.Float64Range(0, 1e6),
		gen.Float64Range(0.01, 1e6),
	))

	properties.TestingRun(t)
}

// Property: the padded chart range never dips below zero and always
// contains every finite input value.
func TestProperty_RangeFloorAndContainment(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("range min is never negative", prop.ForAll(
		func(values []float64) bool {
			return Range(values).Min >= 0
		},
		gen.SliceOf(gen.Float64Range(0, 1e6)),
	))

	properties.Property("range contains every value", prop.ForAll(
		func(values []float64) bool {
			r := Range(values)
			for _, v := range values {
				if v < r.Min || v > r.Max {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(0, 1e6)),
	))

	properties.TestingRun(t)
}

// Property: stats are invariant to element order and the average sits
// between min and max.
func TestProperty_StatsOrderInvariant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("reversal does not change stats", prop.ForAll(
		func(values []float64) bool {
			reversed := make([]float64, len(values))
			for i, v := range values {
				reversed[len(values)-1-i] = v
			}
			a := ComputeStats(values)
			b := ComputeStats(reversed)
			return a.Min == b.Min && a.Max == b.Max && math.Abs(a.Avg-b.Avg) < 1e-6
		},
		gen.SliceOf(gen.Float64Range(0, 1e6)),
	))

	properties.Property("average is bounded by min and max", prop.ForAll(
		func(values []float64) bool {
			s := ComputeStats(values)
			return s.Min <= s.Avg+1e-9 && s.Avg <= s.Max+1e-9
		},
		gen.SliceOf(gen.Float64Range(0, 1e6)),
	))

	properties.TestingRun(t)
}
