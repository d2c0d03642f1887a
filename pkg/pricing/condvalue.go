package pricing

import (
	"math"
	"sort"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

// epsilon replaces zero divisors and invalid inputs throughout the
// conditional-value math, per the missing-data defaulting rules.
const epsilon = 1e-10

// FitCondValues maps a normalized contribution metric onto multiplicative
// price adjustments bounded asymmetrically by the below-median and
// above-median liquidity tolerances. Values at or below the median come out
// ≤ 1, values above it ≥ 1.
//
// The input is expected to be rank-ordered ascending, so the first element
// is the farthest below the median and the last the farthest above.
func FitCondValues(
	spMixedRtNorm []float64,
	minLiqRefusalPrice, maxLiqRefusalPrice, currentPricePerSqm float64,
) []float64 {
	if len(spMixedRtNorm) == 0 ||
		math.IsNaN(minLiqRefusalPrice) ||
		math.IsNaN(maxLiqRefusalPrice) ||
		math.IsNaN(currentPricePerSqm) {
		return []float64{epsilon}
	}

	if currentPricePerSqm == 0 {
		currentPricePerSqm = epsilon
	}

	bRateNet := 1 - minLiqRefusalPrice/currentPricePerSqm
	tRateNet := maxLiqRefusalPrice/currentPricePerSqm - 1

	median := medianOf(spMixedRtNorm)

	scope := make([]float64, len(spMixedRtNorm))
	for i, v := range spMixedRtNorm {
		if v <= median {
			scope[i] = median - v
		} else {
			scope[i] = v - median
		}
	}

	scopeB := scope[0]
	scopeT := scope[len(scope)-1]
	if scopeB == 0 {
		scopeB = epsilon
	}
	if scopeT == 0 {
		scopeT = epsilon
	}

	bFitTransform := bRateNet / scopeB
	tFitTransform := tRateNet / scopeT

	out := make([]float64, len(spMixedRtNorm))
	for i, v := range spMixedRtNorm {
		if v <= median {
			out[i] = 1 - scope[i]/bFitTransform
		} else {
			out[i] = 1 + scope[i]/tFitTransform
		}
	}
	return out
}

// FitCondValuesSpread is the legacy uniform-divisor variant: every value
// maps to 1 + v/spreadRate with no liquidity bounds. Kept as a selectable
// alternate, not a replacement for FitCondValues.
func FitCondValuesSpread(spMixedRtNorm []float64, spreadRate float64) []float64 {
	if len(spMixedRtNorm) == 0 || spreadRate == 0 {
		return []float64{epsilon}
	}

	out := make([]float64, len(spMixedRtNorm))
	for i, v := range spMixedRtNorm {
		out[i] = 1 + v/spreadRate
	}
	return out
}

// CondValueVariant names a conditional-value formula generation.
type CondValueVariant string

// Conditional value variants.
const (
	CondValueBounded CondValueVariant = "bounded"
	CondValueSpread  CondValueVariant = "spread"
)

// ConditionalCost is one unit's row in the conditional-cost breakdown.
type ConditionalCost struct {
	UnitNumber   int     `json:"unitNumber"`
	FitCondValue float64 `json:"fit_cond_value"`
	CondCost     float64 `json:"cond_cost"`
}

// ConditionalCostBreakdown aggregates per-unit conditional costs with each
// unit's share of the total.
type ConditionalCostBreakdown struct {
	PerUnit       []ConditionalCost `json:"conditionalCosts"`
	TotalCondCost float64           `json:"totalCondCost"`
	Shares        []float64         `json:"premCondCostShr"`
}

// ConditionalCosts computes cond_cost = fitCondValue · estimated area per
// unit, using the legacy spread formula for the per-unit fit value, plus
// each unit's share of the total. A zero total yields zero shares.
func ConditionalCosts(
	units []domain.Premises,
	spMixedRtNorm []float64,
	fitSpreadRate float64,
) ConditionalCostBreakdown {
	if fitSpreadRate == 0 {
		fitSpreadRate = epsilon
	}

	breakdown := ConditionalCostBreakdown{
		PerUnit: make([]ConditionalCost, 0, len(units)),
	}

	for i := range units {
		var norm float64
		if i < len(spMixedRtNorm) {
			norm = spMixedRtNorm[i]
		}

		fitCondValue := 1 + norm/fitSpreadRate
		condCost := fitCondValue * units[i].EstimatedAreaM2

		breakdown.PerUnit = append(breakdown.PerUnit, ConditionalCost{
			UnitNumber:   units[i].Number,
			FitCondValue: fitCondValue,
			CondCost:     condCost,
		})
		breakdown.TotalCondCost += condCost
	}

	breakdown.Shares = make([]float64, len(breakdown.PerUnit))
	for i := range breakdown.PerUnit {
		if breakdown.TotalCondCost != 0 {
			breakdown.Shares[i] = breakdown.PerUnit[i].CondCost / breakdown.TotalCondCost
		}
	}

	return breakdown
}

// medianOf returns the median of a copy of v; even lengths average the two
// middle elements.
func medianOf(v []float64) float64 {
	sorted := make([]float64, len(v))
	copy(sorted, v)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
