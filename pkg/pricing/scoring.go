// Package pricing implements the pure per-unit pricing pipeline: priority
// ranking, similarity scoring against sold comparables, distribution preset
// curves, conditional value and cost transforms, onboarding base price, and
// the final bounded price. Everything here is side-effect free; degenerate
// inputs degrade to sentinel outputs instead of errors.
package pricing

import (
	"math"
	"sort"
	"strconv"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

// Variant selects one of the scoring formula generations. Both are kept
// alive on purpose; which one is canonical is a product decision, so the
// caller always picks explicitly.
type Variant string

// Scoring variants.
const (
	// VariantWeightedDistance scores each sold comparable as a whole:
	// one weighted rank distance per sold unit, Gaussian similarity with a
	// closeness bonus. Cold start is the raw inverted-rank weighted sum.
	VariantWeightedDistance Variant = "weighted-distance"

	// VariantFactorSimilarity accumulates similarity per field across all
	// sold units and max-normalizes before weighting. Cold start uses
	// maxRank-normalized inverted ranks.
	VariantFactorSimilarity Variant = "factor-similarity"
)

const zeroScore = "0.0000"

type scoringField struct {
	field  string
	weight float64
	index  *RankIndex
}

// Score computes the similarity score of target against the population
// using the weighted-distance variant.
func Score(
	target *domain.Premises,
	population []domain.Premises,
	dynamicConfig domain.DynamicParametersConfig,
	staticConfig domain.StaticParametersConfig,
	ranging domain.ColumnPriorities,
) string {
	return ScoreWith(
		VariantWeightedDistance,
		target, population, dynamicConfig, staticConfig, ranging,
	)
}

// ScoreWith computes the similarity score of target against the population
// under the given variant. The result is a fixed-point decimal string;
// degenerate inputs (empty population, nothing selected) yield "0.0000".
func ScoreWith(
	variant Variant,
	target *domain.Premises,
	population []domain.Premises,
	dynamicConfig domain.DynamicParametersConfig,
	staticConfig domain.StaticParametersConfig,
	ranging domain.ColumnPriorities,
) string {
	if len(population) == 0 {
		return zeroScore
	}

	fields := selectFields(dynamicConfig, ranging)
	if len(fields) == 0 {
		return zeroScore
	}

	maxRanks := make([]float64, len(fields))
	for i := range fields {
		maxRanks[i] = float64(fields[i].index.Max())
		if maxRanks[i] == 0 {
			maxRanks[i] = 1
		}
	}

	targetRanks := rankVector(target, fields)

	var soldRanks [][]float64
	for i := range population {
		if population[i].Sold() {
			soldRanks = append(soldRanks, rankVector(&population[i], fields))
		}
	}

	if len(soldRanks) == 0 {
		return coldStartScore(variant, fields, targetRanks, maxRanks)
	}

	if variant == VariantFactorSimilarity {
		return factorSimilarityScore(
			fields, targetRanks, soldRanks, maxRanks, staticConfig,
		)
	}
	return weightedDistanceScore(
		fields, targetRanks, soldRanks, maxRanks, staticConfig,
	)
}

// selectFields resolves the scoring fields in deterministic (sorted) order
// with their raw weights and pre-indexed priority tables.
func selectFields(
	dynamicConfig domain.DynamicParametersConfig,
	ranging domain.ColumnPriorities,
) []scoringField {
	names := make([]string, 0, len(dynamicConfig.ImportantFields))
	for name, selected := range dynamicConfig.ImportantFields {
		if selected {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	fields := make([]scoringField, 0, len(names))
	for _, name := range names {
		fields = append(fields, scoringField{
			field:  name,
			weight: dynamicConfig.Weights[name],
			index:  NewRankIndex(ranging[name]),
		})
	}
	return fields
}

func rankVector(p *domain.Premises, fields []scoringField) []float64 {
	ranks := make([]float64, len(fields))
	for i := range fields {
		ranks[i] = float64(fields[i].index.Rank(p, fields[i].field))
	}
	return ranks
}

// coldStartScore handles the no-sold-comparables branch. With no sales
// history the engine favors units whose attribute ranks sit closest to
// rank 1 under the existing weight distribution.
func coldStartScore(
	variant Variant,
	fields []scoringField,
	targetRanks, maxRanks []float64,
) string {
	var raw float64
	for i := range fields {
		inverse := maxRanks[i] - targetRanks[i] + 1
		if variant == VariantFactorSimilarity {
			inverse /= maxRanks[i]
		}
		raw += inverse * fields[i].weight
	}
	return formatScore(raw, 4)
}

// weightedDistanceScore scores the target against each sold unit as a
// whole: the per-field normalized rank distances collapse into one weighted
// distance, similarity is Gaussian in that distance, and close comparables
// earn a bonus on top of their similarity weight.
func weightedDistanceScore(
	fields []scoringField,
	targetRanks []float64,
	soldRanks [][]float64,
	maxRanks []float64,
	staticConfig domain.StaticParametersConfig,
) string {
	weights := normalizedWeights(fields)

	sigma := staticConfig.Sigma
	if sigma == 0 {
		sigma = 1e-10
	}

	var totalSimilarity, totalScore float64
	for _, sold := range soldRanks {
		var distance float64
		for i := range fields {
			distance += weights[i] * math.Abs(targetRanks[i]-sold[i]) / maxRanks[i]
		}

		similarity := math.Exp(-distance * distance / (2 * sigma * sigma))
		if similarity <= staticConfig.SimilarityThreshold {
			continue
		}

		bonus := staticConfig.MaxBonus * (1 - distance) * staticConfig.BonusFactor
		totalSimilarity += similarity
		totalScore += similarity * (1 + bonus)
	}

	if totalSimilarity == 0 {
		return zeroScore
	}
	return formatScore(totalScore/totalSimilarity, 4)
}

// factorSimilarityScore accumulates Gaussian similarity per field across
// all sold units, max-normalizes the per-field sums, then applies the
// normalized weights.
func factorSimilarityScore(
	fields []scoringField,
	targetRanks []float64,
	soldRanks [][]float64,
	maxRanks []float64,
	staticConfig domain.StaticParametersConfig,
) string {
	sigma := staticConfig.Sigma
	if sigma == 0 {
		sigma = 1e-10
	}

	factorSims := make([]float64, len(fields))
	for _, sold := range soldRanks {
		for i := range fields {
			diff := math.Abs(targetRanks[i]-sold[i]) / maxRanks[i]
			similarity := math.Exp(-diff * diff / (2 * sigma * sigma))
			if similarity > staticConfig.SimilarityThreshold {
				factorSims[i] += similarity
			}
		}
	}

	var maxSim float64
	for _, s := range factorSims {
		maxSim = math.Max(maxSim, s)
	}

	weights := normalizedWeights(fields)

	var final float64
	for i, s := range factorSims {
		if s > 0 && maxSim > 0 {
			final += s / maxSim * weights[i]
		}
	}
	return formatScore(final, 6)
}

func normalizedWeights(fields []scoringField) []float64 {
	var total float64
	for i := range fields {
		total += fields[i].weight
	}

	weights := make([]float64, len(fields))
	for i := range fields {
		if total > 0 {
			weights[i] = fields[i].weight / total
		}
	}
	return weights
}

func formatScore(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
