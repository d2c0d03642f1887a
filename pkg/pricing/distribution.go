package pricing

import (
	"math"
	"sort"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

// Distribution preset defaults.
const (
	defaultGaussianMean   = 0.5
	defaultGaussianStdDev = 1.0 / 6
	defaultBimodalMean1   = 1.0 / 3
	defaultBimodalMean2   = 2.0 / 3
	defaultBimodalStdDev  = 0.1
)

// UniformPreset returns the linear ramp curve: value(i) = (i+1)/length.
func UniformPreset(length int) []float64 {
	curve := make([]float64, max(length, 0))
	for i := range curve {
		curve[i] = float64(i+1) / float64(length)
	}
	return curve
}

// GaussianPreset returns a single Gaussian bump evaluated at x=(i+1)/length.
func GaussianPreset(length int, params domain.DistributionParams) []float64 {
	mean := params.Mean
	if mean == 0 {
		mean = defaultGaussianMean
	}
	stdDev := params.StdDev
	if stdDev == 0 {
		stdDev = defaultGaussianStdDev
	}

	curve := make([]float64, max(length, 0))
	for i := range curve {
		x := float64(i+1) / float64(length)
		z := (x - mean) / stdDev
		curve[i] = math.Exp(-0.5 * z * z)
	}
	return curve
}

// BimodalPreset returns the sum of two Gaussian bumps centered at mean1 and
// mean2, evaluated at x=(i+1)/length.
func BimodalPreset(length int, params domain.DistributionParams) []float64 {
	mean1 := params.Mean1
	if mean1 == 0 {
		mean1 = defaultBimodalMean1
	}
	mean2 := params.Mean2
	if mean2 == 0 {
		mean2 = defaultBimodalMean2
	}
	stdDev := params.StdDev
	if stdDev == 0 {
		stdDev = defaultBimodalStdDev
	}

	curve := make([]float64, max(length, 0))
	for i := range curve {
		x := float64(i+1) / float64(length)
		z1 := (x - mean1) / stdDev
		z2 := (x - mean2) / stdDev
		curve[i] = math.Exp(-0.5*z1*z1) + math.Exp(-0.5*z2*z2)
	}
	return curve
}

// PresetCurve evaluates the configured distribution function over a
// population of the given size. A nil config or an unknown function type
// falls back to the uniform ramp.
func PresetCurve(cfg *domain.DistributionConfig, length int) []float64 {
	if cfg == nil {
		return UniformPreset(length)
	}

	switch cfg.FunctionType {
	case domain.DistGaussian:
		return GaussianPreset(length, cfg.Params)
	case domain.DistBimodal:
		return BimodalPreset(length, cfg.Params)
	case domain.DistUniform:
		return UniformPreset(length)
	default:
		return UniformPreset(length)
	}
}

// AssignPresetValues maps a preset curve onto units by scoring rank: the
// unit with the k-th lowest score receives curve[k]. The result is returned
// in the caller's original unit order. Curves shorter than the population
// pad with their last value; an empty curve yields zeros.
func AssignPresetValues(scores, curve []float64) []float64 {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] < scores[order[b]]
	})

	out := make([]float64, len(scores))
	for rank, idx := range order {
		out[idx] = curveAt(curve, rank)
	}
	return out
}

func curveAt(curve []float64, i int) float64 {
	if len(curve) == 0 {
		return 0
	}
	if i >= len(curve) {
		return curve[len(curve)-1]
	}
	return curve[i]
}
