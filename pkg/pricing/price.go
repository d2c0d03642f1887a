package pricing

import (
	"math"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

// CalculatePrice computes the per-square-meter price for an object under the
// selected engine mode, clamped to the liquidity-refusal band. The returned
// string is the two-decimal price or "N/A" for degenerate results; the
// CalculationProcess carries the intermediate values for audit display.
//
// Note: conditionalValue = 1 + norm/compensationRate algebraically reduces
// to 1 + onboardingSpread whenever norm is nonzero, so the magnitude of
// normContributeRT does not affect the result. The literal formula is kept
// for compatibility with the persisted pricing contract.
func CalculatePrice(
	obj *domain.RealEstateObject,
	mode domain.EngineMode,
	normContributeRT float64,
) (string, domain.CalculationProcess) {
	basePrice := obj.BasePricePerSqm()

	var static domain.StaticParametersConfig
	if content, ok := obj.ActiveContent(); ok {
		static = content.StaticConfig
	}

	minLiqRate := static.MinLiqRefusalPrice
	maxLiqRate := static.MaxLiqRefusalPrice

	minPrice := basePrice * minLiqRate
	maxPrice := basePrice * maxLiqRate

	divisor := minLiqRate
	if divisor == 0 {
		divisor = epsilon
	}
	onboardingSpread := maxLiqRate/divisor - 1

	spreadDivisor := onboardingSpread
	if spreadDivisor == 0 {
		spreadDivisor = epsilon
	}
	compensationRate := normContributeRT / spreadDivisor

	compDivisor := compensationRate
	if compDivisor == 0 {
		compDivisor = epsilon
	}
	conditionalValue := 1 + normContributeRT/compDivisor

	var price float64
	switch mode {
	case domain.EngineOhElon:
		price = basePrice + conditionalValue*
			(1+static.MaxifyFactor)*
			(1+static.OverestimateCorrectness*2)
	default:
		price = basePrice * conditionalValue * (1 - static.BargainGap/100)
	}

	price = math.Max(price, minPrice)
	if maxPrice > 0 {
		price = math.Min(price, maxPrice)
	}

	process := domain.CalculationProcess{
		OnboardingSpread: onboardingSpread,
		CompensationRate: compensationRate,
		ConditionalValue: conditionalValue,
	}

	return domain.FormatPrice(price), process
}
