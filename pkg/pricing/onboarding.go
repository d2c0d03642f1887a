package pricing

import (
	"math"
	"sort"
	"strconv"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

// SoldoutRatio returns the fraction of inventory already sold, by unit count
// or by estimated area depending on the configured method. An empty
// population yields 0. Rounded to 2 decimals.
func SoldoutRatio(units []domain.Premises, method domain.OversoldMethod) float64 {
	if len(units) == 0 {
		return 0
	}

	var sold, total float64
	if method == domain.OversoldArea {
		for i := range units {
			total += units[i].EstimatedAreaM2
			if units[i].Sold() {
				sold += units[i].EstimatedAreaM2
			}
		}
	} else {
		total = float64(len(units))
		for i := range units {
			if units[i].Sold() {
				sold++
			}
		}
	}

	if total == 0 {
		return 0
	}
	return roundTo(sold/total, 2)
}

// OnboardingPrice interpolates a base price per square meter from the
// object's income plans using the soldout ratio as the position along the
// plan timeline. With no plans it falls back to the object's current price
// string (parsed, default 0). Rounded to 3 decimals.
func OnboardingPrice(obj *domain.RealEstateObject) float64 {
	if len(obj.IncomePlans) == 0 {
		parsed, err := strconv.ParseFloat(obj.CurrentPricePerSqm, 64)
		if err != nil {
			return 0
		}
		return parsed
	}

	plans := make([]domain.IncomePlan, len(obj.IncomePlans))
	copy(plans, obj.IncomePlans)
	sort.SliceStable(plans, func(a, b int) bool {
		return plans[a].PeriodBegin.Before(plans[b].PeriodBegin)
	})

	soldout := SoldoutRatio(obj.Premises, obj.OversoldMethod)

	n := len(plans)
	binWidth := 1.0 / float64(n)

	for i := 0; i < n; i++ {
		lo := float64(i) * binWidth
		hi := float64(i+1) * binWidth

		inBin := soldout >= lo && soldout < hi
		if i == n-1 {
			inBin = soldout >= lo && soldout <= 1
		}
		if !inBin {
			continue
		}

		// Each bin interpolates toward the next plan's start price. The
		// last bin has no successor and stays flat at its own price.
		start := plans[i].PricePerSqm
		end := start
		if i+1 < n {
			end = plans[i+1].PricePerSqm
		}

		frac := (soldout - lo) / binWidth
		return roundTo(start+(end-start)*frac, 3)
	}

	return roundTo(plans[0].PricePerSqm, 3)
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
