// Package engine orchestrates the repricing pipeline: it loads an object
// aggregate from the store, runs the pure pricing core over its units, and
// optionally persists the computed prices back.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/ovbilous/priceboard/internal/metrics"
	"github.com/ovbilous/priceboard/internal/store"
	"github.com/ovbilous/priceboard/pkg/pricing"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

// ErrNoPricingConfig is returned when an object has no saved pricing config.
var ErrNoPricingConfig = fmt.Errorf("object has no pricing config")

// Engine runs pricing computations against stored object aggregates.
type Engine struct {
	store   store.Store
	log     *slog.Logger
	limiter *RateLimiter

	mode           domain.EngineMode
	scoringVariant pricing.Variant
	condVariant    pricing.CondValueVariant
	fitSpreadRate  float64
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithRateLimiter throttles repricing runs.
func WithRateLimiter(r *RateLimiter) Option {
	return func(e *Engine) {
		e.limiter = r
	}
}

// WithMode sets the default engine mode for runs that don't override it.
func WithMode(mode domain.EngineMode) Option {
	return func(e *Engine) {
		e.mode = mode
	}
}

// WithScoringVariant selects the scoring strategy.
func WithScoringVariant(v pricing.Variant) Option {
	return func(e *Engine) {
		e.scoringVariant = v
	}
}

// WithCondValueVariant selects the conditional-value strategy.
func WithCondValueVariant(v pricing.CondValueVariant) Option {
	return func(e *Engine) {
		e.condVariant = v
	}
}

// WithFitSpreadRate sets the divisor for the legacy conditional-cost formula.
func WithFitSpreadRate(rate float64) Option {
	return func(e *Engine) {
		e.fitSpreadRate = rate
	}
}

// New creates an Engine with injected dependencies.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:          s,
		log:            slog.Default(),
		mode:           domain.EngineRegular,
		scoringVariant: pricing.VariantWeightedDistance,
		condVariant:    pricing.CondValueBounded,
		fitSpreadRate:  100,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RepriceRequest describes one repricing run.
type RepriceRequest struct {
	ReoID          int64
	Mode           domain.EngineMode // empty: engine default
	DistributionID int64             // 0: uniform preset
	Persist        bool
}

// UnitPrice is one unit's row in a repricing result.
type UnitPrice struct {
	UnitID       int64   `json:"unit_id"`
	PremisesID   string  `json:"premises_id"`
	Number       int     `json:"number"`
	Floor        int     `json:"floor"`
	Scoring      string  `json:"scoring"`
	PresetValue  float64 `json:"preset_value"`
	FitCondValue float64 `json:"fit_cond_value"`
	CondCost     float64 `json:"cond_cost"`
	CostShare    float64 `json:"cost_share"`
	Price        string  `json:"price"`
}

// RepriceResult is the output of one repricing run.
type RepriceResult struct {
	Rows            []UnitPrice               `json:"rows"`
	SoldoutRatio    float64                   `json:"soldout_ratio"`
	OnboardingPrice float64                   `json:"onboarding_price"`
	TotalCondCost   float64                   `json:"total_cond_cost"`
	Process         domain.CalculationProcess `json:"process"`
	Persisted       bool                      `json:"persisted"`
}

// Reprice runs the full pricing pipeline for one object: scoring, preset
// assignment, conditional values and costs, onboarding base price, and the
// final per-unit price. When req.Persist is set, prices are written back to
// premises.price_per_meter.
func (e *Engine) Reprice(ctx context.Context, req RepriceRequest) (*RepriceResult, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			metrics.RepricingLimitHits.Inc()
			return nil, err
		}
		metrics.RepricingDailyUsage.Set(float64(e.limiter.DailyCount()))
	}

	start := time.Now()
	metrics.RepricingRunsTotal.Inc()
	defer func() {
		metrics.RepricingDuration.Observe(time.Since(start).Seconds())
	}()

	result, err := e.reprice(ctx, req)
	if err != nil {
		metrics.RepricingErrorsTotal.Inc()
		return nil, err
	}
	return result, nil
}

func (e *Engine) reprice(ctx context.Context, req RepriceRequest) (*RepriceResult, error) {
	obj, err := e.store.GetObject(ctx, req.ReoID)
	if err != nil {
		return nil, fmt.Errorf("loading object %d: %w", req.ReoID, err)
	}

	content, ok := obj.ActiveContent()
	if !ok {
		return nil, fmt.Errorf("object %d: %w", req.ReoID, ErrNoPricingConfig)
	}

	mode := req.Mode
	if mode == "" {
		mode = e.mode
	}

	units := obj.Premises
	scores := e.scorePopulation(units, content)

	curve, err := e.presetCurve(ctx, req.DistributionID, len(units))
	if err != nil {
		return nil, err
	}
	presetValues := pricing.AssignPresetValues(scores, curve)

	fits := e.fitCondValues(presetValues, content.StaticConfig, obj)
	costs := pricing.ConditionalCosts(units, presetValues, e.fitSpreadRate)

	soldout := pricing.SoldoutRatio(units, obj.OversoldMethod)
	onboarding := pricing.OnboardingPrice(obj)

	result := &RepriceResult{
		Rows:            make([]UnitPrice, 0, len(units)),
		SoldoutRatio:    soldout,
		OnboardingPrice: onboarding,
		TotalCondCost:   costs.TotalCondCost,
	}

	for i := range units {
		price, process := pricing.CalculatePrice(obj, mode, presetValues[i])
		result.Process = process

		row := UnitPrice{
			UnitID:       units[i].ID,
			PremisesID:   units[i].PremisesID,
			Number:       units[i].Number,
			Floor:        units[i].Floor,
			Scoring:      formatScore(scores[i]),
			PresetValue:  presetValues[i],
			FitCondValue: fits[i],
			CondCost:     costs.PerUnit[i].CondCost,
			CostShare:    costs.Shares[i],
			Price:        price,
		}
		result.Rows = append(result.Rows, row)

		metrics.ScoringDistribution.Observe(scores[i])
		metrics.PricesComputedTotal.Inc()
	}

	if req.Persist {
		if err := e.persistPrices(ctx, result.Rows); err != nil {
			return nil, err
		}
		result.Persisted = true
	}

	e.log.Info("repricing complete",
		"reo_id", req.ReoID,
		"mode", string(mode),
		"units", len(units),
		"soldout", soldout,
		"persisted", result.Persisted,
	)

	return result, nil
}

// Price computes the object-level price under the given mode and normalized
// contribution, without touching per-unit state.
func (e *Engine) Price(
	ctx context.Context,
	reoID int64,
	mode domain.EngineMode,
	normContributeRT float64,
) (string, domain.CalculationProcess, error) {
	obj, err := e.store.GetObject(ctx, reoID)
	if err != nil {
		return "", domain.CalculationProcess{}, fmt.Errorf("loading object %d: %w", reoID, err)
	}

	if mode == "" {
		mode = e.mode
	}

	price, process := pricing.CalculatePrice(obj, mode, normContributeRT)
	return price, process, nil
}

// scorePopulation scores every unit against the full population.
func (e *Engine) scorePopulation(
	units []domain.Premises,
	content domain.PricingContent,
) []float64 {
	scores := make([]float64, len(units))
	for i := range units {
		raw := pricing.ScoreWith(
			e.scoringVariant,
			&units[i], units,
			content.DynamicConfig, content.StaticConfig, content.Ranging,
		)
		scores[i], _ = strconv.ParseFloat(raw, 64)
	}
	return scores
}

// presetCurve resolves the distribution preset for the run. A zero id means
// no preset was selected and falls back to the uniform ramp.
func (e *Engine) presetCurve(
	ctx context.Context,
	distributionID int64,
	length int,
) ([]float64, error) {
	if distributionID == 0 {
		return pricing.PresetCurve(nil, length), nil
	}

	cfg, err := e.store.GetDistributionConfig(ctx, distributionID)
	if err != nil {
		return nil, fmt.Errorf("loading distribution config %d: %w", distributionID, err)
	}
	return pricing.PresetCurve(cfg, length), nil
}

// fitCondValues computes per-unit fit values. The transform expects its
// input rank-ordered ascending, so values are sorted, transformed, and
// mapped back to the units' original positions.
func (e *Engine) fitCondValues(
	presetValues []float64,
	static domain.StaticParametersConfig,
	obj *domain.RealEstateObject,
) []float64 {
	if len(presetValues) == 0 {
		return nil
	}

	order := make([]int, len(presetValues))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return presetValues[order[a]] < presetValues[order[b]]
	})

	sorted := make([]float64, len(presetValues))
	for i, idx := range order {
		sorted[i] = presetValues[idx]
	}

	var fits []float64
	if e.condVariant == pricing.CondValueSpread {
		fits = pricing.FitCondValuesSpread(sorted, e.fitSpreadRate)
	} else {
		base := pricing.OnboardingPrice(obj)
		fits = pricing.FitCondValues(
			sorted,
			static.MinLiqRefusalPrice*base,
			static.MaxLiqRefusalPrice*base,
			base,
		)
	}

	out := make([]float64, len(presetValues))
	for i, idx := range order {
		if i < len(fits) {
			out[idx] = fits[i]
		}
	}
	return out
}

func (e *Engine) persistPrices(ctx context.Context, rows []UnitPrice) error {
	for i := range rows {
		price, err := strconv.ParseFloat(rows[i].Price, 64)
		if err != nil {
			// "N/A" rows are skipped, not failed.
			continue
		}
		if err := e.store.UpdatePremisesPrice(ctx, rows[i].UnitID, price); err != nil {
			return fmt.Errorf("persisting price for unit %d: %w", rows[i].UnitID, err)
		}
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
