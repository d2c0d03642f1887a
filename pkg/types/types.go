// Package domain defines the core business types for priceboard.
package domain

import (
	"math"
	"strconv"
	"time"
)

// PremisesStatus represents the sales status of a unit.
type PremisesStatus string

// Premises status constants. Source spreadsheets carry free-form statuses;
// only "sold" has engine-level meaning.
const (
	StatusSold      PremisesStatus = "sold"
	StatusAvailable PremisesStatus = "available"
	StatusReserved  PremisesStatus = "reserved"
)

// EngineMode selects the price-calculation branch.
type EngineMode string

// Engine mode constants. The names come from the product side and are part
// of the persisted config contract, quirky capitalization included.
const (
	EngineRegular EngineMode = "Regular"
	EngineOhElon  EngineMode = "Oh, Elon"
)

// OversoldMethod selects how the soldout ratio is computed.
type OversoldMethod string

// Oversold method constants.
const (
	OversoldPieces OversoldMethod = "pieces"
	OversoldArea   OversoldMethod = "area"
)

// Premises represents one sellable unit inside a real-estate object.
//
// (Floor, NumberOfUnit) is the lookup key for the chessboard view. The
// source data does not guarantee uniqueness of that pair; duplicates are a
// data-quality concern upstream, the engine takes the first match.
type Premises struct {
	ID         int64  `json:"id"          db:"id"`
	ReoID      int64  `json:"reo_id"      db:"reo_id"`
	PremisesID string `json:"premises_id" db:"premises_id"`

	PropertyType string `json:"property_type"  db:"property_type"`
	Number       int    `json:"number"         db:"number"`
	NumberOfUnit int    `json:"number_of_unit" db:"number_of_unit"`
	Entrance     string `json:"entrance"       db:"entrance"`
	Floor        int    `json:"floor"          db:"floor"`
	LayoutType   string `json:"layout_type"    db:"layout_type"`

	// Areas and pricing
	FullPrice       *float64 `json:"full_price,omitempty" db:"full_price"`
	TotalAreaM2     float64  `json:"total_area_m2"        db:"total_area_m2"`
	EstimatedAreaM2 float64  `json:"estimated_area_m2"    db:"estimated_area_m2"`
	PricePerMeter   float64  `json:"price_per_meter"      db:"price_per_meter"`

	// Layout attributes
	NumberOfRooms     int      `json:"number_of_rooms"               db:"number_of_rooms"`
	LivingAreaM2      *float64 `json:"living_area_m2,omitempty"      db:"living_area_m2"`
	KitchenAreaM2     *float64 `json:"kitchen_area_m2,omitempty"     db:"kitchen_area_m2"`
	ViewFromWindow    string   `json:"view_from_window,omitempty"    db:"view_from_window"`
	NumberOfLevels    *int     `json:"number_of_levels,omitempty"    db:"number_of_levels"`
	NumberOfLoggias   *int     `json:"number_of_loggias,omitempty"   db:"number_of_loggias"`
	NumberOfBalconies *int     `json:"number_of_balconies,omitempty" db:"number_of_balconies"`
	BathroomsWithWC   *int     `json:"number_of_bathrooms_with_toilets,omitempty" db:"number_of_bathrooms_with_toilets"`
	SeparateBathrooms *int     `json:"number_of_separate_bathrooms,omitempty"     db:"number_of_separate_bathrooms"`
	NumberOfTerraces  *int     `json:"number_of_terraces,omitempty"  db:"number_of_terraces"`
	Studio            bool     `json:"studio"                        db:"studio"`

	Status      PremisesStatus    `json:"status"                  db:"status"`
	SalesAmount *float64          `json:"sales_amount,omitempty"  db:"sales_amount"`
	Custom      map[string]string `json:"customcontent,omitempty" db:"customcontent"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Sold reports whether the unit counts as sold for scoring and soldout math.
func (p *Premises) Sold() bool {
	return p.Status == StatusSold
}

// IncomePlan is a time-boxed revenue plan used as a price control point.
type IncomePlan struct {
	ID                  int64     `json:"id"                    db:"id"`
	ReoID               int64     `json:"reo_id"                db:"reo_id"`
	PropertyType        string    `json:"property_type"         db:"property_type"`
	PeriodBegin         time.Time `json:"period_begin"          db:"period_begin"`
	PeriodEnd           time.Time `json:"period_end"            db:"period_end"`
	AreaM2              float64   `json:"area"                  db:"area"`
	PlannedSalesRevenue float64   `json:"planned_sales_revenue" db:"planned_sales_revenue"`
	PricePerSqm         float64   `json:"price_per_sqm"         db:"price_per_sqm"`
	PricePerSqmEnd      float64   `json:"price_per_sqm_end"     db:"price_per_sqm_end"`
}

// DynamicParametersConfig selects the scorable fields and their weights.
// Weights over selected fields sum to 1; the pricing package re-normalizes
// on every mutation, never lazily.
type DynamicParametersConfig struct {
	ImportantFields map[string]bool    `json:"importantFields"`
	Weights         map[string]float64 `json:"weights"`
}

// StaticParametersConfig holds the scoring and pricing tuning constants.
type StaticParametersConfig struct {
	SimilarityThreshold float64 `json:"similarityThreshold"`
	Sigma               float64 `json:"sigma"`
	MaxBonus            float64 `json:"maxBonus,omitempty"`
	BonusFactor         float64 `json:"bonusFactor,omitempty"`

	// Liquidation-refusal price rates, as fractions of the base price.
	MinLiqRefusalPrice float64 `json:"minimum_liq_refusal_price"`
	MaxLiqRefusalPrice float64 `json:"maximum_liq_refusal_price"`

	// Engine-mode factors.
	BargainGap              float64 `json:"bargainGap"`
	MaxifyFactor            float64 `json:"maxify_factor"`
	OverestimateCorrectness float64 `json:"overestimate_correct_factor"`
}

// PriorityItem maps a set of raw field values to one priority rank.
// Values has size 1 for an auto-created singleton and >1 for a user group.
type PriorityItem struct {
	Name     string   `json:"name"`
	Values   []string `json:"values"`
	Priority int      `json:"priority"`
}

// ColumnPriorities maps a field name to its ordered priority items.
// Within a column, priorities are a contiguous 1..N permutation.
type ColumnPriorities map[string][]PriorityItem

// PricingContent is the versioned payload of one pricing config.
type PricingContent struct {
	DynamicConfig DynamicParametersConfig `json:"dynamicConfig"`
	StaticConfig  StaticParametersConfig  `json:"staticConfig"`
	Ranging       ColumnPriorities        `json:"ranging"`
}

// PricingConfig is one saved configuration revision for an object.
// Configs are appended, never edited in place.
type PricingConfig struct {
	ID        int64          `json:"id"         db:"id"`
	ReoID     int64          `json:"reo_id"     db:"reo_id"`
	Content   PricingContent `json:"content"    db:"content"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// DistributionParams holds the function-specific preset parameters.
// Zero values fall back to the function defaults.
type DistributionParams struct {
	Mean   float64 `json:"mean,omitempty"`
	StdDev float64 `json:"stdDev,omitempty"`
	Mean1  float64 `json:"mean1,omitempty"`
	Mean2  float64 `json:"mean2,omitempty"`
}

// DistributionFunction names a preset value curve.
type DistributionFunction string

// Distribution function constants.
const (
	DistUniform  DistributionFunction = "Uniform"
	DistGaussian DistributionFunction = "Gaussian"
	DistBimodal  DistributionFunction = "Bimodal"
)

// DistributionConfig is a named, persisted distribution preset.
type DistributionConfig struct {
	ID           int64                `json:"id"            db:"id"`
	Name         string               `json:"name"          db:"name"`
	FunctionType DistributionFunction `json:"function_type" db:"function_type"`
	Params       DistributionParams   `json:"params"        db:"params"`
	CreatedAt    time.Time            `json:"created_at"    db:"created_at"`
}

// RealEstateObject is the aggregate root: one building or complex with its
// premises, income plans, and pricing config revisions.
type RealEstateObject struct {
	ID                 int64          `json:"id"     db:"id"`
	Name               string         `json:"name"   db:"name"`
	Status             string         `json:"status" db:"status"`
	CurrentPricePerSqm string         `json:"current_price_per_sqm,omitempty" db:"current_price_per_sqm"`
	OversoldMethod     OversoldMethod `json:"oversold_method" db:"oversold_method"`

	Premises       []Premises      `json:"premises"`
	IncomePlans    []IncomePlan    `json:"income_plans"`
	PricingConfigs []PricingConfig `json:"pricing_configs"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ActiveContent returns the pricing content scoring should use: the dynamic
// and static sections come from the first revision, ranging from the newest.
// Returns false when the object has no configs yet.
func (o *RealEstateObject) ActiveContent() (PricingContent, bool) {
	if len(o.PricingConfigs) == 0 {
		return PricingContent{}, false
	}
	content := o.PricingConfigs[0].Content
	content.Ranging = o.PricingConfigs[len(o.PricingConfigs)-1].Content.Ranging
	return content, true
}

// BasePricePerSqm returns the first income plan's starting price, or 0 when
// the object has no plans.
func (o *RealEstateObject) BasePricePerSqm() float64 {
	if len(o.IncomePlans) == 0 {
		return 0
	}
	return o.IncomePlans[0].PricePerSqm
}

// CalculationProcess is the ephemeral audit output of one price run.
// It is exposed for display and never persisted.
type CalculationProcess struct {
	OnboardingSpread float64 `json:"onboarding_spread"`
	CompensationRate float64 `json:"compensation_rate"`
	ConditionalValue float64 `json:"conditional_value"`
}

// FormatPrice renders a computed price the way the UI contract expects:
// two decimals, or "N/A" for zero and non-finite values.
func FormatPrice(price float64) string {
	if price == 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return "N/A"
	}
	return strconv.FormatFloat(price, 'f', 2, 64)
}
