// Package ingest maps parsed spreadsheet rows onto domain types. Rows
// arrive as header-keyed maps straight out of the upload parser; this
// package owns the header contract, value coercion, and row validation.
package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

// Row is one parsed spreadsheet row keyed by column header.
type Row map[string]any

// Premises spreadsheet headers. These names are the upload contract and
// match the source files byte for byte, punctuation included.
const (
	headerPropertyType    = "Property type"
	headerPremisesID      = "Premises ID"
	headerNumberOfUnit    = "Number of unit"
	headerNumber          = "Number"
	headerEntrance        = "Entrance"
	headerFloor           = "Floor"
	headerLayoutType      = "Layout type"
	headerFullPrice       = "Full price"
	headerTotalArea       = "Total area, m2"
	headerEstimatedArea   = "Estimated area, m2"
	headerPricePerMeter   = "Price per meter"
	headerNumberOfRooms   = "Number of rooms"
	headerLivingArea      = "Living area, m2"
	headerKitchenArea     = "Kitchen area, m2"
	headerViewFromWindow  = "View from window"
	headerNumberOfLevels  = "Number of levels"
	headerLoggias         = "Number of loggias"
	headerBalconies       = "Number of balconies"
	headerBathroomsWithWC = "Number of bathrooms with toilets"
	headerSeparateBaths   = "Number of separate bathrooms"
	headerTerraces        = "Number of terraces"
	headerStudio          = "Studio"
	headerStatus          = "Status"
	headerSalesAmount     = "Sales amount"
)

// Income plan headers use snake_case except for the shared property type
// column. Also part of the upload contract.
const (
	headerPeriodBegin    = "period_begin"
	headerPeriodEnd      = "period_end"
	headerArea           = "area"
	headerPlannedRevenue = "planned_sales_revenue"
	headerPricePerSqm    = "price_per_sqm"
	headerPricePerSqmEnd = "price_per_sqm_end"
)

// premisesHeaders is the set of typed premises columns. Any other column
// lands in the unit's custom content and stays addressable by ranking.
var premisesHeaders = map[string]struct{}{
	headerPropertyType: {}, headerPremisesID: {}, headerNumberOfUnit: {},
	headerNumber: {}, headerEntrance: {}, headerFloor: {},
	headerLayoutType: {}, headerFullPrice: {}, headerTotalArea: {},
	headerEstimatedArea: {}, headerPricePerMeter: {}, headerNumberOfRooms: {},
	headerLivingArea: {}, headerKitchenArea: {}, headerViewFromWindow: {},
	headerNumberOfLevels: {}, headerLoggias: {}, headerBalconies: {},
	headerBathroomsWithWC: {}, headerSeparateBaths: {}, headerTerraces: {},
	headerStudio: {}, headerStatus: {}, headerSalesAmount: {},
}

// planDateLayouts are tried in order when parsing income plan periods.
var planDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02.01.2006",
}

// PremisesFromRows maps upload rows onto premises for the given object.
// Units without a premises id get a generated one so the upsert key is
// never empty. Rows are never dropped; a row with no usable columns still
// produces a unit with zero values.
func PremisesFromRows(rows []Row, reoID int64) []domain.Premises {
	units := make([]domain.Premises, 0, len(rows))
	for _, row := range rows {
		u := domain.Premises{
			ReoID:           reoID,
			PropertyType:    asString(row[headerPropertyType]),
			PremisesID:      asString(row[headerPremisesID]),
			NumberOfUnit:    asInt(row[headerNumberOfUnit]),
			Number:          asInt(row[headerNumber]),
			Entrance:        asString(row[headerEntrance]),
			Floor:           asInt(row[headerFloor]),
			LayoutType:      asString(row[headerLayoutType]),
			FullPrice:       asFloatPtr(row[headerFullPrice]),
			TotalAreaM2:     asFloat(row[headerTotalArea]),
			EstimatedAreaM2: asFloat(row[headerEstimatedArea]),
			PricePerMeter:   asFloat(row[headerPricePerMeter]),
			NumberOfRooms:   asInt(row[headerNumberOfRooms]),
			LivingAreaM2:    asFloatPtr(row[headerLivingArea]),
			KitchenAreaM2:   asFloatPtr(row[headerKitchenArea]),
			ViewFromWindow:  asString(row[headerViewFromWindow]),
			NumberOfLevels:  asIntPtr(row[headerNumberOfLevels]),
			NumberOfLoggias: asIntPtr(row[headerLoggias]),
			NumberOfBalconies: asIntPtr(
				row[headerBalconies],
			),
			BathroomsWithWC:   asIntPtr(row[headerBathroomsWithWC]),
			SeparateBathrooms: asIntPtr(row[headerSeparateBaths]),
			NumberOfTerraces:  asIntPtr(row[headerTerraces]),
			Studio:            asBool(row[headerStudio]),
			Status:            normalizeStatus(row[headerStatus]),
			SalesAmount:       asFloatPtr(row[headerSalesAmount]),
			Custom:            customColumns(row),
		}

		if u.PremisesID == "" {
			u.PremisesID = uuid.NewString()
		}

		units = append(units, u)
	}
	return units
}

// IncomePlansFromRows maps upload rows onto income plans. A row with an
// unparseable period fails the whole upload; plans are control points for
// pricing and a silent zero date would corrupt the interpolation order.
func IncomePlansFromRows(rows []Row, reoID int64) ([]domain.IncomePlan, error) {
	plans := make([]domain.IncomePlan, 0, len(rows))
	for i, row := range rows {
		begin, err := parsePlanDate(row[headerPeriodBegin])
		if err != nil {
			return nil, fmt.Errorf("row %d: period_begin: %w", i+1, err)
		}
		end, err := parsePlanDate(row[headerPeriodEnd])
		if err != nil {
			return nil, fmt.Errorf("row %d: period_end: %w", i+1, err)
		}

		plans = append(plans, domain.IncomePlan{
			ReoID:               reoID,
			PropertyType:        asString(row[headerPropertyType]),
			PeriodBegin:         begin,
			PeriodEnd:           end,
			AreaM2:              asFloat(row[headerArea]),
			PlannedSalesRevenue: asFloat(row[headerPlannedRevenue]),
			PricePerSqm:         asFloat(row[headerPricePerSqm]),
			PricePerSqmEnd:      asFloat(row[headerPricePerSqmEnd]),
		})
	}
	return plans, nil
}

// customColumns collects the row's unknown headers as custom content.
// Headers that shadow a registry field name are skipped so a spreadsheet
// cannot override typed columns through the custom path.
func customColumns(row Row) map[string]string {
	var custom map[string]string
	for key, value := range row {
		if _, ok := premisesHeaders[key]; ok {
			continue
		}
		if domain.KnownField(key) {
			continue
		}
		if custom == nil {
			custom = make(map[string]string)
		}
		custom[key] = asString(value)
	}
	return custom
}

// normalizeStatus lowercases free-form spreadsheet statuses. Unrecognized
// values pass through as-is; only "sold" carries engine meaning.
func normalizeStatus(v any) domain.PremisesStatus {
	s := strings.ToLower(strings.TrimSpace(asString(v)))
	if s == "" {
		return domain.StatusAvailable
	}
	return domain.PremisesStatus(s)
}

func parsePlanDate(v any) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range planDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func asFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asInt(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}

func asBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(val)))
		return err == nil && b
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return false
	}
}

// asFloatPtr keeps optional numeric columns optional: absent or blank
// cells stay nil instead of becoming zero.
func asFloatPtr(v any) *float64 {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	f := asFloat(v)
	return &f
}

func asIntPtr(v any) *int {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	n := asInt(v)
	return &n
}
