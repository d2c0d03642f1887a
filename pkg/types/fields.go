package domain

import "strconv"

// FieldAccessor reads one scorable field off a unit and renders it as the
// string form used by priority lists. ok is false when the field is unset.
type FieldAccessor func(p *Premises) (value string, ok bool)

// fieldRegistry is the closed set of premises fields that ranking and
// scoring may address by name. Names match the JSON/spreadsheet contract.
// Dynamic property access is deliberately not supported; a field missing
// here is a config error surfaced at ingestion, not a silent zero.
var fieldRegistry = map[string]FieldAccessor{
	"property_type":  func(p *Premises) (string, bool) { return p.PropertyType, p.PropertyType != "" },
	"premises_id":    func(p *Premises) (string, bool) { return p.PremisesID, p.PremisesID != "" },
	"number":         func(p *Premises) (string, bool) { return strconv.Itoa(p.Number), true },
	"number_of_unit": func(p *Premises) (string, bool) { return strconv.Itoa(p.NumberOfUnit), true },
	"entrance":       func(p *Premises) (string, bool) { return p.Entrance, p.Entrance != "" },
	"floor":          func(p *Premises) (string, bool) { return strconv.Itoa(p.Floor), true },
	"layout_type":    func(p *Premises) (string, bool) { return p.LayoutType, p.LayoutType != "" },
	"total_area_m2": func(p *Premises) (string, bool) {
		return formatFloatField(p.TotalAreaM2), true
	},
	"estimated_area_m2": func(p *Premises) (string, bool) {
		return formatFloatField(p.EstimatedAreaM2), true
	},
	"price_per_meter": func(p *Premises) (string, bool) {
		return formatFloatField(p.PricePerMeter), true
	},
	"number_of_rooms":  func(p *Premises) (string, bool) { return strconv.Itoa(p.NumberOfRooms), true },
	"living_area_m2":   optionalFloat(func(p *Premises) *float64 { return p.LivingAreaM2 }),
	"kitchen_area_m2":  optionalFloat(func(p *Premises) *float64 { return p.KitchenAreaM2 }),
	"view_from_window": func(p *Premises) (string, bool) { return p.ViewFromWindow, p.ViewFromWindow != "" },
	"number_of_levels": optionalInt(func(p *Premises) *int { return p.NumberOfLevels }),
	"number_of_loggias": optionalInt(
		func(p *Premises) *int { return p.NumberOfLoggias },
	),
	"number_of_balconies": optionalInt(
		func(p *Premises) *int { return p.NumberOfBalconies },
	),
	"number_of_bathrooms_with_toilets": optionalInt(
		func(p *Premises) *int { return p.BathroomsWithWC },
	),
	"number_of_separate_bathrooms": optionalInt(
		func(p *Premises) *int { return p.SeparateBathrooms },
	),
	"number_of_terraces": optionalInt(
		func(p *Premises) *int { return p.NumberOfTerraces },
	),
	"studio": func(p *Premises) (string, bool) { return strconv.FormatBool(p.Studio), true },
	"status": func(p *Premises) (string, bool) { return string(p.Status), p.Status != "" },
}

// FieldValue looks up a scorable field by name. Registry fields win; any
// other name falls through to the unit's custom spreadsheet columns.
func (p *Premises) FieldValue(name string) (string, bool) {
	if acc, ok := fieldRegistry[name]; ok {
		return acc(p)
	}
	v, ok := p.Custom[name]
	return v, ok
}

// KnownField reports whether name is part of the typed field registry.
func KnownField(name string) bool {
	_, ok := fieldRegistry[name]
	return ok
}

// ScorableFields returns the registry field names in no particular order.
func ScorableFields() []string {
	fields := make([]string, 0, len(fieldRegistry))
	for name := range fieldRegistry {
		fields = append(fields, name)
	}
	return fields
}

// formatFloatField renders a float the way spreadsheet values arrive:
// no exponent, no trailing zeros.
func formatFloatField(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optionalFloat(get func(p *Premises) *float64) FieldAccessor {
	return func(p *Premises) (string, bool) {
		v := get(p)
		if v == nil {
			return "", false
		}
		return formatFloatField(*v), true
	}
}

func optionalInt(get func(p *Premises) *int) FieldAccessor {
	return func(p *Premises) (string, bool) {
		v := get(p)
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	}
}
