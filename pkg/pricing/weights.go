package pricing

import domain "github.com/ovbilous/priceboard/pkg/types"

// ToggleField flips a field's selection and resets the weights of all
// selected fields to an equal share. Deselecting the last field empties the
// weight map. Weights always sum to 1 immediately after the mutation.
func ToggleField(cfg domain.DynamicParametersConfig, field string) domain.DynamicParametersConfig {
	out := cloneDynamicConfig(cfg)
	out.ImportantFields[field] = !out.ImportantFields[field]

	selected := selectedFields(out)
	out.Weights = make(map[string]float64, len(selected))
	for _, name := range selected {
		out.Weights[name] = 1 / float64(len(selected))
	}
	return out
}

// SetWeight assigns a weight to one selected field and renormalizes the
// whole set so weights sum to 1. Unselected fields are ignored.
func SetWeight(cfg domain.DynamicParametersConfig, field string, weight float64) domain.DynamicParametersConfig {
	out := cloneDynamicConfig(cfg)
	if !out.ImportantFields[field] {
		return out
	}
	if weight < 0 {
		weight = 0
	}
	out.Weights[field] = weight

	selected := selectedFields(out)

	var total float64
	for _, name := range selected {
		total += out.Weights[name]
	}

	weights := make(map[string]float64, len(selected))
	for _, name := range selected {
		if total > 0 {
			weights[name] = out.Weights[name] / total
		} else {
			weights[name] = 1 / float64(len(selected))
		}
	}
	out.Weights = weights
	return out
}

func selectedFields(cfg domain.DynamicParametersConfig) []string {
	var names []string
	for name, on := range cfg.ImportantFields {
		if on {
			names = append(names, name)
		}
	}
	return names
}

func cloneDynamicConfig(cfg domain.DynamicParametersConfig) domain.DynamicParametersConfig {
	out := domain.DynamicParametersConfig{
		ImportantFields: make(map[string]bool, len(cfg.ImportantFields)),
		Weights:         make(map[string]float64, len(cfg.Weights)),
	}
	for k, v := range cfg.ImportantFields {
		out.ImportantFields[k] = v
	}
	for k, v := range cfg.Weights {
		out.Weights[k] = v
	}
	return out
}
