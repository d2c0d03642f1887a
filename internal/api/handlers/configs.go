package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ovbilous/priceboard/internal/store"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

// ConfigsHandler handles pricing config revisions and distribution presets.
type ConfigsHandler struct {
	store store.Store
}

// NewConfigsHandler creates a new ConfigsHandler.
func NewConfigsHandler(s store.Store) *ConfigsHandler {
	return &ConfigsHandler{store: s}
}

// --- Input/Output types ---

// AppendPricingConfigInput is the input for saving a config revision.
type AppendPricingConfigInput struct {
	ID   int64 `path:"id" doc:"Object ID"`
	Body domain.PricingContent
}

// AppendPricingConfigOutput is the saved revision.
type AppendPricingConfigOutput struct {
	Body domain.PricingConfig
}

// ListPricingConfigsInput is the input for listing config revisions.
type ListPricingConfigsInput struct {
	ID int64 `path:"id" doc:"Object ID"`
}

// ListPricingConfigsOutput is the response for listing config revisions.
type ListPricingConfigsOutput struct {
	Body struct {
		Configs []domain.PricingConfig `json:"configs"`
		Total   int                    `json:"total"`
	}
}

// CreateDistributionConfigInput is the input for saving a preset.
type CreateDistributionConfigInput struct {
	Body struct {
		Name         string                    `json:"name"          doc:"Preset name" minLength:"1"`
		FunctionType string                    `json:"function_type" doc:"Curve shape" enum:"Uniform,Gaussian,Bimodal"`
		Params       domain.DistributionParams `json:"params,omitempty"`
	}
}

// CreateDistributionConfigOutput is the saved preset.
type CreateDistributionConfigOutput struct {
	Body domain.DistributionConfig
}

// ListDistributionConfigsOutput is the response for listing presets.
type ListDistributionConfigsOutput struct {
	Body struct {
		Configs []domain.DistributionConfig `json:"configs"`
		Total   int                         `json:"total"`
	}
}

// --- Handlers ---

// AppendPricingConfig saves a new config revision for an object. Revisions
// are append only; scoring reads static sections from the first revision
// and ranging from the newest.
func (h *ConfigsHandler) AppendPricingConfig(
	ctx context.Context,
	input *AppendPricingConfigInput,
) (*AppendPricingConfigOutput, error) {
	if _, err := h.store.GetObject(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("object not found")
		}
		return nil, huma.Error500InternalServerError("object query failed: " + err.Error())
	}

	cfg := &domain.PricingConfig{
		ReoID:   input.ID,
		Content: input.Body,
	}

	if err := h.store.AppendPricingConfig(ctx, cfg); err != nil {
		return nil, huma.Error500InternalServerError("saving pricing config failed: " + err.Error())
	}

	return &AppendPricingConfigOutput{Body: *cfg}, nil
}

// ListPricingConfigs returns an object's config revisions, oldest first.
func (h *ConfigsHandler) ListPricingConfigs(
	ctx context.Context,
	input *ListPricingConfigsInput,
) (*ListPricingConfigsOutput, error) {
	configs, err := h.store.ListPricingConfigs(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("pricing config query failed: " + err.Error())
	}

	resp := &ListPricingConfigsOutput{}
	resp.Body.Configs = configs
	resp.Body.Total = len(configs)
	return resp, nil
}

// CreateDistributionConfig saves a named preset shared across objects.
func (h *ConfigsHandler) CreateDistributionConfig(
	ctx context.Context,
	input *CreateDistributionConfigInput,
) (*CreateDistributionConfigOutput, error) {
	cfg := &domain.DistributionConfig{
		Name:         input.Body.Name,
		FunctionType: domain.DistributionFunction(input.Body.FunctionType),
		Params:       input.Body.Params,
	}

	if err := h.store.CreateDistributionConfig(ctx, cfg); err != nil {
		return nil, huma.Error500InternalServerError("saving distribution config failed: " + err.Error())
	}

	return &CreateDistributionConfigOutput{Body: *cfg}, nil
}

// ListDistributionConfigs returns all presets, oldest first.
func (h *ConfigsHandler) ListDistributionConfigs(
	ctx context.Context,
	_ *struct{},
) (*ListDistributionConfigsOutput, error) {
	configs, err := h.store.ListDistributionConfigs(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("distribution config query failed: " + err.Error())
	}

	resp := &ListDistributionConfigsOutput{}
	resp.Body.Configs = configs
	resp.Body.Total = len(configs)
	return resp, nil
}

// RegisterConfigRoutes registers config endpoints with the Huma API.
func RegisterConfigRoutes(api huma.API, h *ConfigsHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "append-pricing-config",
		Method:        http.MethodPost,
		Path:          "/api/v1/objects/{id}/pricing-configs",
		Summary:       "Save a pricing config revision",
		Description:   "Appends a new pricing config revision for an object.",
		Tags:          []string{"configs"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusNotFound},
	}, h.AppendPricingConfig)

	huma.Register(api, huma.Operation{
		OperationID: "list-pricing-configs",
		Method:      http.MethodGet,
		Path:        "/api/v1/objects/{id}/pricing-configs",
		Summary:     "List pricing config revisions",
		Description: "Returns an object's pricing config revisions, oldest first.",
		Tags:        []string{"configs"},
	}, h.ListPricingConfigs)

	huma.Register(api, huma.Operation{
		OperationID:   "create-distribution-config",
		Method:        http.MethodPost,
		Path:          "/api/v1/distribution-configs",
		Summary:       "Create a distribution preset",
		Description:   "Saves a named preset value curve shared across objects.",
		Tags:          []string{"configs"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateDistributionConfig)

	huma.Register(api, huma.Operation{
		OperationID: "list-distribution-configs",
		Method:      http.MethodGet,
		Path:        "/api/v1/distribution-configs",
		Summary:     "List distribution presets",
		Description: "Returns all distribution presets, oldest first.",
		Tags:        []string{"configs"},
	}, h.ListDistributionConfigs)
}
