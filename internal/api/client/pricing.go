package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ovbilous/priceboard/internal/engine"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

// PricingConfigsResponse wraps the config revision list response.
type PricingConfigsResponse struct {
	Configs []domain.PricingConfig `json:"configs"`
	Total   int                    `json:"total"`
}

// AppendPricingConfig saves a new config revision for an object.
func (c *Client) AppendPricingConfig(
	ctx context.Context,
	reoID int64,
	content *domain.PricingContent,
) (*domain.PricingConfig, error) {
	var cfg domain.PricingConfig
	path := fmt.Sprintf("/api/v1/objects/%d/pricing-configs", reoID)
	if err := c.post(ctx, path, content, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ListPricingConfigs returns an object's config revisions, oldest first.
func (c *Client) ListPricingConfigs(
	ctx context.Context,
	reoID int64,
) (*PricingConfigsResponse, error) {
	var resp PricingConfigsResponse
	path := fmt.Sprintf("/api/v1/objects/%d/pricing-configs", reoID)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DistributionConfigsResponse wraps the preset list response.
type DistributionConfigsResponse struct {
	Configs []domain.DistributionConfig `json:"configs"`
	Total   int                         `json:"total"`
}

// CreateDistributionConfigParams carries a new preset definition.
type CreateDistributionConfigParams struct {
	Name         string                    `json:"name"`
	FunctionType string                    `json:"function_type"`
	Params       domain.DistributionParams `json:"params,omitempty"`
}

// CreateDistributionConfig saves a named distribution preset.
func (c *Client) CreateDistributionConfig(
	ctx context.Context,
	params *CreateDistributionConfigParams,
) (*domain.DistributionConfig, error) {
	var cfg domain.DistributionConfig
	if err := c.post(ctx, "/api/v1/distribution-configs", params, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ListDistributionConfigs returns all presets, oldest first.
func (c *Client) ListDistributionConfigs(ctx context.Context) (*DistributionConfigsResponse, error) {
	var resp DistributionConfigsResponse
	if err := c.get(ctx, "/api/v1/distribution-configs", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PriceResponse is the object-level price preview.
type PriceResponse struct {
	Price   string                    `json:"price"`
	Process domain.CalculationProcess `json:"process"`
}

// GetPrice previews the object-level price for a contribution value.
func (c *Client) GetPrice(
	ctx context.Context,
	reoID int64,
	mode string,
	contribution float64,
) (*PriceResponse, error) {
	q := url.Values{}
	if mode != "" {
		q.Set("mode", mode)
	}
	if contribution != 0 {
		q.Set("contribution", strconv.FormatFloat(contribution, 'f', -1, 64))
	}

	path := fmt.Sprintf("/api/v1/objects/%d/price", reoID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp PriceResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetChessboard returns the floor-by-unit grid with the requested metric.
func (c *Client) GetChessboard(
	ctx context.Context,
	reoID int64,
	metric string,
	distributionID int64,
) (*engine.ChessboardView, error) {
	q := url.Values{}
	if metric != "" {
		q.Set("metric", metric)
	}
	if distributionID > 0 {
		q.Set("distribution_id", strconv.FormatInt(distributionID, 10))
	}

	path := fmt.Sprintf("/api/v1/objects/%d/chessboard", reoID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var view engine.ChessboardView
	if err := c.get(ctx, path, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// RepriceParams configures one repricing run.
type RepriceParams struct {
	Mode           string `json:"mode,omitempty"`
	DistributionID int64  `json:"distribution_id,omitempty"`
	Persist        bool   `json:"persist,omitempty"`
}

// Reprice runs the pricing pipeline for one object.
func (c *Client) Reprice(
	ctx context.Context,
	reoID int64,
	params *RepriceParams,
) (*engine.RepriceResult, error) {
	var result engine.RepriceResult
	path := fmt.Sprintf("/api/v1/objects/%d/reprice", reoID)
	if err := c.post(ctx, path, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
