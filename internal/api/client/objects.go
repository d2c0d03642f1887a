package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

// ObjectsResponse wraps the object list response.
type ObjectsResponse struct {
	Objects []domain.RealEstateObject `json:"objects"`
	Total   int                       `json:"total"`
}

// CreateObjectParams carries the writable object fields.
type CreateObjectParams struct {
	Name               string `json:"name"`
	Status             string `json:"status,omitempty"`
	CurrentPricePerSqm string `json:"current_price_per_sqm,omitempty"`
	OversoldMethod     string `json:"oversold_method,omitempty"`
}

// CreateObject creates an empty real-estate object.
func (c *Client) CreateObject(
	ctx context.Context,
	params *CreateObjectParams,
) (*domain.RealEstateObject, error) {
	var obj domain.RealEstateObject
	if err := c.post(ctx, "/api/v1/objects", params, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// ListObjects returns all objects without their aggregates.
func (c *Client) ListObjects(ctx context.Context) (*ObjectsResponse, error) {
	var resp ObjectsResponse
	if err := c.get(ctx, "/api/v1/objects", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetObject returns one object as a full aggregate.
func (c *Client) GetObject(ctx context.Context, id int64) (*domain.RealEstateObject, error) {
	var obj domain.RealEstateObject
	if err := c.get(ctx, fmt.Sprintf("/api/v1/objects/%d", id), &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// UpdateObject updates an object's mutable fields.
func (c *Client) UpdateObject(
	ctx context.Context,
	id int64,
	params *CreateObjectParams,
) (*domain.RealEstateObject, error) {
	var obj domain.RealEstateObject
	if err := c.put(ctx, fmt.Sprintf("/api/v1/objects/%d", id), params, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// DeleteObject removes an object with all its attached data.
func (c *Client) DeleteObject(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/api/v1/objects/%d", id), nil)
}

// PremisesResponse wraps a paginated premises response.
type PremisesResponse struct {
	Premises []domain.Premises `json:"premises"`
	Total    int               `json:"total"`
}

// ListPremisesParams defines query parameters for premises queries.
type ListPremisesParams struct {
	Status   string
	Entrance string
	MinFloor int
	MaxFloor int
	Limit    int
	Offset   int
	OrderBy  string
}

// ListPremises returns an object's units matching the given parameters.
func (c *Client) ListPremises(
	ctx context.Context,
	reoID int64,
	params *ListPremisesParams,
) (*PremisesResponse, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.Entrance != "" {
		q.Set("entrance", params.Entrance)
	}
	if params.MinFloor > 0 {
		q.Set("min_floor", strconv.Itoa(params.MinFloor))
	}
	if params.MaxFloor > 0 {
		q.Set("max_floor", strconv.Itoa(params.MaxFloor))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.OrderBy != "" {
		q.Set("order_by", params.OrderBy)
	}

	path := fmt.Sprintf("/api/v1/objects/%d/premises", reoID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp PremisesResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadPremises bulk-upserts parsed spreadsheet rows and returns the
// number of units written.
func (c *Client) UploadPremises(
	ctx context.Context,
	reoID int64,
	rows []map[string]any,
) (int, error) {
	var resp struct {
		Written int `json:"written"`
	}
	path := fmt.Sprintf("/api/v1/objects/%d/premises:bulk", reoID)
	if err := c.post(ctx, path, map[string]any{"rows": rows}, &resp); err != nil {
		return 0, err
	}
	return resp.Written, nil
}

// IncomePlansResponse wraps the income plan list response.
type IncomePlansResponse struct {
	IncomePlans []domain.IncomePlan `json:"income_plans"`
	Total       int                 `json:"total"`
}

// ListIncomePlans returns an object's income plans in period order.
func (c *Client) ListIncomePlans(ctx context.Context, reoID int64) (*IncomePlansResponse, error) {
	var resp IncomePlansResponse
	if err := c.get(ctx, fmt.Sprintf("/api/v1/objects/%d/income-plans", reoID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadIncomePlans replaces an object's income plans with the given rows
// and returns the number of plans written.
func (c *Client) UploadIncomePlans(
	ctx context.Context,
	reoID int64,
	rows []map[string]any,
) (int, error) {
	var resp struct {
		Written int `json:"written"`
	}
	path := fmt.Sprintf("/api/v1/objects/%d/income-plans:bulk", reoID)
	if err := c.post(ctx, path, map[string]any{"rows": rows}, &resp); err != nil {
		return 0, err
	}
	return resp.Written, nil
}
