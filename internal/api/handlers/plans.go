package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ovbilous/priceboard/internal/ingest"
	"github.com/ovbilous/priceboard/internal/metrics"
	"github.com/ovbilous/priceboard/internal/store"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

// IncomePlansHandler handles income plan upload and queries.
type IncomePlansHandler struct {
	store   store.Store
	maxRows int
}

// NewIncomePlansHandler creates a new IncomePlansHandler.
func NewIncomePlansHandler(s store.Store, maxRows int) *IncomePlansHandler {
	if maxRows <= 0 {
		maxRows = defaultMaxUploadRows
	}
	return &IncomePlansHandler{store: s, maxRows: maxRows}
}

// --- Input/Output types ---

// BulkIncomePlansInput carries parsed income plan rows for one object.
type BulkIncomePlansInput struct {
	ID   int64 `path:"id" doc:"Object ID"`
	Body struct {
		Rows []ingest.Row `json:"rows" doc:"Header-keyed spreadsheet rows"`
	}
}

// BulkIncomePlansOutput reports how many plans were written.
type BulkIncomePlansOutput struct {
	Body struct {
		Written int `json:"written"`
	}
}

// ListIncomePlansInput is the input for listing an object's plans.
type ListIncomePlansInput struct {
	ID int64 `path:"id" doc:"Object ID"`
}

// ListIncomePlansOutput is the response for listing plans.
type ListIncomePlansOutput struct {
	Body struct {
		IncomePlans []domain.IncomePlan `json:"income_plans"`
		Total       int                 `json:"total"`
	}
}

// --- Handlers ---

// BulkReplaceIncomePlans swaps an object's full plan set for the uploaded
// rows. Plans are interpolation control points, so partial updates are not
// supported; every upload carries the complete sequence.
func (h *IncomePlansHandler) BulkReplaceIncomePlans(
	ctx context.Context,
	input *BulkIncomePlansInput,
) (*BulkIncomePlansOutput, error) {
	if len(input.Body.Rows) > h.maxRows {
		metrics.UploadErrorsTotal.Inc()
		return nil, huma.Error413RequestEntityTooLarge(
			fmt.Sprintf("upload exceeds %d rows", h.maxRows),
		)
	}

	plans, err := ingest.IncomePlansFromRows(input.Body.Rows, input.ID)
	if err != nil {
		metrics.UploadErrorsTotal.Inc()
		return nil, huma.Error422UnprocessableEntity("invalid income plan rows: " + err.Error())
	}

	written, err := h.store.ReplaceIncomePlans(ctx, input.ID, plans)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("object not found")
		}
		metrics.UploadErrorsTotal.Inc()
		return nil, huma.Error500InternalServerError("replacing income plans failed: " + err.Error())
	}

	metrics.UploadRowsTotal.WithLabelValues("income_plans").Add(float64(written))

	resp := &BulkIncomePlansOutput{}
	resp.Body.Written = written
	return resp, nil
}

// ListIncomePlans returns an object's plans ordered by period begin.
func (h *IncomePlansHandler) ListIncomePlans(
	ctx context.Context,
	input *ListIncomePlansInput,
) (*ListIncomePlansOutput, error) {
	plans, err := h.store.ListIncomePlans(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("income plan query failed: " + err.Error())
	}

	resp := &ListIncomePlansOutput{}
	resp.Body.IncomePlans = plans
	resp.Body.Total = len(plans)
	return resp, nil
}

// RegisterIncomePlanRoutes registers income plan endpoints with the Huma API.
func RegisterIncomePlanRoutes(api huma.API, h *IncomePlansHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "bulk-replace-income-plans",
		Method:      http.MethodPost,
		Path:        "/api/v1/objects/{id}/income-plans:bulk",
		Summary:     "Bulk upload income plans",
		Description: "Replaces an object's income plans with the uploaded rows.",
		Tags:        []string{"income-plans"},
		Errors: []int{
			http.StatusNotFound,
			http.StatusUnprocessableEntity,
			http.StatusRequestEntityTooLarge,
		},
	}, h.BulkReplaceIncomePlans)

	huma.Register(api, huma.Operation{
		OperationID: "list-income-plans",
		Method:      http.MethodGet,
		Path:        "/api/v1/objects/{id}/income-plans",
		Summary:     "List income plans",
		Description: "Returns an object's income plans ordered by period begin.",
		Tags:        []string{"income-plans"},
	}, h.ListIncomePlans)
}
