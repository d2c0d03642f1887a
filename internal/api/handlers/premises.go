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

// defaultMaxUploadRows bounds one bulk upload when no limit is configured.
const defaultMaxUploadRows = 10000

// PremisesHandler handles bulk premises upload and queries.
type PremisesHandler struct {
	store   store.Store
	maxRows int
}

// NewPremisesHandler creates a new PremisesHandler. maxRows of zero falls
// back to the default upload bound.
func NewPremisesHandler(s store.Store, maxRows int) *PremisesHandler {
	if maxRows <= 0 {
		maxRows = defaultMaxUploadRows
	}
	return &PremisesHandler{store: s, maxRows: maxRows}
}

// --- Input/Output types ---

// BulkPremisesInput carries parsed spreadsheet rows for one object.
type BulkPremisesInput struct {
	ID   int64 `path:"id" doc:"Object ID"`
	Body struct {
		Rows []ingest.Row `json:"rows" doc:"Header-keyed spreadsheet rows"`
	}
}

// BulkPremisesOutput reports how many units were written.
type BulkPremisesOutput struct {
	Body struct {
		Written int `json:"written"`
	}
}

// ListPremisesInput is the input for querying an object's units.
type ListPremisesInput struct {
	ID       int64   `path:"id"        doc:"Object ID"`
	Status   string  `query:"status"   doc:"Filter by sales status"`
	Entrance string  `query:"entrance" doc:"Filter by entrance"`
	MinFloor int     `query:"min_floor" doc:"Minimum floor"`
	MaxFloor int     `query:"max_floor" doc:"Maximum floor"`
	MinArea  float64 `query:"min_area_m2" doc:"Minimum estimated area"`
	MaxArea  float64 `query:"max_area_m2" doc:"Maximum estimated area"`
	Limit    int     `query:"limit"    doc:"Number of results (default 500)" minimum:"0" maximum:"5000"`
	Offset   int     `query:"offset"   doc:"Pagination offset"               minimum:"0"`
	OrderBy  string  `query:"order_by" doc:"Sort field"                      enum:"floor,number,price_per_meter,"`
}

// ListPremisesOutput is the response for querying units.
type ListPremisesOutput struct {
	Body struct {
		Premises []domain.Premises `json:"premises"`
		Total    int               `json:"total"`
		Limit    int               `json:"limit"`
		Offset   int               `json:"offset"`
	}
}

// --- Handlers ---

// BulkUpsertPremises maps uploaded rows onto units and upserts them by
// (object, premises id). Re-uploading the same sheet updates in place.
func (h *PremisesHandler) BulkUpsertPremises(
	ctx context.Context,
	input *BulkPremisesInput,
) (*BulkPremisesOutput, error) {
	if len(input.Body.Rows) > h.maxRows {
		metrics.UploadErrorsTotal.Inc()
		return nil, huma.Error413RequestEntityTooLarge(
			fmt.Sprintf("upload exceeds %d rows", h.maxRows),
		)
	}

	if _, err := h.store.GetObject(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("object not found")
		}
		return nil, huma.Error500InternalServerError("object query failed: " + err.Error())
	}

	units := ingest.PremisesFromRows(input.Body.Rows, input.ID)

	written, err := h.store.UpsertPremises(ctx, input.ID, units)
	if err != nil {
		metrics.UploadErrorsTotal.Inc()
		return nil, huma.Error500InternalServerError("upserting premises failed: " + err.Error())
	}

	metrics.UploadRowsTotal.WithLabelValues("premises").Add(float64(written))

	resp := &BulkPremisesOutput{}
	resp.Body.Written = written
	return resp, nil
}

// ListPremises returns an object's units with optional filters.
func (h *PremisesHandler) ListPremises(
	ctx context.Context,
	input *ListPremisesInput,
) (*ListPremisesOutput, error) {
	q := &store.PremisesQuery{
		Limit:   input.Limit,
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}

	if input.Status != "" {
		q.Status = &input.Status
	}
	if input.Entrance != "" {
		q.Entrance = &input.Entrance
	}
	if input.MinFloor != 0 {
		q.MinFloor = &input.MinFloor
	}
	if input.MaxFloor != 0 {
		q.MaxFloor = &input.MaxFloor
	}
	if input.MinArea != 0 {
		q.MinAreaM2 = &input.MinArea
	}
	if input.MaxArea != 0 {
		q.MaxAreaM2 = &input.MaxArea
	}

	units, total, err := h.store.ListPremises(ctx, input.ID, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("premises query failed: " + err.Error())
	}

	resp := &ListPremisesOutput{}
	resp.Body.Premises = units
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset
	return resp, nil
}

// RegisterPremisesRoutes registers premises endpoints with the Huma API.
func RegisterPremisesRoutes(api huma.API, h *PremisesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "bulk-upsert-premises",
		Method:      http.MethodPost,
		Path:        "/api/v1/objects/{id}/premises:bulk",
		Summary:     "Bulk upload premises",
		Description: "Maps parsed spreadsheet rows onto units and upserts them by premises ID.",
		Tags:        []string{"premises"},
		Errors:      []int{http.StatusNotFound, http.StatusRequestEntityTooLarge},
	}, h.BulkUpsertPremises)

	huma.Register(api, huma.Operation{
		OperationID: "list-premises",
		Method:      http.MethodGet,
		Path:        "/api/v1/objects/{id}/premises",
		Summary:     "List premises",
		Description: "Returns an object's units with optional filters and pagination.",
		Tags:        []string{"premises"},
	}, h.ListPremises)
}
