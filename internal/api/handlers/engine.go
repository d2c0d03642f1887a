package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ovbilous/priceboard/internal/engine"
	"github.com/ovbilous/priceboard/internal/store"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

// EngineHandler exposes the pricing pipeline over HTTP.
type EngineHandler struct {
	engine *engine.Engine
}

// NewEngineHandler creates a new EngineHandler.
func NewEngineHandler(eng *engine.Engine) *EngineHandler {
	return &EngineHandler{engine: eng}
}

// --- Input/Output types ---

// GetPriceInput is the input for the object-level price preview.
type GetPriceInput struct {
	ID           int64   `path:"id"           doc:"Object ID"`
	// Mode is not enum-constrained: the "Oh, Elon" mode name contains a
	// comma, which the enum tag syntax cannot carry. Unknown modes price
	// as Regular.
	Mode         string  `query:"mode"        doc:"Engine mode (Regular or Oh, Elon)"`
	Contribution float64 `query:"contribution" doc:"Normalized contribution of the unit"`
}

// GetPriceOutput is the price preview with its audit block.
type GetPriceOutput struct {
	Body struct {
		Price   string                    `json:"price"`
		Process domain.CalculationProcess `json:"process"`
	}
}

// GetChessboardInput is the input for the chessboard view.
type GetChessboardInput struct {
	ID             int64  `path:"id"              doc:"Object ID"`
	Metric         string `query:"metric"         doc:"Cell metric" enum:"number,scoring,price_per_meter,preset,"`
	DistributionID int64  `query:"distribution_id" doc:"Preset for the preset metric (0 = uniform)"`
}

// GetChessboardOutput is the rendered grid.
type GetChessboardOutput struct {
	Body engine.ChessboardView
}

// RepriceInput is the input for one repricing run.
type RepriceInput struct {
	ID   int64 `path:"id" doc:"Object ID"`
	Body struct {
		Mode           string `json:"mode,omitempty"            doc:"Engine mode override (Regular or Oh, Elon)"`
		DistributionID int64  `json:"distribution_id,omitempty" doc:"Preset curve (0 = uniform)"`
		Persist        bool   `json:"persist,omitempty"         doc:"Write prices back to premises"`
	}
}

// RepriceOutput is the full repricing result.
type RepriceOutput struct {
	Body engine.RepriceResult
}

// --- Handlers ---

// GetPrice previews the object-level price for a given contribution without
// touching per-unit state.
func (h *EngineHandler) GetPrice(
	ctx context.Context,
	input *GetPriceInput,
) (*GetPriceOutput, error) {
	price, process, err := h.engine.Price(
		ctx, input.ID, domain.EngineMode(input.Mode), input.Contribution,
	)
	if err != nil {
		return nil, mapEngineError(err)
	}

	resp := &GetPriceOutput{}
	resp.Body.Price = price
	resp.Body.Process = process
	return resp, nil
}

// GetChessboard returns the floor-by-unit grid with the requested metric.
func (h *EngineHandler) GetChessboard(
	ctx context.Context,
	input *GetChessboardInput,
) (*GetChessboardOutput, error) {
	view, err := h.engine.Chessboard(
		ctx, input.ID,
		engine.ChessboardMetric(input.Metric),
		input.DistributionID,
	)
	if err != nil {
		return nil, mapEngineError(err)
	}

	return &GetChessboardOutput{Body: *view}, nil
}

// Reprice runs the full pipeline for one object and optionally persists
// the computed prices.
func (h *EngineHandler) Reprice(
	ctx context.Context,
	input *RepriceInput,
) (*RepriceOutput, error) {
	result, err := h.engine.Reprice(ctx, engine.RepriceRequest{
		ReoID:          input.ID,
		Mode:           domain.EngineMode(input.Body.Mode),
		DistributionID: input.Body.DistributionID,
		Persist:        input.Body.Persist,
	})
	if err != nil {
		return nil, mapEngineError(err)
	}

	return &RepriceOutput{Body: *result}, nil
}

// mapEngineError translates engine failures onto HTTP statuses.
func mapEngineError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound("object not found")
	case errors.Is(err, engine.ErrNoPricingConfig):
		return huma.Error409Conflict("object has no pricing config")
	case errors.Is(err, engine.ErrDailyLimitReached):
		return huma.Error429TooManyRequests("daily repricing limit reached")
	default:
		return huma.Error500InternalServerError("pricing failed: " + err.Error())
	}
}

// RegisterEngineRoutes registers pricing endpoints with the Huma API.
func RegisterEngineRoutes(api huma.API, h *EngineHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-price",
		Method:      http.MethodGet,
		Path:        "/api/v1/objects/{id}/price",
		Summary:     "Preview the object price",
		Description: "Computes the object-level price for a contribution value.",
		Tags:        []string{"engine"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetPrice)

	huma.Register(api, huma.Operation{
		OperationID: "get-chessboard",
		Method:      http.MethodGet,
		Path:        "/api/v1/objects/{id}/chessboard",
		Summary:     "Get the chessboard view",
		Description: "Returns the floor-by-unit grid with the requested cell metric.",
		Tags:        []string{"engine"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetChessboard)

	huma.Register(api, huma.Operation{
		OperationID: "reprice-object",
		Method:      http.MethodPost,
		Path:        "/api/v1/objects/{id}/reprice",
		Summary:     "Reprice an object",
		Description: "Runs scoring, preset assignment, and price calculation over all units.",
		Tags:        []string{"engine"},
		Errors: []int{
			http.StatusNotFound,
			http.StatusConflict,
			http.StatusTooManyRequests,
		},
	}, h.Reprice)
}
