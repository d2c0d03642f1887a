package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ovbilous/priceboard/pkg/pricing"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

// ChessboardMetric selects what each cell of the chessboard view displays.
type ChessboardMetric string

// Chessboard metrics.
const (
	MetricNumber  ChessboardMetric = "number"
	MetricScoring ChessboardMetric = "scoring"
	MetricPrice   ChessboardMetric = "price_per_meter"
	MetricPreset  ChessboardMetric = "preset"
)

// ChessboardView is the floor × unit grid with one rendered value per cell.
// Cells[f][u] corresponds to Floors[f] and Units[u]; empty cells hold "".
type ChessboardView struct {
	Floors []int      `json:"floors"`
	Units  []int      `json:"units"`
	Cells  [][]string `json:"cells"`
	Metric string     `json:"metric"`
}

// Chessboard builds the grid view of an object's units with the requested
// metric. Scoring and preset metrics run the scoring pass over the
// population; objects without a pricing config render those as zeros.
func (e *Engine) Chessboard(
	ctx context.Context,
	reoID int64,
	metric ChessboardMetric,
	distributionID int64,
) (*ChessboardView, error) {
	obj, err := e.store.GetObject(ctx, reoID)
	if err != nil {
		return nil, fmt.Errorf("loading object %d: %w", reoID, err)
	}

	units := obj.Premises
	board := domain.BuildChessboard(units)

	var scores, presets []float64
	switch metric {
	case MetricScoring, MetricPreset:
		if content, ok := obj.ActiveContent(); ok {
			scores = e.scorePopulation(units, content)
		} else {
			scores = make([]float64, len(units))
		}
		if metric == MetricPreset {
			curve, err := e.presetCurve(ctx, distributionID, len(units))
			if err != nil {
				return nil, err
			}
			presets = pricing.AssignPresetValues(scores, curve)
		}
	case MetricNumber, MetricPrice:
	default:
		metric = MetricNumber
	}

	view := &ChessboardView{
		Floors: board.Floors,
		Units:  board.Units,
		Cells:  make([][]string, len(board.Floors)),
		Metric: string(metric),
	}

	for f, floor := range board.Floors {
		view.Cells[f] = make([]string, len(board.Units))
		for u, unitNo := range board.Units {
			idx := board.At(floor, unitNo)
			if idx < 0 {
				continue
			}
			view.Cells[f][u] = cellValue(metric, &units[idx], scores, presets, idx)
		}
	}

	return view, nil
}

func cellValue(
	metric ChessboardMetric,
	unit *domain.Premises,
	scores, presets []float64,
	idx int,
) string {
	switch metric {
	case MetricScoring:
		return formatScore(scores[idx])
	case MetricPreset:
		return strconv.FormatFloat(presets[idx], 'f', 4, 64)
	case MetricPrice:
		return domain.FormatPrice(unit.PricePerMeter)
	default:
		return strconv.Itoa(unit.Number)
	}
}
