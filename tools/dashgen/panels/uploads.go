package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// UploadRowsRate returns a timeseries panel showing ingested spreadsheet rows
// per minute by kind.
func UploadRowsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Rows / min").
		Description("Rate of spreadsheet rows ingested per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(priceboard_upload_rows_total{job="priceboard"}[5m])) by (kind) * 60`,
			"{{kind}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// UploadErrors returns a timeseries panel showing rejected upload rows per
// minute.
func UploadErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Rejected / min").
		Description("Rate of rejected upload rows per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`priceboard:upload_errors:rate5m * 60`, "rejected/min", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
