package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ovbilous/priceboard/internal/engine"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printObjectsTable(objects []domain.RealEstateObject) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tSTATUS\tPRICE/M2\tOVERSOLD\tUPDATED\n")
	for i := range objects {
		o := &objects[i]
		tw.writef("%d\t%s\t%s\t%s\t%s\t%s\n",
			o.ID,
			truncate(o.Name, 40),
			o.Status,
			o.CurrentPricePerSqm,
			o.OversoldMethod,
			o.UpdatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func printObjectDetail(o *domain.RealEstateObject) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%d\n", o.ID)
	tw.writef("Name:\t%s\n", o.Name)
	tw.writef("Status:\t%s\n", o.Status)
	tw.writef("Price/m2:\t%s\n", o.CurrentPricePerSqm)
	tw.writef("Oversold method:\t%s\n", o.OversoldMethod)
	tw.writef("Premises:\t%d\n", len(o.Premises))
	tw.writef("Income plans:\t%d\n", len(o.IncomePlans))
	tw.writef("Config revisions:\t%d\n", len(o.PricingConfigs))
	tw.writef("Created:\t%s\n", o.CreatedAt.Format("2006-01-02 15:04:05"))
	tw.writef("Updated:\t%s\n", o.UpdatedAt.Format("2006-01-02 15:04:05"))
	return tw.finish()
}

func printPremisesTable(premises []domain.Premises) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tPREMISES\tFLOOR\tUNIT\tAREA M2\tROOMS\tSTATUS\tPRICE/M\n")
	for i := range premises {
		p := &premises[i]
		tw.writef("%d\t%s\t%d\t%d\t%.2f\t%d\t%s\t%.2f\n",
			p.ID,
			truncate(p.PremisesID, 20),
			p.Floor,
			p.NumberOfUnit,
			p.TotalAreaM2,
			p.NumberOfRooms,
			p.Status,
			p.PricePerMeter,
		)
	}
	return tw.finish()
}

func printIncomePlansTable(plans []domain.IncomePlan) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTYPE\tBEGIN\tEND\tAREA M2\tREVENUE\tPRICE/M2\tPRICE/M2 END\n")
	for i := range plans {
		p := &plans[i]
		tw.writef("%d\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			p.ID,
			p.PropertyType,
			p.PeriodBegin.Format("2006-01-02"),
			p.PeriodEnd.Format("2006-01-02"),
			p.AreaM2,
			p.PlannedSalesRevenue,
			p.PricePerSqm,
			p.PricePerSqmEnd,
		)
	}
	return tw.finish()
}

func printPricingConfigsTable(configs []domain.PricingConfig) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tCREATED\tFIELDS\tSIGMA\tTHRESHOLD\tMIN LIQ\tMAX LIQ\n")
	for i := range configs {
		c := &configs[i]
		selected := 0
		for _, on := range c.Content.DynamicConfig.ImportantFields {
			if on {
				selected++
			}
		}
		tw.writef("%d\t%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\n",
			c.ID,
			c.CreatedAt.Format("2006-01-02 15:04:05"),
			selected,
			c.Content.StaticConfig.Sigma,
			c.Content.StaticConfig.SimilarityThreshold,
			c.Content.StaticConfig.MinLiqRefusalPrice,
			c.Content.StaticConfig.MaxLiqRefusalPrice,
		)
	}
	return tw.finish()
}

func printDistributionConfigsTable(configs []domain.DistributionConfig) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tFUNCTION\tMEAN\tSTDDEV\tMEAN1\tMEAN2\n")
	for i := range configs {
		c := &configs[i]
		tw.writef("%d\t%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\n",
			c.ID,
			truncate(c.Name, 30),
			c.FunctionType,
			c.Params.Mean,
			c.Params.StdDev,
			c.Params.Mean1,
			c.Params.Mean2,
		)
	}
	return tw.finish()
}

func printRepriceResult(res *engine.RepriceResult) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Soldout ratio:\t%.4f\n", res.SoldoutRatio)
	tw.writef("Onboarding price:\t%.2f\n", res.OnboardingPrice)
	tw.writef("Total cond cost:\t%.2f\n", res.TotalCondCost)
	tw.writef("Onboarding spread:\t%.4f\n", res.Process.OnboardingSpread)
	tw.writef("Compensation rate:\t%.4f\n", res.Process.CompensationRate)
	tw.writef("Persisted:\t%v\n", res.Persisted)
	tw.writef("\n")
	tw.writef("UNIT\tPREMISES\tFLOOR\tNO.\tSCORING\tCOND VALUE\tCOST SHARE\tPRICE\n")
	for i := range res.Rows {
		r := &res.Rows[i]
		tw.writef("%d\t%s\t%d\t%d\t%s\t%.4f\t%.4f\t%s\n",
			r.UnitID,
			truncate(r.PremisesID, 20),
			r.Floor,
			r.Number,
			r.Scoring,
			r.FitCondValue,
			r.CostShare,
			r.Price,
		)
	}
	return tw.finish()
}

func printChessboard(view *engine.ChessboardView) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("FLOOR")
	for _, u := range view.Units {
		tw.writef("\t%d", u)
	}
	tw.writef("\n")
	for i, floor := range view.Floors {
		tw.writef("%d", floor)
		for _, cell := range view.Cells[i] {
			if cell == "" {
				cell = "-"
			}
			tw.writef("\t%s", cell)
		}
		tw.writef("\n")
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
