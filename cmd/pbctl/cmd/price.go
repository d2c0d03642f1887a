package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/ovbilous/priceboard/internal/api/client"
)

func priceCmd() *cobra.Command {
	var (
		mode         string
		contribution float64
	)

	cmd := &cobra.Command{
		Use:   "price <reo-id>",
		Short: "Preview the object-level price",
		Long: "Preview the object-level price for a contribution value without\n" +
			"touching stored prices.",
		Example: `  pbctl price 1 --contribution 0.3

  pbctl price 1 --mode "Oh, Elon" --contribution 0.3`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reoID, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := newClient()
			resp, err := c.GetPrice(context.Background(), reoID, mode, contribution)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			tw := newTabWriter(os.Stdout)
			tw.writef("Price:\t%s\n", resp.Price)
			tw.writef("Onboarding spread:\t%.4f\n", resp.Process.OnboardingSpread)
			tw.writef("Compensation rate:\t%.4f\n", resp.Process.CompensationRate)
			tw.writef("Conditional value:\t%.4f\n", resp.Process.ConditionalValue)
			return tw.finish()
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", `engine mode (Regular, "Oh, Elon")`)
	cmd.Flags().Float64Var(&contribution, "contribution", 0, "unit contribution value")

	return cmd
}

func chessboardCmd() *cobra.Command {
	var (
		metric         string
		distributionID int64
	)

	cmd := &cobra.Command{
		Use:   "chessboard <reo-id>",
		Short: "Render the floor-by-unit grid",
		Example: `  pbctl chessboard 1

  pbctl chessboard 1 --metric scoring

  pbctl chessboard 1 --metric preset --distribution-id 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reoID, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := newClient()
			view, err := c.GetChessboard(context.Background(), reoID, metric, distributionID)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(view)
			}

			return printChessboard(view)
		},
	}
	cmd.Flags().
		StringVar(&metric, "metric", "", "cell metric (number, scoring, price_per_meter, preset)")
	cmd.Flags().Int64Var(&distributionID, "distribution-id", 0, "preset id for the preset metric")

	return cmd
}

func repriceCmd() *cobra.Command {
	var (
		mode           string
		distributionID int64
		persist        bool
	)

	cmd := &cobra.Command{
		Use:   "reprice <reo-id>",
		Short: "Run the pricing pipeline for one object",
		Example: `  # Dry run
  pbctl reprice 1

  # Persist computed prices
  pbctl reprice 1 --persist

  # Price with a Gaussian preset
  pbctl reprice 1 --distribution-id 2 --persist`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reoID, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := newClient()
			result, err := c.Reprice(context.Background(), reoID, &apiclient.RepriceParams{
				Mode:           mode,
				DistributionID: distributionID,
				Persist:        persist,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(result)
			}

			fmt.Printf("Repriced %d units of object %d\n\n", len(result.Rows), reoID)
			return printRepriceResult(result)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", `engine mode (Regular, "Oh, Elon")`)
	cmd.Flags().Int64Var(&distributionID, "distribution-id", 0, "preset id (0 means uniform)")
	cmd.Flags().BoolVar(&persist, "persist", false, "write prices back to the database")

	return cmd
}
