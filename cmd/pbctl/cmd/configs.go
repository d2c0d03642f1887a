package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/ovbilous/priceboard/internal/api/client"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

func configsCmd() *cobra.Command {
	configsRoot := &cobra.Command{
		Use:   "configs",
		Short: "Manage pricing config revisions",
		Long: "Append and list an object's pricing config revisions. Revisions\n" +
			"are append-only; scoring uses the first revision's weights and the\n" +
			"newest revision's ranging.",
	}

	configsRoot.AddCommand(
		configsAppendCmd(),
		configsListCmd(),
	)

	return configsRoot
}

func configsAppendCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "append <reo-id>",
		Short: "Append a pricing config revision from a JSON file",
		Long: "Append a new config revision for an object. The file holds one\n" +
			"pricing content document with dynamicConfig, staticConfig, and\n" +
			"ranging sections.",
		Example: `  pbctl configs append 1 --file config.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reoID, err := parseID(args[0])
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file) //nolint:gosec // path from trusted CLI flag
			if err != nil {
				return fmt.Errorf("reading config file: %w", err)
			}

			var content domain.PricingContent
			if err := json.Unmarshal(data, &content); err != nil {
				return fmt.Errorf("parsing config file: %w", err)
			}

			c := newClient()
			cfg, err := c.AppendPricingConfig(context.Background(), reoID, &content)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cfg)
			}

			fmt.Printf("Appended config revision %d to object %d\n", cfg.ID, reoID)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "pricing content JSON file (required)")
	cobra.CheckErr(cmd.MarkFlagRequired("file"))

	return cmd
}

func configsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list <reo-id>",
		Short:   "List an object's config revisions, oldest first",
		Example: `  pbctl configs list 1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reoID, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := newClient()
			resp, err := c.ListPricingConfigs(context.Background(), reoID)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Configs) == 0 {
				fmt.Println("No pricing configs found.")
				return nil
			}

			fmt.Printf("Showing %d of %d config revisions\n\n", len(resp.Configs), resp.Total)
			return printPricingConfigsTable(resp.Configs)
		},
	}
}

func presetsCmd() *cobra.Command {
	presetsRoot := &cobra.Command{
		Use:   "presets",
		Short: "Manage distribution presets",
		Long: "Create and list named distribution presets. A preset names a value\n" +
			"curve (Uniform, Gaussian, Bimodal) applied over the scored unit\n" +
			"population during repricing.",
	}

	presetsRoot.AddCommand(
		presetsCreateCmd(),
		presetsListCmd(),
	)

	return presetsRoot
}

func presetsCreateCmd() *cobra.Command {
	var (
		name     string
		function string
		mean     float64
		stdDev   float64
		mean1    float64
		mean2    float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a distribution preset",
		Example: `  pbctl presets create --name "Mid peak" --function Gaussian --mean 0.5 --stddev 0.15

  pbctl presets create --name "Twin peaks" --function Bimodal --mean1 0.25 --mean2 0.75`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			cfg, err := c.CreateDistributionConfig(
				context.Background(),
				&apiclient.CreateDistributionConfigParams{
					Name:         name,
					FunctionType: function,
					Params: domain.DistributionParams{
						Mean:   mean,
						StdDev: stdDev,
						Mean1:  mean1,
						Mean2:  mean2,
					},
				},
			)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cfg)
			}

			fmt.Printf("Created preset %d: %s (%s)\n", cfg.ID, cfg.Name, cfg.FunctionType)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "preset name (required)")
	cmd.Flags().StringVar(&function, "function", "", "function type (Uniform, Gaussian, Bimodal)")
	cmd.Flags().Float64Var(&mean, "mean", 0, "Gaussian mean")
	cmd.Flags().Float64Var(&stdDev, "stddev", 0, "Gaussian standard deviation")
	cmd.Flags().Float64Var(&mean1, "mean1", 0, "Bimodal first mean")
	cmd.Flags().Float64Var(&mean2, "mean2", 0, "Bimodal second mean")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	cobra.CheckErr(cmd.MarkFlagRequired("function"))

	return cmd
}

func presetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List all distribution presets",
		Example: `  pbctl presets list`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListDistributionConfigs(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Configs) == 0 {
				fmt.Println("No distribution presets found.")
				return nil
			}

			fmt.Printf("Showing %d of %d presets\n\n", len(resp.Configs), resp.Total)
			return printDistributionConfigsTable(resp.Configs)
		},
	}
}
