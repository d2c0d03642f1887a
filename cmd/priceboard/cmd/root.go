// Package cmd implements the CLI commands for the priceboard server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "priceboard",
	Short: "Per-unit pricing engine for real-estate objects",
	Long: "An API-first service that prices units inside real-estate objects: " +
		"it ranks unit attributes, scores units against sold comparables, " +
		"distributes value over the population with preset curves, and " +
		"computes per-unit prices bounded by liquidation-refusal rates.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
