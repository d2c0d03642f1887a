package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/ovbilous/priceboard/internal/api/client"
)

func premisesCmd() *cobra.Command {
	premisesRoot := &cobra.Command{
		Use:   "premises",
		Short: "Query and upload premises",
		Long: "Query an object's units and bulk-upload parsed spreadsheet rows.\n" +
			"Uploads upsert by premises id; rows without one get a generated id.",
	}

	premisesRoot.AddCommand(
		premisesListCmd(),
		premisesUploadCmd(),
	)

	return premisesRoot
}

func premisesListCmd() *cobra.Command {
	var (
		status   string
		entrance string
		minFloor int
		maxFloor int
		limit    int
		offset   int
		orderBy  string
	)

	cmd := &cobra.Command{
		Use:   "list <reo-id>",
		Short: "List an object's units with optional filters",
		Example: `  # List all units of object 1
  pbctl premises list 1

  # Only sold units on floors 2 through 5
  pbctl premises list 1 --status sold --min-floor 2 --max-floor 5

  # Sort by price with pagination
  pbctl premises list 1 --order-by price_per_meter --limit 20 --offset 40`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reoID, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := newClient()
			resp, err := c.ListPremises(context.Background(), reoID, &apiclient.ListPremisesParams{
				Status:   status,
				Entrance: entrance,
				MinFloor: minFloor,
				MaxFloor: maxFloor,
				Limit:    limit,
				Offset:   offset,
				OrderBy:  orderBy,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Premises) == 0 {
				fmt.Println("No premises found.")
				return nil
			}

			fmt.Printf("Showing %d of %d premises\n\n", len(resp.Premises), resp.Total)
			return printPremisesTable(resp.Premises)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "status filter (sold, available, reserved)")
	cmd.Flags().StringVar(&entrance, "entrance", "", "entrance filter")
	cmd.Flags().IntVar(&minFloor, "min-floor", 0, "minimum floor filter")
	cmd.Flags().IntVar(&maxFloor, "max-floor", 0, "maximum floor filter")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	cmd.Flags().
		StringVar(&orderBy, "order-by", "", "sort order (floor, number, total_area_m2, price_per_meter)")

	return cmd
}

func premisesUploadCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "upload <reo-id>",
		Short: "Bulk-upsert units from a JSON rows file",
		Long: "Upload parsed spreadsheet rows for an object. The file holds a JSON\n" +
			"array of row objects keyed by the original spreadsheet headers.",
		Example: `  pbctl premises upload 1 --file rows.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reoID, err := parseID(args[0])
			if err != nil {
				return err
			}

			rows, err := readRowsFile(file)
			if err != nil {
				return err
			}

			c := newClient()
			written, err := c.UploadPremises(context.Background(), reoID, rows)
			if err != nil {
				return err
			}

			fmt.Printf("Wrote %d premises to object %d\n", written, reoID)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON rows file (required)")
	cobra.CheckErr(cmd.MarkFlagRequired("file"))

	return cmd
}

func readRowsFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading rows file: %w", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing rows file: %w", err)
	}
	return rows, nil
}
