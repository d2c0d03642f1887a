package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func plansCmd() *cobra.Command {
	plansRoot := &cobra.Command{
		Use:   "plans",
		Short: "Query and upload income plans",
		Long: "Query an object's income plans and bulk-replace them from parsed\n" +
			"spreadsheet rows. Uploads replace the full plan set atomically.",
	}

	plansRoot.AddCommand(
		plansListCmd(),
		plansUploadCmd(),
	)

	return plansRoot
}

func plansListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list <reo-id>",
		Short:   "List an object's income plans in period order",
		Example: `  pbctl plans list 1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reoID, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := newClient()
			resp, err := c.ListIncomePlans(context.Background(), reoID)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.IncomePlans) == 0 {
				fmt.Println("No income plans found.")
				return nil
			}

			fmt.Printf("Showing %d of %d income plans\n\n", len(resp.IncomePlans), resp.Total)
			return printIncomePlansTable(resp.IncomePlans)
		},
	}
}

func plansUploadCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "upload <reo-id>",
		Short:   "Replace an object's income plans from a JSON rows file",
		Example: `  pbctl plans upload 1 --file plans.json`,
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
			written, err := c.UploadIncomePlans(context.Background(), reoID, rows)
			if err != nil {
				return err
			}

			fmt.Printf("Wrote %d income plans to object %d\n", written, reoID)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON rows file (required)")
	cobra.CheckErr(cmd.MarkFlagRequired("file"))

	return cmd
}
