package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apiclient "github.com/ovbilous/priceboard/internal/api/client"
)

func objectsCmd() *cobra.Command {
	objectsRoot := &cobra.Command{
		Use:   "objects",
		Short: "Manage real-estate objects",
		Long: "Create, inspect, update, and delete real-estate objects.\n" +
			"An object is the aggregate root holding premises, income plans,\n" +
			"and pricing config revisions.",
	}

	objectsRoot.AddCommand(
		objectsCreateCmd(),
		objectsListCmd(),
		objectsGetCmd(),
		objectsUpdateCmd(),
		objectsDeleteCmd(),
	)

	return objectsRoot
}

func objectsCreateCmd() *cobra.Command {
	var (
		name           string
		status         string
		pricePerSqm    string
		oversoldMethod string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty object",
		Example: `  pbctl objects create --name "Harbor View"

  pbctl objects create --name "Harbor View" --oversold-method area`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			obj, err := c.CreateObject(context.Background(), &apiclient.CreateObjectParams{
				Name:               name,
				Status:             status,
				CurrentPricePerSqm: pricePerSqm,
				OversoldMethod:     oversoldMethod,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(obj)
			}

			fmt.Printf("Created object %d: %s\n", obj.ID, obj.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "object name (required)")
	cmd.Flags().StringVar(&status, "status", "", "object status")
	cmd.Flags().StringVar(&pricePerSqm, "price-per-sqm", "", "current price per m2")
	cmd.Flags().StringVar(&oversoldMethod, "oversold-method", "", "soldout method (pieces, area)")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))

	return cmd
}

func objectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List all objects",
		Example: `  pbctl objects list`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListObjects(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Objects) == 0 {
				fmt.Println("No objects found.")
				return nil
			}

			fmt.Printf("Showing %d of %d objects\n\n", len(resp.Objects), resp.Total)
			return printObjectsTable(resp.Objects)
		},
	}
}

func objectsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show object details",
		Example: `  pbctl objects get 1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := newClient()
			obj, err := c.GetObject(context.Background(), id)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(obj)
			}

			return printObjectDetail(obj)
		},
	}
}

func objectsUpdateCmd() *cobra.Command {
	var (
		name           string
		status         string
		pricePerSqm    string
		oversoldMethod string
	)

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update an object's fields",
		Example: `  pbctl objects update 1 --status archived`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := newClient()
			obj, err := c.UpdateObject(context.Background(), id, &apiclient.CreateObjectParams{
				Name:               name,
				Status:             status,
				CurrentPricePerSqm: pricePerSqm,
				OversoldMethod:     oversoldMethod,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(obj)
			}

			fmt.Printf("Updated object %d: %s\n", obj.ID, obj.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "object name")
	cmd.Flags().StringVar(&status, "status", "", "object status")
	cmd.Flags().StringVar(&pricePerSqm, "price-per-sqm", "", "current price per m2")
	cmd.Flags().StringVar(&oversoldMethod, "oversold-method", "", "soldout method (pieces, area)")

	return cmd
}

func objectsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete an object and all its data",
		Example: `  pbctl objects delete 1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := newClient()
			if err := c.DeleteObject(context.Background(), id); err != nil {
				return err
			}

			fmt.Printf("Deleted object %d\n", id)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid object id %q", s)
	}
	return id, nil
}
