// Command dashboard serves and prints the sales dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Sales dashboard over a product catalog and a sales log",
		Long: `Loads the product catalog and the sales line items, joins them on
ProductKey, and reports revenue and order figures.

The data source is configured through the environment (or a .env file):
  DASHBOARD_SOURCE   xlsx | csv | postgres
  PRODUCTS_PATH      product table file
  SALES_PATH         sales table file
`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Env files to load (default .env when present)")

	cmd.AddCommand(
		serveCmd(&envFiles),
		reportCmd(&envFiles),
		exportCmd(&envFiles),
		seedCmd(&envFiles),
	)
	return cmd
}
