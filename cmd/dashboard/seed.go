package main

import (
	"fmt"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/config"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/models"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/source"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func seedCmd(envFiles *[]string) *cobra.Command {
	var (
		products string
		sales    string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load product and sales files into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*envFiles)
			if err != nil {
				return err
			}

			var src source.Source
			switch format {
			case config.SourceWorkbook:
				src = source.NewWorkbook(products, sales, source.Options{})
			case config.SourceCSV:
				src = source.NewCSV(products, sales, source.Options{})
			default:
				return fmt.Errorf("unsupported seed format %q", format)
			}
			tables, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}

			db, err := config.OpenDatabase(e.cfg.Postgres)
			if err != nil {
				return err
			}
			if err := models.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if err := models.NewProductsRepository(db).Upsert(tables.Products); err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
			if err := models.NewSalesRepository(db).ReplaceAll(tables.Sales); err != nil {
				return fmt.Errorf("seed sales: %w", err)
			}

			e.logger.WithFields(logrus.Fields{
				"products": len(tables.Products),
				"sales":    len(tables.Sales),
			}).Info("seeded")
			return nil
		},
	}
	cmd.Flags().StringVar(&products, "products", "data/Product.xlsx", "Product table file")
	cmd.Flags().StringVar(&sales, "sales", "data/SalesData.xlsx", "Sales table file")
	cmd.Flags().StringVar(&format, "format", config.SourceWorkbook, "Input format: xlsx or csv")
	return cmd
}
