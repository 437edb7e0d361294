package main

import (
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/export"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/report"
	"github.com/spf13/cobra"
)

func exportCmd(envFiles *[]string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report and the enriched sales to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*envFiles)
			if err != nil {
				return err
			}
			p, err := e.pipeline()
			if err != nil {
				return err
			}
			ds, err := p.Dataset(cmd.Context())
			if err != nil {
				return err
			}
			rep, err := report.Build(ds.Rows)
			if err != nil {
				return err
			}
			if err := export.Save(out, ds.Rows, rep); err != nil {
				return err
			}
			e.logger.WithField("path", out).Info("workbook written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "sales-report.xlsx", "Output workbook path")
	return cmd
}
