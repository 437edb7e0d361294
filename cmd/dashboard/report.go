package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/report"
	"github.com/spf13/cobra"
)

func reportCmd(envFiles *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard figures as tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*envFiles)
			if err != nil {
				return err
			}
			p, err := e.pipeline()
			if err != nil {
				return err
			}
			rep, err := p.Report(cmd.Context())
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), rep)
		},
	}
}

func printReport(out io.Writer, rep *report.Report) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	avg := "undefined"
	if v, err := rep.Summary.Average(); err == nil {
		avg = "$" + v.StringFixed(2)
	}
	fmt.Fprintf(w, "Total Revenue:\t$%s\n", rep.Summary.TotalRevenue.StringFixed(2))
	fmt.Fprintf(w, "Total Orders:\t%d\n", rep.Summary.TotalOrders)
	fmt.Fprintf(w, "Average Order Value:\t%s\n", avg)

	sections := []struct {
		title string
		g     report.Grouped
	}{
		{"Revenue by Sales Channel", rep.RevenueByChannel},
		{"Revenue by Product Category", rep.RevenueByCategory},
		{"Revenue by Product Group", rep.RevenueByGroup},
		{"Orders by Product Category", rep.OrdersByCategory},
		{"Orders by Salesperson", rep.OrdersBySalesperson},
		{"Revenue by Quarter", rep.RevenueByQuarter},
		{"Revenue by Month", rep.RevenueByMonth},
	}
	for _, s := range sections {
		fmt.Fprintf(w, "\n%s\n", s.title)
		for _, slice := range s.g.Pie() {
			share := "-"
			if slice.Share.Valid {
				share = slice.Share.Decimal.Shift(2).StringFixed(1) + "%"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\n", slice.Label, slice.Value.StringFixed(2), share)
		}
	}

	fmt.Fprintf(w, "\nSalesperson Performance\n")
	fmt.Fprintf(w, "  Salesperson\tTotalRevenue\tAverageOrderValue\tTotalOrders\n")
	for _, p := range rep.Salespeople {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d\n", p.Salesperson, p.TotalRevenue.StringFixed(2), p.AverageOrderValue.StringFixed(2), p.TotalOrders)
	}
	if rep.TopSalesperson != nil {
		fmt.Fprintf(w, "\nTop Salesperson by Revenue:\t%s\t$%s\n", rep.TopSalesperson.Salesperson, rep.TopSalesperson.TotalRevenue.StringFixed(2))
	}
	return w.Flush()
}
