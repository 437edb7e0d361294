// Package export writes the dashboard report to an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary     = "Summary"
	SheetSales       = "Sales"
	SheetSalespeople = "Salespeople"
)

var salesHeadings = []string{
	"OrderNumber", "ProductKey", "Quantity", "OrderDate", "Channel", "Salesperson",
	"ProductCategory", "ProductGroup", "UnitPrice", "SalesAmount", "Quarter", "Month",
}

type groupedSheet struct {
	name    string
	heading string
	g       report.Grouped
}

// breakdownSheets lists the grouped aggregates that get a sheet each.
func breakdownSheets(r *report.Report) []groupedSheet {
	return []groupedSheet{
		{"Revenue by Channel", "TotalRevenue", r.RevenueByChannel},
		{"Revenue by Category", "TotalRevenue", r.RevenueByCategory},
		{"Revenue by Group", "TotalRevenue", r.RevenueByGroup},
		{"Orders by Category", "TotalOrders", r.OrdersByCategory},
		{"Orders by Salesperson", "TotalOrders", r.OrdersBySalesperson},
		{"Revenue by Quarter", "TotalRevenue", r.RevenueByQuarter},
		{"Revenue by Month", "TotalRevenue", r.RevenueByMonth},
	}
}

// NewWorkbook lays out the report and the enriched rows in a new workbook.
// The caller owns the returned file and must close it.
func NewWorkbook(rows []report.EnrichedSale, r *report.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, r); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSales(f, rows); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSalespeople(f, r.Salespeople); err != nil {
		f.Close()
		return nil, err
	}
	for _, b := range breakdownSheets(r) {
		if err := writeGrouped(f, b.name, b.heading, b.g); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Write streams the workbook to w.
func Write(w io.Writer, rows []report.EnrichedSale, r *report.Report) error {
	f, err := NewWorkbook(rows, r)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// Save writes the workbook to a file.
func Save(path string, rows []report.EnrichedSale, r *report.Report) error {
	f, err := NewWorkbook(rows, r)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeSummary(f *excelize.File, r *report.Report) error {
	var average any = "undefined"
	if r.Summary.AverageOrderValue.Valid {
		average = number(r.Summary.AverageOrderValue.Decimal)
	}
	rows := [][]any{
		{"Metric", "Value"},
		{"TotalRevenue", number(r.Summary.TotalRevenue)},
		{"TotalOrders", r.Summary.TotalOrders},
		{"AverageOrderValue", average},
		{"LineItems", r.Summary.LineItems},
	}
	if r.TopSalesperson != nil {
		rows = append(rows, []any{"TopSalesperson", r.TopSalesperson.Salesperson})
	}
	return setRows(f, SheetSummary, rows)
}

func writeSales(f *excelize.File, sales []report.EnrichedSale) error {
	if _, err := f.NewSheet(SheetSales); err != nil {
		return err
	}
	rows := make([][]any, 0, len(sales)+1)
	rows = append(rows, headings(salesHeadings))
	for _, s := range sales {
		rows = append(rows, []any{
			s.OrderNumber, s.ProductKey, s.Quantity, s.OrderDate.Format("2006-01-02"), s.Channel, s.Salesperson,
			s.ProductCategory, s.ProductGroup, number(s.UnitPrice), number(s.SalesAmount), s.Quarter, s.Month,
		})
	}
	return setRows(f, SheetSales, rows)
}

func writeSalespeople(f *excelize.File, table []report.SalespersonPerformance) error {
	if _, err := f.NewSheet(SheetSalespeople); err != nil {
		return err
	}
	rows := [][]any{{"Salesperson", "TotalRevenue", "AverageOrderValue", "TotalOrders"}}
	for _, p := range table {
		rows = append(rows, []any{p.Salesperson, number(p.TotalRevenue), number(p.AverageOrderValue), p.TotalOrders})
	}
	return setRows(f, SheetSalespeople, rows)
}

func writeGrouped(f *excelize.File, sheet, heading string, g report.Grouped) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]any{{string(g.Dimension), heading}}
	for _, gr := range g.Groups {
		rows = append(rows, []any{gr.Key, number(gr.Value)})
	}
	return setRows(f, sheet, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func headings(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}

func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
