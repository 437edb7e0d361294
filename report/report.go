// Package report joins sales to products, derives revenue and calendar
// columns, and computes the dashboard aggregates over the result.
package report

// Report bundles every aggregate the dashboard shows.
// The "orders by" breakdowns count line items, matching a row count plot.
type Report struct {
	Summary             Summary                  `json:"summary"`
	RevenueByChannel    Grouped                  `json:"revenueByChannel"`
	RevenueByCategory   Grouped                  `json:"revenueByCategory"`
	RevenueByGroup      Grouped                  `json:"revenueByGroup"`
	OrdersByCategory    Grouped                  `json:"ordersByCategory"`
	OrdersBySalesperson Grouped                  `json:"ordersBySalesperson"`
	RevenueByQuarter    Grouped                  `json:"revenueByQuarter"`
	RevenueByMonth      Grouped                  `json:"revenueByMonth"`
	Salespeople         []SalespersonPerformance `json:"salespeople"`
	TopSalesperson      *SalespersonPerformance  `json:"topSalesperson"`
}

type breakdown struct {
	dest   *Grouped
	dim    Dimension
	metric Metric
	op     Op
	byKey  bool
}

// Build computes the full report from enriched rows.
func Build(rows []EnrichedSale) (*Report, error) {
	r := &Report{Summary: Summarize(rows)}

	breakdowns := []breakdown{
		{&r.RevenueByChannel, DimChannel, MetricSalesAmount, OpSum, false},
		{&r.RevenueByCategory, DimProductCategory, MetricSalesAmount, OpSum, false},
		{&r.RevenueByGroup, DimProductGroup, MetricSalesAmount, OpSum, false},
		{&r.OrdersByCategory, DimProductCategory, MetricOrderNumber, OpCount, false},
		{&r.OrdersBySalesperson, DimSalesperson, MetricOrderNumber, OpCount, false},
		{&r.RevenueByQuarter, DimQuarter, MetricSalesAmount, OpSum, true},
		{&r.RevenueByMonth, DimMonth, MetricSalesAmount, OpSum, true},
	}
	for _, b := range breakdowns {
		g, err := GroupBy(rows, b.dim, b.metric, b.op)
		if err != nil {
			return nil, err
		}
		if b.byKey {
			g = g.SortedByKey()
		}
		*b.dest = g
	}

	r.Salespeople = SalespersonTable(rows)
	if top, ok := TopSalesperson(r.Salespeople, RankByRevenue); ok {
		r.TopSalesperson = &top
	}
	return r, nil
}
