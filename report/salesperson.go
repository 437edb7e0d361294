package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SalespersonPerformance is one row of the salesperson table.
// AverageOrderValue is the mean SalesAmount of the salesperson's line items.
type SalespersonPerformance struct {
	Salesperson       string          `json:"Salesperson"`
	TotalRevenue      decimal.Decimal `json:"TotalRevenue"`
	AverageOrderValue decimal.Decimal `json:"AverageOrderValue"`
	TotalOrders       int             `json:"TotalOrders"`
}

// SalespersonTable computes one performance row per salesperson, in order of
// first appearance.
func SalespersonTable(rows []EnrichedSale) []SalespersonPerformance {
	// the three aggregates come from the same partitioning, so errors are impossible
	revenue, _ := GroupBy(rows, DimSalesperson, MetricSalesAmount, OpSum)
	average, _ := GroupBy(rows, DimSalesperson, MetricSalesAmount, OpMean)
	orders, _ := GroupBy(rows, DimSalesperson, MetricOrderNumber, OpCountDistinct)

	table := make([]SalespersonPerformance, len(revenue.Groups))
	for i, g := range revenue.Groups {
		table[i] = SalespersonPerformance{
			Salesperson:       g.Key,
			TotalRevenue:      g.Value,
			AverageOrderValue: average.Groups[i].Value,
			TotalOrders:       int(orders.Groups[i].Value.IntPart()),
		}
	}
	return table
}

// RankBy selects the column a salesperson ranking uses.
type RankBy string

const (
	RankByRevenue RankBy = "revenue"
	RankByOrders  RankBy = "orders"
	RankByAverage RankBy = "average"
)

func ParseRankBy(s string) (RankBy, error) {
	switch RankBy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RankByRevenue:
		return RankByRevenue, nil
	case RankByOrders:
		return RankByOrders, nil
	case RankByAverage:
		return RankByAverage, nil
	}
	return "", fmt.Errorf("%w: rank by %q", ErrUnknownMetric, s)
}

func (b RankBy) value(p SalespersonPerformance) decimal.Decimal {
	switch b {
	case RankByOrders:
		return decimal.NewFromInt(int64(p.TotalOrders))
	case RankByAverage:
		return p.AverageOrderValue
	}
	return p.TotalRevenue
}

// TopSalesperson returns the best row of table by the given column.
// Ties go to the salesperson appearing first.
func TopSalesperson(table []SalespersonPerformance, by RankBy) (SalespersonPerformance, bool) {
	return TopBy(table, by.value)
}
