package report

import "github.com/shopspring/decimal"

// Summary holds the headline figures of the dashboard.
// AverageOrderValue is null when there are no orders.
type Summary struct {
	TotalRevenue      decimal.Decimal     `json:"TotalRevenue"`
	TotalOrders       int                 `json:"TotalOrders"`
	LineItems         int                 `json:"LineItems"`
	AverageOrderValue decimal.NullDecimal `json:"AverageOrderValue"`
}

func Summarize(rows []EnrichedSale) Summary {
	s := Summary{TotalRevenue: decimal.Zero, LineItems: len(rows)}
	orders := make(map[string]struct{})
	for i := range rows {
		s.TotalRevenue = s.TotalRevenue.Add(rows[i].SalesAmount)
		orders[rows[i].OrderNumber] = struct{}{}
	}
	s.TotalOrders = len(orders)
	if s.TotalOrders > 0 {
		s.AverageOrderValue = decimal.NewNullDecimal(s.TotalRevenue.Div(decimal.NewFromInt(int64(s.TotalOrders))))
	}
	return s
}

// Average returns AverageOrderValue, or ErrNoOrders when it is undefined.
func (s Summary) Average() (decimal.Decimal, error) {
	if !s.AverageOrderValue.Valid {
		return decimal.Zero, ErrNoOrders
	}
	return s.AverageOrderValue.Decimal, nil
}
