package report

import "github.com/shopspring/decimal"

// BarPoint is one bar of a category → value chart.
type BarPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// PieSlice is one slice of a category → proportion chart. Share is the
// fraction of the total, null when the total is zero.
type PieSlice struct {
	Label string              `json:"label"`
	Value decimal.Decimal     `json:"value"`
	Share decimal.NullDecimal `json:"share"`
}

func (g Grouped) Bar() []BarPoint {
	points := make([]BarPoint, len(g.Groups))
	for i, gr := range g.Groups {
		points[i] = BarPoint{Label: gr.Key, Value: gr.Value}
	}
	return points
}

func (g Grouped) Pie() []PieSlice {
	total := g.Total()
	slices := make([]PieSlice, len(g.Groups))
	for i, gr := range g.Groups {
		slices[i] = PieSlice{Label: gr.Key, Value: gr.Value}
		if !total.IsZero() {
			slices[i].Share = decimal.NewNullDecimal(gr.Value.Div(total))
		}
	}
	return slices
}
