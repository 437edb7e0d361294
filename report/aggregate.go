package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Dimension is a categorical column sales can be partitioned by.
type Dimension string

const (
	DimChannel         Dimension = "Channel"
	DimProductCategory Dimension = "ProductCategory"
	DimProductGroup    Dimension = "ProductGroup"
	DimSalesperson     Dimension = "Salesperson"
	DimQuarter         Dimension = "Quarter"
	DimMonth           Dimension = "Month"
)

var Dimensions = []Dimension{DimChannel, DimProductCategory, DimProductGroup, DimSalesperson, DimQuarter, DimMonth}

// ParseDimension matches a dimension name case-insensitively.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

func (d Dimension) Value(r *EnrichedSale) string {
	switch d {
	case DimChannel:
		return r.Channel
	case DimProductCategory:
		return r.ProductCategory
	case DimProductGroup:
		return r.ProductGroup
	case DimSalesperson:
		return r.Salesperson
	case DimQuarter:
		return r.Quarter
	case DimMonth:
		return r.Month
	}
	return ""
}

// Metric is a column an aggregate op is applied to.
type Metric string

const (
	MetricSalesAmount Metric = "SalesAmount"
	MetricQuantity    Metric = "Quantity"
	MetricUnitPrice   Metric = "UnitPrice"
	MetricOrderNumber Metric = "OrderNumber"
)

var Metrics = []Metric{MetricSalesAmount, MetricQuantity, MetricUnitPrice, MetricOrderNumber}

func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

func (m Metric) Numeric() bool {
	return m != MetricOrderNumber
}

func (m Metric) number(r *EnrichedSale) decimal.Decimal {
	switch m {
	case MetricSalesAmount:
		return r.SalesAmount
	case MetricQuantity:
		return decimal.NewFromInt(r.Quantity)
	case MetricUnitPrice:
		return r.UnitPrice
	}
	return decimal.Zero
}

func (m Metric) key(r *EnrichedSale) string {
	if m == MetricOrderNumber {
		return r.OrderNumber
	}
	return m.number(r).String()
}

// Op is the aggregate computed inside each partition.
type Op string

const (
	OpSum           Op = "sum"
	OpMean          Op = "mean"
	OpCount         Op = "count"
	OpCountDistinct Op = "count_distinct"
)

var Ops = []Op{OpSum, OpMean, OpCount, OpCountDistinct}

func ParseOp(s string) (Op, error) {
	for _, o := range Ops {
		if strings.EqualFold(string(o), strings.TrimSpace(s)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

// Group is one partition of a grouped aggregate.
type Group struct {
	Key   string          `json:"key"`
	Value decimal.Decimal `json:"value"`
}

// Grouped maps each distinct dimension value to an aggregate.
// Groups are kept in order of first appearance in the input.
type Grouped struct {
	Dimension Dimension `json:"dimension"`
	Metric    Metric    `json:"metric"`
	Op        Op        `json:"op"`
	Groups    []Group   `json:"groups"`
}

type partition struct {
	sum      decimal.Decimal
	rows     int64
	distinct map[string]struct{}
}

// GroupBy partitions rows by dim and applies op to metric in each partition.
// An empty input yields an empty result.
func GroupBy(rows []EnrichedSale, dim Dimension, metric Metric, op Op) (Grouped, error) {
	if _, err := ParseDimension(string(dim)); err != nil {
		return Grouped{}, err
	}
	if _, err := ParseMetric(string(metric)); err != nil {
		return Grouped{}, err
	}
	if _, err := ParseOp(string(op)); err != nil {
		return Grouped{}, err
	}
	if (op == OpSum || op == OpMean) && !metric.Numeric() {
		return Grouped{}, fmt.Errorf("%w: %s of %s", ErrInvalidAggregate, op, metric)
	}

	var keys []string
	parts := make(map[string]*partition)
	for i := range rows {
		r := &rows[i]
		k := dim.Value(r)
		p, ok := parts[k]
		if !ok {
			p = &partition{sum: decimal.Zero}
			if op == OpCountDistinct {
				p.distinct = make(map[string]struct{})
			}
			parts[k] = p
			keys = append(keys, k)
		}
		p.rows++
		switch op {
		case OpSum, OpMean:
			p.sum = p.sum.Add(metric.number(r))
		case OpCountDistinct:
			p.distinct[metric.key(r)] = struct{}{}
		}
	}

	g := Grouped{Dimension: dim, Metric: metric, Op: op, Groups: make([]Group, 0, len(keys))}
	for _, k := range keys {
		p := parts[k]
		var v decimal.Decimal
		switch op {
		case OpSum:
			v = p.sum
		case OpMean:
			// partitions exist only for keys that occurred, so rows > 0
			v = p.sum.Div(decimal.NewFromInt(p.rows))
		case OpCount:
			v = decimal.NewFromInt(p.rows)
		case OpCountDistinct:
			v = decimal.NewFromInt(int64(len(p.distinct)))
		}
		g.Groups = append(g.Groups, Group{Key: k, Value: v})
	}
	return g, nil
}

func (g Grouped) Len() int {
	return len(g.Groups)
}

func (g Grouped) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(g.Groups))
	for _, gr := range g.Groups {
		m[gr.Key] = gr.Value
	}
	return m
}

// Total sums the group values in group order.
func (g Grouped) Total() decimal.Decimal {
	total := decimal.Zero
	for _, gr := range g.Groups {
		total = total.Add(gr.Value)
	}
	return total
}

// Top returns the group with the largest value; ties go to the earliest group.
func (g Grouped) Top() (Group, bool) {
	return TopBy(g.Groups, func(gr Group) decimal.Decimal { return gr.Value })
}

// SortedByKey returns a copy ordered by key, which is chronological for
// Quarter and Month labels.
func (g Grouped) SortedByKey() Grouped {
	out := g.clone()
	sort.SliceStable(out.Groups, func(i, j int) bool { return out.Groups[i].Key < out.Groups[j].Key })
	return out
}

// SortedByValue returns a copy ordered by value, largest first. Equal values
// keep their appearance order.
func (g Grouped) SortedByValue() Grouped {
	out := g.clone()
	sort.SliceStable(out.Groups, func(i, j int) bool { return out.Groups[i].Value.GreaterThan(out.Groups[j].Value) })
	return out
}

func (g Grouped) clone() Grouped {
	out := g
	out.Groups = append([]Group(nil), g.Groups...)
	return out
}
