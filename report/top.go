package report

import "github.com/shopspring/decimal"

// TopBy returns the item with the largest value. Only a strictly larger value
// replaces the current best, so ties resolve to the first item in input order.
// The bool is false for an empty slice.
func TopBy[T any](items []T, value func(T) decimal.Decimal) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	bestValue := value(best)
	for _, it := range items[1:] {
		if v := value(it); v.GreaterThan(bestValue) {
			best, bestValue = it, v
		}
	}
	return best, true
}
