package report

import (
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/models"
)

// JoinPolicy decides what happens to sales whose ProductKey matches no product.
// Unmatched sales are always dropped; the policy only decides when dropping
// them turns into an error.
type JoinPolicy struct {
	// MaxUnmatchedRatio is the largest tolerated share of unmatched sales, 0..1.
	MaxUnmatchedRatio float64
	// Strict rejects any unmatched sale.
	Strict bool
}

// DefaultJoinPolicy drops unmatched sales without failing.
var DefaultJoinPolicy = JoinPolicy{MaxUnmatchedRatio: 1}

// JoinedSale is a sale paired with the product it references.
type JoinedSale struct {
	Row     int
	Sale    models.Sale
	Product models.Product
}

type JoinResult struct {
	Rows          []JoinedSale
	Unmatched     int
	UnmatchedKeys []string
}

// Join inner-joins sales to products on ProductKey = ID, keeping sales order.
func Join(products []models.Product, sales []models.Sale, policy JoinPolicy) (*JoinResult, error) {
	index := make(map[string]int, len(products))
	var dups []string
	for i, p := range products {
		if _, ok := index[p.ID]; ok {
			dups = append(dups, p.ID)
			continue
		}
		index[p.ID] = i
	}
	if len(dups) > 0 {
		return nil, &JoinIntegrityError{DuplicateIDs: dups}
	}

	res := &JoinResult{Rows: make([]JoinedSale, 0, len(sales))}
	seen := make(map[string]struct{})
	for i, s := range sales {
		pi, ok := index[s.ProductKey]
		if !ok {
			res.Unmatched++
			if _, dup := seen[s.ProductKey]; !dup {
				seen[s.ProductKey] = struct{}{}
				res.UnmatchedKeys = append(res.UnmatchedKeys, s.ProductKey)
			}
			continue
		}
		res.Rows = append(res.Rows, JoinedSale{Row: i + 1, Sale: s, Product: products[pi]})
	}

	if res.Unmatched > 0 && policy.exceeded(res.Unmatched, len(sales)) {
		limit := policy.MaxUnmatchedRatio
		if policy.Strict {
			limit = 0
		}
		return nil, &JoinIntegrityError{Unmatched: res.Unmatched, Total: len(sales), Limit: limit}
	}
	return res, nil
}

func (p JoinPolicy) exceeded(unmatched, total int) bool {
	if p.Strict {
		return true
	}
	return float64(unmatched)/float64(total) > p.MaxUnmatchedRatio
}
