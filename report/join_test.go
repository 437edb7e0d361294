package report

import (
	"errors"
	"testing"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	withOrphan := append(sampleSales(), models.Sale{OrderNumber: "C", ProductKey: "99", Quantity: 4, OrderDate: "2023-02-01"})

	testCases := []struct {
		name          string
		products      []models.Product
		sales         []models.Sale
		policy        JoinPolicy
		expectedRows  int
		expectedKeys  []string
		expectedError bool
		checkError    func(t *testing.T, err error)
	}{
		{
			name:         "All sales match",
			products:     sampleProducts(),
			sales:        sampleSales(),
			policy:       DefaultJoinPolicy,
			expectedRows: 3,
		},
		{
			name:         "Unmatched sale is dropped",
			products:     sampleProducts(),
			sales:        withOrphan,
			policy:       DefaultJoinPolicy,
			expectedRows: 3,
			expectedKeys: []string{"99"},
		},
		{
			name:          "Strict policy rejects unmatched sale",
			products:      sampleProducts(),
			sales:         withOrphan,
			policy:        JoinPolicy{MaxUnmatchedRatio: 1, Strict: true},
			expectedError: true,
			checkError: func(t *testing.T, err error) {
				var jerr *JoinIntegrityError
				require.True(t, errors.As(err, &jerr))
				assert.Equal(t, 1, jerr.Unmatched)
				assert.Equal(t, 4, jerr.Total)
			},
		},
		{
			name:          "Unmatched ratio above limit",
			products:      sampleProducts(),
			sales:         withOrphan,
			policy:        JoinPolicy{MaxUnmatchedRatio: 0.2},
			expectedError: true,
		},
		{
			name:         "Unmatched ratio within limit",
			products:     sampleProducts(),
			sales:        withOrphan,
			policy:       JoinPolicy{MaxUnmatchedRatio: 0.25},
			expectedRows: 3,
			expectedKeys: []string{"99"},
		},
		{
			name: "Duplicate product IDs",
			products: append(sampleProducts(), models.Product{
				ID: "1", ProductCategory: "Bikes", UnitPrice: decimal.NewFromInt(12),
			}),
			sales:         sampleSales(),
			policy:        DefaultJoinPolicy,
			expectedError: true,
			checkError: func(t *testing.T, err error) {
				var jerr *JoinIntegrityError
				require.True(t, errors.As(err, &jerr))
				assert.Equal(t, []string{"1"}, jerr.DuplicateIDs)
			},
		},
		{
			name:         "No sales",
			products:     sampleProducts(),
			sales:        nil,
			policy:       JoinPolicy{Strict: true},
			expectedRows: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			res, err := Join(tc.products, tc.sales, tc.policy)

			// Assert
			if tc.expectedError {
				require.Error(t, err)
				if tc.checkError != nil {
					tc.checkError(t, err)
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, res.Rows, tc.expectedRows)
			assert.Equal(t, tc.expectedKeys, res.UnmatchedKeys)
			assert.LessOrEqual(t, len(res.Rows), len(tc.sales))
			for _, r := range res.Rows {
				assert.Equal(t, r.Sale.ProductKey, r.Product.ID)
			}
		})
	}
}

func TestJoinKeepsSalesOrder(t *testing.T) {
	res, err := Join(sampleProducts(), sampleSales(), DefaultJoinPolicy)
	require.NoError(t, err)

	rows := make([]int, len(res.Rows))
	for i, r := range res.Rows {
		rows[i] = r.Row
	}
	assert.Equal(t, []int{1, 2, 3}, rows)
}
