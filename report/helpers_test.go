package report

import (
	"fmt"
	"testing"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fixtures ---

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: "1", ProductCategory: "Bikes", ProductGroup: "Road", UnitPrice: decimal.NewFromInt(10)},
		{ID: "2", ProductCategory: "Accessories", ProductGroup: "Helmets", UnitPrice: decimal.NewFromInt(5)},
	}
}

func sampleSales() []models.Sale {
	return []models.Sale{
		{OrderNumber: "A", ProductKey: "1", Quantity: 2, OrderDate: "2023-01-15", Channel: "Online", Salesperson: "Dara"},
		{OrderNumber: "A", ProductKey: "2", Quantity: 1, OrderDate: "2023-01-15", Channel: "Online", Salesperson: "Dara"},
		{OrderNumber: "B", ProductKey: "1", Quantity: 1, OrderDate: "2023-04-02", Channel: "Store", Salesperson: "Sokha"},
	}
}

func enrich(t *testing.T, products []models.Product, sales []models.Sale) []EnrichedSale {
	t.Helper()
	joined, err := Join(products, sales, DefaultJoinPolicy)
	require.NoError(t, err)
	derived, err := Derive(joined.Rows, DateAbort)
	require.NoError(t, err)
	return derived.Rows
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !decimal.RequireFromString(want).Equal(got) {
		assert.Fail(t, fmt.Sprintf("want %s, got %s", want, got), msgAndArgs...)
	}
}
