package report

import (
	"testing"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalespersonTable(t *testing.T) {
	rows := enrich(t, sampleProducts(), sampleSales())

	table := SalespersonTable(rows)

	require.Len(t, table, 2)
	assert.Equal(t, "Dara", table[0].Salesperson)
	assertDecimal(t, "25", table[0].TotalRevenue)
	assertDecimal(t, "12.5", table[0].AverageOrderValue)
	assert.Equal(t, 1, table[0].TotalOrders)

	assert.Equal(t, "Sokha", table[1].Salesperson)
	assertDecimal(t, "10", table[1].TotalRevenue)
	assert.Equal(t, 1, table[1].TotalOrders)
}

func TestTopSalespersonTieBreak(t *testing.T) {
	sales := []models.Sale{
		{OrderNumber: "A", ProductKey: "1", Quantity: 1, OrderDate: "2023-01-01", Salesperson: "Vanna"},
		{OrderNumber: "B", ProductKey: "2", Quantity: 2, OrderDate: "2023-01-02", Salesperson: "Bopha"},
		{OrderNumber: "C", ProductKey: "2", Quantity: 1, OrderDate: "2023-01-03", Salesperson: "Kosal"},
	}
	rows := enrich(t, sampleProducts(), sales)
	table := SalespersonTable(rows)

	top, ok := TopSalesperson(table, RankByRevenue)

	require.True(t, ok)
	assert.Equal(t, "Vanna", top.Salesperson, "equal revenue resolves to the first salesperson")
	assertDecimal(t, "10", top.TotalRevenue)
}

func TestTopSalespersonBy(t *testing.T) {
	table := []SalespersonPerformance{
		{Salesperson: "Dara", TotalRevenue: decimal.NewFromInt(100), AverageOrderValue: decimal.NewFromInt(50), TotalOrders: 2},
		{Salesperson: "Sokha", TotalRevenue: decimal.NewFromInt(90), AverageOrderValue: decimal.NewFromInt(30), TotalOrders: 3},
		{Salesperson: "Vanna", TotalRevenue: decimal.NewFromInt(60), AverageOrderValue: decimal.NewFromInt(60), TotalOrders: 1},
	}

	testCases := []struct {
		by       string
		expected string
	}{
		{"revenue", "Dara"},
		{"", "Dara"},
		{"orders", "Sokha"},
		{"average", "Vanna"},
	}
	for _, tc := range testCases {
		by, err := ParseRankBy(tc.by)
		require.NoError(t, err)
		top, ok := TopSalesperson(table, by)
		require.True(t, ok)
		assert.Equal(t, tc.expected, top.Salesperson, "rank by %q", tc.by)
	}

	_, err := ParseRankBy("charisma")
	assert.ErrorIs(t, err, ErrUnknownMetric)

	_, ok := TopSalesperson(nil, RankByRevenue)
	assert.False(t, ok)
}
