package report

import (
	"errors"
	"testing"
	"time"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSalesAmount(t *testing.T) {
	rows := enrich(t, sampleProducts(), sampleSales())

	require.Len(t, rows, 3)
	assertDecimal(t, "20", rows[0].SalesAmount)
	assertDecimal(t, "5", rows[1].SalesAmount)
	assertDecimal(t, "10", rows[2].SalesAmount)
	for _, r := range rows {
		assert.True(t, r.UnitPrice.Mul(decimal.NewFromInt(r.Quantity)).Equal(r.SalesAmount))
	}
}

func TestSalesAmountIsExact(t *testing.T) {
	assertDecimal(t, "0.3", SalesAmount(3, decimal.RequireFromString("0.1")))
	assertDecimal(t, "-25.5", SalesAmount(-3, decimal.RequireFromString("8.5")), "negative quantity is not clamped")
	assertDecimal(t, "-4", SalesAmount(2, decimal.NewFromInt(-2)))
}

func TestParseOrderDate(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected time.Time
		wantErr  bool
	}{
		{name: "ISO date", raw: "2023-01-15", expected: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "ISO date time", raw: "2023-01-15 13:45:00", expected: time.Date(2023, 1, 15, 13, 45, 0, 0, time.UTC)},
		{name: "RFC 3339", raw: "2023-06-30T08:00:00Z", expected: time.Date(2023, 6, 30, 8, 0, 0, 0, time.UTC)},
		{name: "US date", raw: "7/4/2023", expected: time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)},
		{name: "Excel serial", raw: "44927", expected: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "Surrounding spaces", raw: " 2023-02-01 ", expected: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)},
		{name: "Empty", raw: "", wantErr: true},
		{name: "Garbage", raw: "next tuesday", wantErr: true},
		{name: "Negative serial", raw: "-5", wantErr: true},
		{name: "Compact date", raw: "20230115", expected: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "Last Excel serial", raw: "2958465", expected: time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)},
		{name: "Number beyond Excel range", raw: "99999999", wantErr: true},
		{name: "Compact date with bad month", raw: "20231315", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseOrderDate(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "want %s, got %s", tc.expected, got)
		})
	}
}

func TestCalendarLabels(t *testing.T) {
	testCases := []struct {
		date    time.Time
		quarter string
		month   string
	}{
		{time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), "2023Q1", "2023-01"},
		{time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC), "2023Q1", "2023-03"},
		{time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), "2023Q2", "2023-04"},
		{time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC), "2024Q3", "2024-09"},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "2024Q4", "2024-12"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.quarter, QuarterLabel(tc.date))
		assert.Equal(t, tc.month, MonthLabel(tc.date))
	}
}

func TestDeriveDatePolicy(t *testing.T) {
	sales := append(sampleSales(), models.Sale{OrderNumber: "C", ProductKey: "2", Quantity: 1, OrderDate: "soon"})
	joined, err := Join(sampleProducts(), sales, DefaultJoinPolicy)
	require.NoError(t, err)

	t.Run("Abort surfaces the parse error", func(t *testing.T) {
		_, err := Derive(joined.Rows, DateAbort)

		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, 4, perr.Row)
		assert.Equal(t, "C", perr.OrderNumber)
		assert.Equal(t, "OrderDate", perr.Field)
		assert.Equal(t, "soon", perr.Value)
	})

	t.Run("Drop records the parse error", func(t *testing.T) {
		res, err := Derive(joined.Rows, DateDrop)

		require.NoError(t, err)
		assert.Len(t, res.Rows, 3)
		require.Len(t, res.Rejected, 1)
		assert.Equal(t, "C", res.Rejected[0].OrderNumber)
	})
}

func TestParseDatePolicy(t *testing.T) {
	p, err := ParseDatePolicy("drop")
	require.NoError(t, err)
	assert.Equal(t, DateDrop, p)

	p, err = ParseDatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, DateAbort, p)

	_, err = ParseDatePolicy("default-to-epoch")
	assert.Error(t, err)
}
