package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// DatePolicy decides what Derive does with an unparseable OrderDate.
type DatePolicy int

const (
	// DateAbort fails the derivation on the first bad date.
	DateAbort DatePolicy = iota
	// DateDrop leaves the sale out and records the ParseError.
	DateDrop
)

func ParseDatePolicy(s string) (DatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return DateAbort, nil
	case "drop":
		return DateDrop, nil
	}
	return DateAbort, fmt.Errorf("unknown date policy %q", s)
}

func (p DatePolicy) String() string {
	if p == DateDrop {
		return "drop"
	}
	return "abort"
}

// EnrichedSale is one joined line item with its derived columns.
type EnrichedSale struct {
	OrderNumber     string          `json:"OrderNumber"`
	ProductKey      string          `json:"ProductKey"`
	Quantity        int64           `json:"Quantity"`
	OrderDate       time.Time       `json:"OrderDate"`
	Channel         string          `json:"Channel"`
	Salesperson     string          `json:"Salesperson"`
	ProductName     string          `json:"ProductName,omitempty"`
	ProductCategory string          `json:"ProductCategory"`
	ProductGroup    string          `json:"ProductGroup"`
	UnitPrice       decimal.Decimal `json:"UnitPrice"`
	SalesAmount     decimal.Decimal `json:"SalesAmount"`
	Quarter         string          `json:"Quarter"`
	Month           string          `json:"Month"`
}

type DeriveResult struct {
	Rows     []EnrichedSale
	Rejected []*ParseError
}

// Derive computes SalesAmount and the calendar partitions for every joined sale.
func Derive(rows []JoinedSale, policy DatePolicy) (*DeriveResult, error) {
	res := &DeriveResult{Rows: make([]EnrichedSale, 0, len(rows))}
	for _, r := range rows {
		date, err := ParseOrderDate(r.Sale.OrderDate)
		if err != nil {
			perr := &ParseError{
				Row:         r.Row,
				OrderNumber: r.Sale.OrderNumber,
				Field:       "OrderDate",
				Value:       r.Sale.OrderDate,
				Err:         err,
			}
			if policy == DateAbort {
				return nil, perr
			}
			res.Rejected = append(res.Rejected, perr)
			continue
		}

		res.Rows = append(res.Rows, EnrichedSale{
			OrderNumber:     r.Sale.OrderNumber,
			ProductKey:      r.Sale.ProductKey,
			Quantity:        r.Sale.Quantity,
			OrderDate:       date,
			Channel:         r.Sale.Channel,
			Salesperson:     r.Sale.Salesperson,
			ProductName:     r.Product.Name,
			ProductCategory: r.Product.ProductCategory,
			ProductGroup:    r.Product.ProductGroup,
			UnitPrice:       r.Product.UnitPrice,
			SalesAmount:     SalesAmount(r.Sale.Quantity, r.Product.UnitPrice),
			Quarter:         QuarterLabel(date),
			Month:           MonthLabel(date),
		})
	}
	return res, nil
}

// SalesAmount is Quantity × UnitPrice. Negative inputs are not clamped.
func SalesAmount(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"20060102",
}

// maxExcelSerial is the serial day number of 9999-12-31.
const maxExcelSerial = 2958465

var (
	errEmptyDate         = errors.New("empty date")
	errUnknownDateFormat = errors.New("unrecognized date format")
)

// ParseOrderDate accepts ISO dates and date-times, US month/day/year dates,
// and Excel serial day numbers as stored in raw xlsx cells.
func ParseOrderDate(raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, errEmptyDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 && serial <= maxExcelSerial {
		return excelize.ExcelDateToTime(serial, false)
	}
	return time.Time{}, errUnknownDateFormat
}

// QuarterLabel formats t as year and calendar quarter, e.g. 2023Q1.
func QuarterLabel(t time.Time) string {
	return fmt.Sprintf("%dQ%d", t.Year(), (int(t.Month())-1)/3+1)
}

// MonthLabel formats t as year and month, e.g. 2023-01.
func MonthLabel(t time.Time) string {
	return t.Format("2006-01")
}
