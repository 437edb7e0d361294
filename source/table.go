package source

import (
	"fmt"
	"strings"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/models"
	"github.com/shopspring/decimal"
)

// rowReader maps header names to cell positions for one table.
type rowReader struct {
	source string
	table  string
	path   string
	index  map[string]int
}

func newRowReader(source, table, path string, header []string, required []string) (*rowReader, error) {
	r := &rowReader{
		source: source,
		table:  table,
		path:   path,
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		key := normalizeHeader(h)
		if _, seen := r.index[key]; !seen {
			r.index[key] = i
		}
	}
	for _, col := range required {
		if _, ok := r.index[normalizeHeader(col)]; !ok {
			return nil, r.fail(0, col, ErrMissingColumn)
		}
	}
	return r, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}

func (r *rowReader) cell(row []string, col string) string {
	i, ok := r.index[normalizeHeader(col)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (r *rowReader) fail(rowNo int, col string, err error) *LoadError {
	return &LoadError{
		Source: r.source,
		Table:  r.table,
		Path:   r.path,
		Row:    rowNo,
		Column: col,
		Err:    err,
	}
}

func (r *rowReader) required(row []string, rowNo int, col string) (string, error) {
	v := r.cell(row, col)
	if v == "" {
		return "", r.fail(rowNo, col, ErrEmptyValue)
	}
	return v, nil
}

func (r *rowReader) decimal(row []string, rowNo int, col string) (decimal.Decimal, error) {
	v, err := r.required(row, rowNo, col)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := parseAmount(v)
	if err != nil {
		return decimal.Zero, r.fail(rowNo, col, fmt.Errorf("%w: %q", ErrMalformed, v))
	}
	return d, nil
}

func (r *rowReader) integer(row []string, rowNo int, col string) (int64, error) {
	d, err := r.decimal(row, rowNo, col)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, r.fail(rowNo, col, fmt.Errorf("%w: %s is not a whole number", ErrMalformed, d))
	}
	return d.IntPart(), nil
}

// parseAmount accepts plain numbers and currency formatted ones such as "$1,250.00".
func parseAmount(v string) (decimal.Decimal, error) {
	v = strings.ReplaceAll(v, ",", "")
	neg := strings.HasPrefix(v, "-")
	v = strings.TrimPrefix(v, "-")
	v = strings.TrimPrefix(v, "$")
	if neg {
		v = "-" + v
	}
	return decimal.NewFromString(v)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseProducts converts a header-first grid into products.
func parseProducts(source, path string, rows [][]string) ([]models.Product, error) {
	if len(rows) == 0 {
		return nil, &LoadError{Source: source, Table: TableProducts, Path: path, Err: ErrNoHeader}
	}
	r, err := newRowReader(source, TableProducts, path, rows[0], ProductColumns)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rowNo := i + 2
		id, err := r.required(row, rowNo, ColumnID)
		if err != nil {
			return nil, err
		}
		price, err := r.decimal(row, rowNo, ColumnUnitPrice)
		if err != nil {
			return nil, err
		}
		products = append(products, models.Product{
			ID:              id,
			Name:            r.cell(row, ColumnName),
			ProductCategory: r.cell(row, ColumnProductCategory),
			ProductGroup:    r.cell(row, ColumnProductGroup),
			UnitPrice:       price,
		})
	}
	return products, nil
}

// parseSales converts a header-first grid into sales line items.
func parseSales(source, path string, rows [][]string) ([]models.Sale, error) {
	if len(rows) == 0 {
		return nil, &LoadError{Source: source, Table: TableSales, Path: path, Err: ErrNoHeader}
	}
	r, err := newRowReader(source, TableSales, path, rows[0], SalesColumns)
	if err != nil {
		return nil, err
	}

	sales := make([]models.Sale, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rowNo := i + 2
		order, err := r.required(row, rowNo, ColumnOrderNumber)
		if err != nil {
			return nil, err
		}
		key, err := r.required(row, rowNo, ColumnProductKey)
		if err != nil {
			return nil, err
		}
		qty, err := r.integer(row, rowNo, ColumnQuantity)
		if err != nil {
			return nil, err
		}
		sales = append(sales, models.Sale{
			OrderNumber: order,
			ProductKey:  key,
			Quantity:    qty,
			OrderDate:   r.cell(row, ColumnOrderDate),
			Channel:     r.cell(row, ColumnChannel),
			Salesperson: r.cell(row, ColumnSalesperson),
		})
	}
	return sales, nil
}
