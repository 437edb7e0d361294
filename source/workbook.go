package source

import (
	"context"
	"errors"

	"github.com/xuri/excelize/v2"
)

// Workbook reads each table from the first sheet of an xlsx file.
type Workbook struct {
	ProductsPath string
	SalesPath    string
	opts         Options
}

func NewWorkbook(productsPath, salesPath string, opts Options) *Workbook {
	return &Workbook{
		ProductsPath: productsPath,
		SalesPath:    salesPath,
		opts:         opts,
	}
}

func (w *Workbook) Name() string {
	return "workbook"
}

func (w *Workbook) Fingerprint(_ context.Context) (string, error) {
	return fileFingerprint(w.Name(), w.ProductsPath, w.SalesPath, w.opts)
}

func (w *Workbook) Load(ctx context.Context) (*Tables, error) {
	rows, err := readFirstSheet(w.Name(), TableProducts, w.ProductsPath)
	if err != nil {
		return nil, err
	}
	products, err := parseProducts(w.Name(), w.ProductsPath, rows)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err = readFirstSheet(w.Name(), TableSales, w.SalesPath)
	if err != nil {
		return nil, err
	}
	sales, err := parseSales(w.Name(), w.SalesPath, rows)
	if err != nil {
		return nil, err
	}

	return &Tables{
		Products: products,
		Sales:    w.opts.filter(sales),
	}, nil
}

// readFirstSheet returns the raw cell values of the first sheet. Raw values
// keep dates as Excel serial numbers and prices unformatted.
func readFirstSheet(kind, table, path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Source: kind, Table: table, Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Source: kind, Table: table, Path: path, Err: errors.New("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &LoadError{Source: kind, Table: table, Path: path, Err: err}
	}
	return rows, nil
}
