package source

import (
	"context"
	"encoding/csv"
	"os"
)

// CSV reads each table from a comma separated file with a header row.
type CSV struct {
	ProductsPath string
	SalesPath    string
	opts         Options
}

func NewCSV(productsPath, salesPath string, opts Options) *CSV {
	return &CSV{
		ProductsPath: productsPath,
		SalesPath:    salesPath,
		opts:         opts,
	}
}

func (c *CSV) Name() string {
	return "csv"
}

func (c *CSV) Fingerprint(_ context.Context) (string, error) {
	return fileFingerprint(c.Name(), c.ProductsPath, c.SalesPath, c.opts)
}

func (c *CSV) Load(ctx context.Context) (*Tables, error) {
	rows, err := readCSV(c.Name(), TableProducts, c.ProductsPath)
	if err != nil {
		return nil, err
	}
	products, err := parseProducts(c.Name(), c.ProductsPath, rows)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err = readCSV(c.Name(), TableSales, c.SalesPath)
	if err != nil {
		return nil, err
	}
	sales, err := parseSales(c.Name(), c.SalesPath, rows)
	if err != nil {
		return nil, err
	}

	return &Tables{
		Products: products,
		Sales:    c.opts.filter(sales),
	}, nil
}

func readCSV(kind, table, path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: kind, Table: table, Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &LoadError{Source: kind, Table: table, Path: path, Err: err}
	}
	return rows, nil
}
