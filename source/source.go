// Package source loads the product dimension and the sales fact table
// from workbooks, CSV files or Postgres into in-memory tables.
package source

import (
	"context"
	"slices"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/models"
)

const (
	TableProducts = "products"
	TableSales    = "sales"
)

// Column names expected in the header row of each table.
const (
	ColumnID              = "ID"
	ColumnName            = "ProductName"
	ColumnProductCategory = "ProductCategory"
	ColumnProductGroup    = "ProductGroup"
	ColumnUnitPrice       = "UnitPrice"

	ColumnOrderNumber = "OrderNumber"
	ColumnProductKey  = "ProductKey"
	ColumnQuantity    = "Quantity"
	ColumnOrderDate   = "OrderDate"
	ColumnChannel     = "Channel"
	ColumnSalesperson = "Salesperson"
)

var (
	ProductColumns = []string{ColumnID, ColumnProductCategory, ColumnProductGroup, ColumnUnitPrice}
	SalesColumns   = []string{ColumnOrderNumber, ColumnProductKey, ColumnQuantity, ColumnOrderDate, ColumnChannel, ColumnSalesperson}
)

// Tables holds both raw tables as read from a source, in source order.
type Tables struct {
	Products []models.Product
	Sales    []models.Sale
}

// Source provides the two raw tables.
//
// Fingerprint must change whenever Load would return different tables;
// it is the key under which enriched results are cached.
type Source interface {
	Name() string
	Fingerprint(ctx context.Context) (string, error)
	Load(ctx context.Context) (*Tables, error)
}

// Options restrict what a source loads.
type Options struct {
	// Channels limits sales to these channels. Empty means all.
	Channels []string
}

func (o Options) keep(s models.Sale) bool {
	return len(o.Channels) == 0 || slices.Contains(o.Channels, s.Channel)
}

func (o Options) filter(sales []models.Sale) []models.Sale {
	if len(o.Channels) == 0 {
		return sales
	}
	kept := make([]models.Sale, 0, len(sales))
	for _, s := range sales {
		if o.keep(s) {
			kept = append(kept, s)
		}
	}
	return kept
}
