package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/models"
	"github.com/cespare/xxhash/v2"
	"gorm.io/gorm"
)

// Database reads the products and sales tables through the gorm repositories.
type Database struct {
	db   *gorm.DB
	opts Options
}

func NewDatabase(db *gorm.DB, opts Options) *Database {
	return &Database{
		db:   db,
		opts: opts,
	}
}

func (d *Database) Name() string {
	return "postgres"
}

// Fingerprint is derived from row counts and the latest update time of
// both tables, which is enough to notice a reseed.
func (d *Database) Fingerprint(ctx context.Context) (string, error) {
	db := d.db.WithContext(ctx)
	filters := models.SalesFilters{Channels: d.opts.Channels}

	products, err := models.NewProductsRepository(db).Stats()
	if err != nil {
		return "", &LoadError{Source: d.Name(), Table: TableProducts, Err: err}
	}
	sales, err := models.NewSalesRepository(db).Stats(filters)
	if err != nil {
		return "", &LoadError{Source: d.Name(), Table: TableSales, Err: err}
	}

	h := xxhash.New()
	fmt.Fprintf(h, "%s|%s|%s", statsKey(products), statsKey(sales), strings.Join(d.opts.Channels, ","))
	return fmt.Sprintf("%s:%016x", d.Name(), h.Sum64()), nil
}

func statsKey(s models.TableStats) string {
	if s.LastUpdated == nil {
		return fmt.Sprintf("%d@-", s.RowCount)
	}
	return fmt.Sprintf("%d@%d", s.RowCount, s.LastUpdated.UnixNano())
}

func (d *Database) Load(ctx context.Context) (*Tables, error) {
	db := d.db.WithContext(ctx)

	products, err := models.NewProductsRepository(db).GetAllProducts()
	if err != nil {
		return nil, &LoadError{Source: d.Name(), Table: TableProducts, Err: err}
	}
	sales, err := models.NewSalesRepository(db).GetFilteredSales(models.SalesFilters{Channels: d.opts.Channels})
	if err != nil {
		return nil, &LoadError{Source: d.Name(), Table: TableSales, Err: err}
	}

	return &Tables{
		Products: products,
		Sales:    sales,
	}, nil
}
