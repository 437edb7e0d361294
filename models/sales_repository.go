package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type SalesRepository struct {
	db *gorm.DB
}

type SalesFilters struct {
	Channels []string
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{
		db: db,
	}
}

// GetFilteredSales returns line items in insertion order.
func (r *SalesRepository) GetFilteredSales(filters SalesFilters) ([]Sale, error) {
	var sales []Sale

	query := r.filtered(filters).Order("id")
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// ReplaceAll swaps the whole fact table inside one transaction.
func (r *SalesRepository) ReplaceAll(sales []Sale) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Sale{}).Error; err != nil {
			return err
		}
		if len(sales) == 0 {
			return nil
		}
		return tx.CreateInBatches(sales, 500).Error
	})
}

func (r *SalesRepository) Stats(filters SalesFilters) (TableStats, error) {
	return tableStats(r.filtered(filters))
}

func (r *SalesRepository) filtered(filters SalesFilters) *gorm.DB {
	query := r.db.Model(&Sale{})
	if len(filters.Channels) > 0 {
		query = query.Where("channel = ANY(?)", pq.Array(filters.Channels))
	}
	return query
}

// Migrate creates or updates the products and sales tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Product{}, &Sale{})
}
