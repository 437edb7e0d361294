package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

// TableStats summarizes a table well enough to tell whether it changed.
type TableStats struct {
	RowCount    int64
	LastUpdated *time.Time
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetAllProducts() ([]Product, error) {
	var products []Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Upsert inserts products, overwriting existing rows with the same ID.
func (r *ProductsRepository) Upsert(products []Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(products, 500).Error
}

func (r *ProductsRepository) Stats() (TableStats, error) {
	return tableStats(r.db.Model(&Product{}))
}

func tableStats(query *gorm.DB) (TableStats, error) {
	var stats TableStats
	if err := query.Select("COUNT(*) AS row_count, MAX(updated_at) AS last_updated").
		Scan(&stats).Error; err != nil {
		return TableStats{}, err
	}
	return stats, nil
}
