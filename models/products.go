package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a row of the product dimension.
// ID is the key sales reference through their ProductKey.
type Product struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	Name            string          `json:"name,omitempty"`
	ProductCategory string          `gorm:"not null;index" json:"productCategory"`
	ProductGroup    string          `gorm:"not null;index" json:"productGroup"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric;not null" json:"unitPrice"`
	UpdatedAt       time.Time       `json:"-"`
}

func (p *Product) TableName() string {
	return "products"
}
