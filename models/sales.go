package models

import "time"

// Sale represents one line item of the sales fact table.
// OrderDate keeps the raw value as found in the source; it is parsed
// when the sale is enriched.
type Sale struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	OrderNumber string    `gorm:"not null;index" json:"orderNumber"`
	ProductKey  string    `gorm:"not null;index" json:"productKey"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	OrderDate   string    `gorm:"not null" json:"orderDate"`
	Channel     string    `gorm:"not null;index" json:"channel"`
	Salesperson string    `gorm:"not null;index" json:"salesperson"`
	UpdatedAt   time.Time `json:"-"`
}

func (s *Sale) TableName() string {
	return "sales"
}
