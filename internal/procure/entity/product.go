package entity

import "time"

// Product finished goods catalog entry managed by the purchase manager.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	SKU         string    `json:"sku" gorm:"size:50;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"size:100"`
	Unit        string    `json:"unit" gorm:"size:20;default:pcs"`
	Price       *float64  `json:"price" gorm:"type:decimal(12,2)"`
	CreatedBy   string    `json:"created_by" gorm:"size:32"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
