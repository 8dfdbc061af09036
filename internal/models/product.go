package models

import "github.com/shopspring/decimal"

// Product represents a product in the store.
type Product struct {
	ProductID     uint            `json:"productId" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"not null;type:varchar(100)"`
	Description   string          `json:"description,omitempty" gorm:"type:varchar(500)"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric"`
	StockQuantity int             `json:"stockQuantity"`
	CategoryID    *uint           `json:"categoryId,omitempty"`
	Category      *Category       `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}
