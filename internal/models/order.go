package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a customer order. TotalAmount is caller-supplied and is not
// recomputed from the order items.
type Order struct {
	OrderID     uint            `json:"orderId" gorm:"primaryKey"`
	OrderDate   time.Time       `json:"orderDate"`
	CustomerID  *uint           `json:"customerId,omitempty"`
	Customer    *Customer       `json:"customer,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	OrderItems  []OrderItem     `json:"orderItems,omitempty" gorm:"foreignKey:OrderID"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:numeric"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// OrderItem is a single line within an order. Quantity and Subtotal are
// stored as supplied, not validated against the product's price or stock.
type OrderItem struct {
	OrderItemID uint            `json:"orderItemId" gorm:"primaryKey"`
	OrderID     *uint           `json:"orderId,omitempty"`
	Order       *Order          `json:"order,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	ProductID   *uint           `json:"productId,omitempty"`
	Product     *Product        `json:"product,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:numeric"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}
