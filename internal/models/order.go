package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem represents a single item within an order.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	ProductID uint            `gorm:"not null;index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"` // Price at the time of order
}

// LineTotal is the unit price multiplied by the quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a customer order. Orders are written once at checkout.
type Order struct {
	ID              uint            `gorm:"primaryKey"`
	CustomerName    string          `gorm:"type:varchar(200);not null"`
	CustomerAddress string          `gorm:"type:text;not null"`
	PaymentRef      string          `gorm:"type:varchar(255)"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Paid            bool            `gorm:"not null;index"`
	CreatedAt       time.Time       `gorm:"not null;index"`
	Items           []OrderItem
}
