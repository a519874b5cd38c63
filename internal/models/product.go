package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaxProductImages is the number of images kept per product.
const MaxProductImages = 4

// Product represents a product in the store.
type Product struct {
	gorm.Model
	Name        string          `gorm:"type:varchar(200);not null"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null"`
	ImageURL    string          `gorm:"type:varchar(255)"` // Primary image, first uploaded
	Color       string          `gorm:"type:varchar(50)"`
	Size        string          `gorm:"type:varchar(50)"`
	Listed      bool            `gorm:"not null;default:false"` // Visible on the storefront
	Images      []ProductImage  `gorm:"constraint:OnDelete:CASCADE"`
}

// ProductImage is one of the pictures attached to a product.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;index"`
	Path      string `gorm:"type:varchar(255);not null"`
}
