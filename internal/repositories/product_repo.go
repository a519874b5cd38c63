package repositories

import (
	"errors"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned when no product matches the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	ListListed() ([]models.Product, error)
	ListAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	UpdateStockAndPrice(id uint, stock int, price decimal.Decimal) error
	ToggleListing(id uint) (bool, error)
}
