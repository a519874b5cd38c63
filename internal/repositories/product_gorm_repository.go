package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// ListListed retrieves the products visible on the storefront, newest first.
func (r *GORMProductRepository) ListListed() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("listed = ?", true).Order("id DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list listed products: %w", err)
	}
	return products, nil
}

// ListAll retrieves every product regardless of its listing state, newest first.
func (r *GORMProductRepository) ListAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product and its images in insertion order.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// GetByIDs retrieves the products whose IDs are in ids. Unknown IDs are
// simply absent from the result.
func (r *GORMProductRepository) GetByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by IDs: %w", err)
	}
	return products, nil
}

// Create inserts a product together with its images in one transaction.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateStockAndPrice overwrites the stock and price of a product.
func (r *GORMProductRepository) UpdateStockAndPrice(id uint, stock int, price decimal.Decimal) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"stock": stock, "price": price})
	if res.Error != nil {
		return fmt.Errorf("failed to update stock and price of product %d: %w", id, res.Error)
	}
	return nil
}

// ToggleListing flips the listed flag of a product. It reports whether the
// product exists.
func (r *GORMProductRepository) ToggleListing(id uint) (bool, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	if err := r.db.Model(&product).Update("listed", !product.Listed).Error; err != nil {
		return false, fmt.Errorf("failed to toggle listing of product %d: %w", id, err)
	}
	return true, nil
}
