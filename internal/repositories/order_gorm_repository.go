package repositories

import (
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// CreatePaid inserts the order and its items and decrements the stock of
// every purchased product, floored at zero. Nothing is written unless every
// statement succeeds.
func (r *GORMOrderRepository) CreatePaid(order *models.Order) error {
	order.Paid = true
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("failed to insert order item for product %d: %w", items[i].ProductID, err)
			}

			qty := items[i].Quantity
			err := tx.Model(&models.Product{}).Where("id = ?", items[i].ProductID).
				Update("stock", gorm.Expr("CASE WHEN stock > ? THEN stock - ? ELSE 0 END", qty, qty)).Error
			if err != nil {
				return fmt.Errorf("failed to decrement stock of product %d: %w", items[i].ProductID, err)
			}
		}
		order.Items = items
		return nil
	})
}

// ListPaid returns every paid order with its items, newest first.
func (r *GORMOrderRepository) ListPaid() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("paid = ?", true).
		Order("created_at DESC").Order("id DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list paid orders: %w", err)
	}
	return orders, nil
}

// SumPaidSince returns the sum of paid order totals created at or after since.
func (r *GORMOrderRepository) SumPaidSince(since time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("paid = ? AND created_at >= ?", true, since.UTC()).
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid orders since %s: %w", since.Format(time.RFC3339), err)
	}
	return sum, nil
}
