package repositories

import (
	"time"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// CreatePaid stores the order, its items and the matching stock
	// decrements atomically.
	CreatePaid(order *models.Order) error
	ListPaid() ([]models.Order, error)
	SumPaidSince(since time.Time) (decimal.Decimal, error)
}
