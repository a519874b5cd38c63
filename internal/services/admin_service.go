package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/uploads"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrInvalidProduct is returned when required product fields are missing or
// malformed.
var ErrInvalidProduct = errors.New("invalid product")

// Sales windows used by the dashboard.
const (
	WeekWindow  = 7 * 24 * time.Hour
	MonthWindow = 30 * 24 * time.Hour
	YearWindow  = 365 * 24 * time.Hour
)

// NewProduct is the admin form for creating a product.
type NewProduct struct {
	Name        string `form:"name" validate:"required,max=200"`
	Category    string `form:"category" validate:"required,max=100"`
	Description string `form:"description"`
	Color       string `form:"color" validate:"max=50"`
	Size        string `form:"size" validate:"max=50"`
	Price       string `form:"price" validate:"required,numeric"`
	Stock       string `form:"stock" validate:"required,number"`
}

// ImageStore persists uploaded product images.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
}

// Dashboard is the content of the admin dashboard.
type Dashboard struct {
	Products     []models.Product
	Orders       []models.Order
	Weekly       decimal.Decimal
	Monthly      decimal.Decimal
	Yearly       decimal.Decimal
	AverageDaily decimal.Decimal
}

// AdminService handles back-office product management and reporting.
type AdminService struct {
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	images      ImageStore
	validate    *validator.Validate
	log         logrus.FieldLogger
}

// NewAdminService creates a new AdminService.
func NewAdminService(productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository, images ImageStore, log logrus.FieldLogger) *AdminService {
	return &AdminService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		images:      images,
		validate:    validator.New(),
		log:         log,
	}
}

// Dashboard gathers products, paid orders and trailing sales totals as of now.
func (s *AdminService) Dashboard(now time.Time) (*Dashboard, error) {
	products, err := s.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListPaid()
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Products: products, Orders: orders}
	windows := []struct {
		span time.Duration
		dst  *decimal.Decimal
	}{
		{WeekWindow, &d.Weekly},
		{MonthWindow, &d.Monthly},
		{YearWindow, &d.Yearly},
	}
	for _, w := range windows {
		sum, err := s.orderRepo.SumPaidSince(now.Add(-w.span))
		if err != nil {
			return nil, err
		}
		*w.dst = sum
	}
	d.AverageDaily = d.Monthly.Div(decimal.NewFromInt(30)).Round(2)
	return d, nil
}

// CreateProduct stores a new, unlisted product. At most four files are
// considered; files without an accepted image extension are skipped.
func (s *AdminService) CreateProduct(input NewProduct, files []*multipart.FileHeader) (*models.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(input.Price))
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("%w: price %q", ErrInvalidProduct, input.Price)
	}
	stock, err := parseInt(input.Stock)
	if err != nil || stock < 0 {
		return nil, fmt.Errorf("%w: stock %q", ErrInvalidProduct, input.Stock)
	}

	product := &models.Product{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Color:       input.Color,
		Size:        input.Size,
		Price:       price,
		Stock:       stock,
		Listed:      false,
	}

	if len(files) > models.MaxProductImages {
		files = files[:models.MaxProductImages]
	}
	for _, fh := range files {
		if fh == nil || !uploads.Allowed(fh.Filename) {
			continue
		}
		path, err := s.images.Save(fh)
		if err != nil {
			return nil, err
		}
		product.Images = append(product.Images, models.ProductImage{Path: path})
	}
	if len(product.Images) > 0 {
		product.ImageURL = product.Images[0].Path
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"product_id": product.ID, "images": len(product.Images)}).Info("Product created")
	return product, nil
}

// UpdateStockAndPrice overwrites stock and price. The values are only
// parsed, not range checked.
func (s *AdminService) UpdateStockAndPrice(id uint, rawStock, rawPrice string) error {
	stock, err := parseInt(rawStock)
	if err != nil {
		return fmt.Errorf("%w: stock %q", ErrInvalidProduct, rawStock)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(rawPrice))
	if err != nil {
		return fmt.Errorf("%w: price %q", ErrInvalidProduct, rawPrice)
	}
	if err := s.productRepo.UpdateStockAndPrice(id, stock, price); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"product_id": id, "stock": stock, "price": price.StringFixed(2)}).Info("Stock and price updated")
	return nil
}

// ToggleListing flips the storefront visibility of a product. Unknown
// products are ignored.
func (s *AdminService) ToggleListing(id uint) error {
	found, err := s.productRepo.ToggleListing(id)
	if err != nil {
		return err
	}
	if !found {
		s.log.WithField("product_id", id).Debug("Toggle requested for unknown product")
	}
	return nil
}

func parseInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}
