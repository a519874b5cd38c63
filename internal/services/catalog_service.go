package services

import (
	"errors"
	"fmt"
	"sort"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ErrProductNotFound is returned when a product does not exist or is not
// visible on the storefront.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows the storefront listing. Empty fields match anything.
type ProductFilter struct {
	Color    string
	Size     string
	Category string
}

func (f ProductFilter) matches(p models.Product) bool {
	return (f.Color == "" || p.Color == f.Color) &&
		(f.Size == "" || p.Size == f.Size) &&
		(f.Category == "" || p.Category == f.Category)
}

// CategoryGroup is the listed products of one category.
type CategoryGroup struct {
	Category string
	Products []models.Product
}

// Storefront is the content of the catalogue page.
type Storefront struct {
	Products   []models.Product // listed products matching the filter
	Groups     []CategoryGroup  // every listed product, by category
	Colors     []string
	Sizes      []string
	Categories []string
}

// ProductDetail is a product with its images in display order.
type ProductDetail struct {
	Product models.Product
	Images  []models.ProductImage
}

// CatalogService handles the read side of the storefront.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// Storefront lists the listed products, filtered and grouped.
func (s *CatalogService) Storefront(filter ProductFilter) (*Storefront, error) {
	listed, err := s.repo.ListListed()
	if err != nil {
		return nil, fmt.Errorf("failed to load storefront: %w", err)
	}

	front := &Storefront{Products: []models.Product{}}
	colors := map[string]struct{}{}
	sizes := map[string]struct{}{}
	byCategory := map[string][]models.Product{}

	for _, p := range listed {
		if filter.matches(p) {
			front.Products = append(front.Products, p)
		}
		byCategory[p.Category] = append(byCategory[p.Category], p)
		if p.Color != "" {
			colors[p.Color] = struct{}{}
		}
		if p.Size != "" {
			sizes[p.Size] = struct{}{}
		}
	}

	front.Colors = sortedKeys(colors)
	front.Sizes = sortedKeys(sizes)
	for category := range byCategory {
		if category != "" {
			front.Categories = append(front.Categories, category)
		}
	}
	sort.Strings(front.Categories)

	groupOrder := make([]string, 0, len(byCategory))
	for category := range byCategory {
		groupOrder = append(groupOrder, category)
	}
	sort.Strings(groupOrder)
	for _, category := range groupOrder {
		front.Groups = append(front.Groups, CategoryGroup{Category: category, Products: byCategory[category]})
	}
	return front, nil
}

// Product returns a listed product and its images.
func (s *CatalogService) Product(id uint) (*ProductDetail, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
		}
		return nil, err
	}
	if !product.Listed {
		return nil, fmt.Errorf("product %d is not listed: %w", id, ErrProductNotFound)
	}
	return &ProductDetail{Product: *product, Images: product.Images}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
