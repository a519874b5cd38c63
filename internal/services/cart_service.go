package services

import (
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/session"

	"github.com/shopspring/decimal"
)

// CartLine is one resolved cart entry.
type CartLine struct {
	Product   models.Product
	Quantity  int
	LineTotal decimal.Decimal
}

// CartView is the cart priced against the current catalogue.
type CartView struct {
	Lines    []CartLine
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// CartService prices and edits session carts.
type CartService struct {
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		productRepo: productRepo,
	}
}

// ParseQuantity reads a quantity form value. Anything that is not a
// positive integer counts as one.
func ParseQuantity(raw string) int {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty <= 0 {
		return 1
	}
	return qty
}

// Add puts quantity units of productID in the cart.
func (s *CartService) Add(cart session.Cart, productID uint, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	cart.Add(productID, quantity)
}

// Remove drops productID from the cart.
func (s *CartService) Remove(cart session.Cart, productID uint) {
	cart.Remove(productID)
}

// View resolves the cart against the stored products. Lines whose product
// no longer exists are left out.
func (s *CartService) View(cart session.Cart) (*CartView, error) {
	lines, subtotal, err := resolveCart(s.productRepo, cart)
	if err != nil {
		return nil, err
	}
	shipping := CartShipping(subtotal)
	return &CartView{
		Lines:    lines,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}, nil
}

func resolveCart(repo repositories.ProductRepository, cart session.Cart) ([]CartLine, decimal.Decimal, error) {
	subtotal := decimal.Zero
	if cart.IsEmpty() {
		return nil, subtotal, nil
	}

	products, err := repo.GetByIDs(cart.ProductIDs())
	if err != nil {
		return nil, subtotal, fmt.Errorf("failed to resolve cart: %w", err)
	}

	lines := make([]CartLine, 0, len(products))
	for _, p := range products {
		qty := cart.Quantity(p.ID)
		if qty <= 0 {
			continue
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, CartLine{Product: p, Quantity: qty, LineTotal: lineTotal})
	}
	return lines, subtotal, nil
}
