package services_test

import (
	"testing"

	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShippingThresholds(t *testing.T) {
	cases := []struct {
		subtotal string
		cart     string
		checkout string
	}{
		{"100.00", "0", "0"},
		{"150", "0", "0"},
		{"99.99", "12.50", "12.50"},
		{"10", "12.50", "12.50"},
		{"0", "0", "12.50"},
	}
	for _, tc := range cases {
		subtotal := decimal.RequireFromString(tc.subtotal)
		assert.True(t, services.CartShipping(subtotal).Equal(decimal.RequireFromString(tc.cart)),
			"cart shipping for %s", tc.subtotal)
		assert.True(t, services.CheckoutShipping(subtotal).Equal(decimal.RequireFromString(tc.checkout)),
			"checkout shipping for %s", tc.subtotal)
	}
}
