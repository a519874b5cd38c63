package services

import "github.com/shopspring/decimal"

var (
	// FreeShippingThreshold is the subtotal from which shipping is free.
	FreeShippingThreshold = decimal.NewFromInt(100)
	// FlatShippingRate is charged below the threshold.
	FlatShippingRate = decimal.RequireFromString("12.50")
)

// CartShipping is the shipping shown on the cart page. An empty cart costs
// nothing to ship.
func CartShipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) || !subtotal.IsPositive() {
		return decimal.Zero
	}
	return FlatShippingRate
}

// CheckoutShipping is the shipping charged on an order. Only the threshold
// waives it.
func CheckoutShipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingRate
}
