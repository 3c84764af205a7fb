package handlers

import (
	"math"

	"storefront/internal/models"
)

// Pricing rules: 18% GST on the subtotal, flat shipping below the
// free-shipping threshold. Amounts are rupees.
const (
	taxRate               = 0.18
	freeShippingThreshold = 2000
	flatShippingFee       = 100
)

func computeTax(subtotal float64) float64 {
	return math.Round(subtotal * taxRate)
}

func computeShipping(subtotal float64) float64 {
	if subtotal >= freeShippingThreshold {
		return 0
	}
	return flatShippingFee
}

// computeOrderPricing derives the full pricing block from a subtotal. It runs
// once at order creation; the result is stored and never recomputed.
func computeOrderPricing(subtotal float64) models.Pricing {
	tax := computeTax(subtotal)
	shipping := computeShipping(subtotal)
	return models.Pricing{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
	}
}
