package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOrderPricingBelowThreshold(t *testing.T) {
	pricing := computeOrderPricing(1000)

	assert.Equal(t, 1000.0, pricing.Subtotal)
	assert.Equal(t, 180.0, pricing.Tax)
	assert.Equal(t, 100.0, pricing.Shipping)
	assert.Equal(t, 1280.0, pricing.Total)
}

func TestComputeOrderPricingFreeShippingAtThreshold(t *testing.T) {
	pricing := computeOrderPricing(2000)

	assert.Equal(t, 360.0, pricing.Tax)
	assert.Equal(t, 0.0, pricing.Shipping)
	assert.Equal(t, 2360.0, pricing.Total)
}

func TestComputeTaxRounds(t *testing.T) {
	// 18% of 1098.50 is 197.73, which rounds to 198.
	assert.Equal(t, 198.0, computeTax(1098.50))
	assert.Equal(t, 0.0, computeTax(0))
}

func TestComputeOrderPricingTotalIsSumOfParts(t *testing.T) {
	for _, subtotal := range []float64{1, 499.5, 1999.99, 2000, 25000} {
		pricing := computeOrderPricing(subtotal)
		assert.Equal(t, pricing.Subtotal+pricing.Tax+pricing.Shipping, pricing.Total, "subtotal %v", subtotal)
	}
}
