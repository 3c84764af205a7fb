package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct() *Product {
	return &Product{
		ProductID: "uniform-shirt-01",
		Name:      "School Shirt",
		Price:     ProductPrice{Base: 450, Currency: "INR"},
		Sizes: []SizeOption{
			{Name: "M", Stock: 10},
			{Name: "L", Stock: 3},
		},
		Colors: []ColorOption{
			{Name: "White", Code: "#ffffff", Stock: 8},
			{Name: "Blue", Code: "#2244aa", Stock: 5},
		},
	}
}

func TestEffectivePrice(t *testing.T) {
	p := sampleProduct()
	assert.Equal(t, 450.0, p.EffectivePrice())

	p.Price.Discounted = 399
	assert.Equal(t, 399.0, p.EffectivePrice())
}

func TestTotalStockUsesSizeDimension(t *testing.T) {
	p := sampleProduct()
	assert.Equal(t, 13, p.TotalStock())
}

func TestAvailability(t *testing.T) {
	p := sampleProduct()
	assert.Equal(t, "in-stock", p.Availability())

	p.Sizes = []SizeOption{{Name: "M", Stock: 5}}
	assert.Equal(t, "low-stock", p.Availability())

	p.Sizes = []SizeOption{{Name: "M", Stock: 0}}
	assert.Equal(t, "out-of-stock", p.Availability())
}

func TestPrimaryImageFallback(t *testing.T) {
	p := sampleProduct()
	assert.Equal(t, ProductImage{}, p.PrimaryImage())

	p.Images = []ProductImage{
		{URL: "a.jpg"},
		{URL: "b.jpg", IsPrimary: true},
	}
	assert.Equal(t, "b.jpg", p.PrimaryImage().URL)

	p.Images[1].IsPrimary = false
	assert.Equal(t, "a.jpg", p.PrimaryImage().URL)
}

func TestDecrementStockBothDimensions(t *testing.T) {
	p := sampleProduct()
	p.DecrementStock("M", "White", 4)

	require.NotNil(t, p.FindSize("M"))
	assert.Equal(t, 6, p.FindSize("M").Stock)
	assert.Equal(t, 4, p.FindColor("White").Stock)
	// Other entries untouched.
	assert.Equal(t, 3, p.FindSize("L").Stock)
	assert.Equal(t, 5, p.FindColor("Blue").Stock)
}

func TestDecrementStockClampsAtZero(t *testing.T) {
	p := sampleProduct()
	p.DecrementStock("L", "Blue", 100)

	assert.Equal(t, 0, p.FindSize("L").Stock)
	assert.Equal(t, 0, p.FindColor("Blue").Stock)
}

func TestDecrementStockMissingEntriesSkipped(t *testing.T) {
	p := sampleProduct()
	p.DecrementStock("XXL", "Green", 2)

	assert.Equal(t, 13, p.TotalStock())
	assert.Nil(t, p.FindSize("XXL"))
	assert.Nil(t, p.FindColor("Green"))
}

func TestIncrementSales(t *testing.T) {
	p := sampleProduct()
	p.IncrementSales(3)
	p.IncrementSales(2)
	assert.Equal(t, 5, p.SalesCount)
}
