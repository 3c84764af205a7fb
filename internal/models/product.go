package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SizeOption is a per-size stock counter. Sizes and colors carry independent
// counters; decrementing one does not touch the other.
type SizeOption struct {
	Name  string `bson:"name" json:"name"`
	Stock int    `bson:"stock" json:"stock"`
}

type ColorOption struct {
	Name  string `bson:"name" json:"name"`
	Code  string `bson:"code" json:"code"`
	Stock int    `bson:"stock" json:"stock"`
}

type ProductImage struct {
	URL       string `bson:"url" json:"url"`
	Alt       string `bson:"alt" json:"alt"`
	IsPrimary bool   `bson:"isPrimary" json:"isPrimary"`
}

// ProductPrice holds the price block. Discounted == 0 means no discount is set.
type ProductPrice struct {
	Base       float64 `bson:"base" json:"base"`
	Discounted float64 `bson:"discounted,omitempty" json:"discounted,omitempty"`
	Currency   string  `bson:"currency" json:"currency"`
}

type ProductRatings struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// Product is the catalog document. ProductID is the stable external id used by
// the storefront; it is distinct from the storage-assigned ObjectID.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProductID   string             `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Price       ProductPrice       `bson:"price" json:"price"`
	Images      []ProductImage     `bson:"images" json:"images"`
	Sizes       []SizeOption       `bson:"sizes" json:"sizes"`
	Colors      []ColorOption      `bson:"colors" json:"colors"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	IsFeatured  bool               `bson:"isFeatured" json:"isFeatured"`
	Ratings     ProductRatings     `bson:"ratings" json:"ratings"`
	ViewCount   int                `bson:"viewCount" json:"viewCount"`
	SalesCount  int                `bson:"salesCount" json:"salesCount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EffectivePrice returns the discounted price when one is set, the base price
// otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.Price.Discounted > 0 {
		return p.Price.Discounted
	}
	return p.Price.Base
}

// TotalStock sums the size-dimension counters.
func (p *Product) TotalStock() int {
	total := 0
	for _, size := range p.Sizes {
		total += size.Stock
	}
	return total
}

func (p *Product) Availability() string {
	total := p.TotalStock()
	switch {
	case total == 0:
		return "out-of-stock"
	case total <= 5:
		return "low-stock"
	default:
		return "in-stock"
	}
}

// PrimaryImage returns the image flagged primary, falling back to the first.
func (p *Product) PrimaryImage() ProductImage {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ProductImage{}
}

// FindSize returns a pointer into Sizes so callers can mutate stock in place.
func (p *Product) FindSize(name string) *SizeOption {
	for i := range p.Sizes {
		if p.Sizes[i].Name == name {
			return &p.Sizes[i]
		}
	}
	return nil
}

func (p *Product) FindColor(name string) *ColorOption {
	for i := range p.Colors {
		if p.Colors[i].Name == name {
			return &p.Colors[i]
		}
	}
	return nil
}

// DecrementStock lowers the matching size and color counters by qty. The two
// dimensions are decremented independently against the same quantity, and each
// counter clamps at zero instead of going negative. A missing entry is skipped.
func (p *Product) DecrementStock(size, color string, qty int) {
	if sizeOpt := p.FindSize(size); sizeOpt != nil {
		sizeOpt.Stock -= qty
		if sizeOpt.Stock < 0 {
			sizeOpt.Stock = 0
		}
	}
	if colorOpt := p.FindColor(color); colorOpt != nil {
		colorOpt.Stock -= qty
		if colorOpt.Stock < 0 {
			colorOpt.Stock = 0
		}
	}
}

func (p *Product) IncrementSales(qty int) {
	p.SalesCount += qty
}
