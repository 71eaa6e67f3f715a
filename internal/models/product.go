package models

import (
	"time"
)

// Product categories used by the pricing table for bundle tiers and the
// direct-mailing surcharge.
const (
	CategoryMagnetsA5      = "magnety-a5"
	CategoryMagnetsClassic = "magnety-klasik"
	CategoryStickers       = "samolepky"
	CategoryPostcards      = "pohlednice"
	CategoryPhotoCanvas    = "fotoobrazy"
)

// Product is the read-mostly catalog record. The storefront holds it as
// reference data; only the admin panel writes it.
type Product struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	Category         string           `json:"category"`
	Description      string           `json:"description"`
	BasePrice        float64          `json:"base_price"`
	ImageURL         string           `json:"image_url"`
	GalleryURLs      []string         `json:"gallery_urls"`
	RequiredPhotos   int              `json:"required_photos"`
	CustomTextFields []string         `json:"custom_text_fields"`
	Active           bool             `json:"active"`
	Variants         []ProductVariant `json:"variants,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ProductVariant belongs to exactly one product. A nil PriceOverride means
// the variant sells at the product's base price; a nil RequiredPhotos means
// the product's photo count applies.
type ProductVariant struct {
	ID             int       `json:"id"`
	ProductID      int       `json:"product_id"`
	Name           string    `json:"name"`
	PriceOverride  *float64  `json:"price_override,omitempty"`
	RequiredPhotos *int      `json:"required_photos,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UnitPrice resolves the effective unit price for an optional variant.
func (p *Product) UnitPrice(variant *ProductVariant) float64 {
	if variant != nil && variant.PriceOverride != nil {
		return *variant.PriceOverride
	}
	return p.BasePrice
}

// PhotoCount resolves the required photo count for an optional variant.
func (p *Product) PhotoCount(variant *ProductVariant) int {
	if variant != nil && variant.RequiredPhotos != nil {
		return *variant.RequiredPhotos
	}
	return p.RequiredPhotos
}

type ProductRequest struct {
	Name             string   `json:"name" binding:"required"`
	Slug             string   `json:"slug" binding:"required"`
	Category         string   `json:"category" binding:"required"`
	Description      string   `json:"description"`
	BasePrice        float64  `json:"base_price" binding:"required,gt=0"`
	ImageURL         string   `json:"image_url"`
	GalleryURLs      []string `json:"gallery_urls"`
	RequiredPhotos   int      `json:"required_photos" binding:"min=0"`
	CustomTextFields []string `json:"custom_text_fields"`
	Active           bool     `json:"active"`
}

type ProductVariantRequest struct {
	ProductID      int      `json:"product_id" binding:"required"`
	Name           string   `json:"name" binding:"required"`
	PriceOverride  *float64 `json:"price_override,omitempty"`
	RequiredPhotos *int     `json:"required_photos,omitempty"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}
