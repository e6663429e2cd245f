package models

import (
	"time"

	"github.com/lib/pq"
)

// Product represents a catalog product. Name and description carry an
// Arabic counterpart because the storefront renders both locales.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID                 string         `db:"id" json:"id"`
	Name               string         `db:"name" json:"name"`
	NameAr             string         `db:"name_ar" json:"nameAr"`
	Description        string         `db:"description" json:"description"`
	DescriptionAr      string         `db:"description_ar" json:"descriptionAr"`
	Price              float64        `db:"price" json:"price"`
	OriginalPrice      *float64       `db:"original_price" json:"originalPrice,omitempty"`
	CategoryID         string         `db:"category_id" json:"category"`
	SubCategoryID      *string        `db:"sub_category_id" json:"subCategory,omitempty"`
	Images             pq.StringArray `db:"images" json:"images"`
	Rating             float64        `db:"rating" json:"rating"`
	ReviewsCount       int            `db:"reviews_count" json:"reviewsCount"`
	Stock              int            `db:"stock" json:"stock"`
	IsFeatured         bool           `db:"is_featured" json:"isFeatured"`
	IsBestSeller       bool           `db:"is_best_seller" json:"isBestSeller"`
	IsOnSale           bool           `db:"is_on_sale" json:"isOnSale"`
	DiscountPercentage *float64       `db:"discount_percentage" json:"discountPercentage,omitempty"`
	SaleEndDate        *time.Time     `db:"sale_end_date" json:"saleEndDate,omitempty"`
	CreatedAt          time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updatedAt"`
}

// DiscountedPrice returns the effective selling price after the sale
// discount. Products that are not on sale, or carry a non-positive
// percentage, sell at full price. The result never goes below zero.
func (p *Product) DiscountedPrice() float64 {
	if !p.IsOnSale || p.DiscountPercentage == nil || *p.DiscountPercentage <= 0 {
		return p.Price
	}
	pct := *p.DiscountPercentage
	if pct > 100 {
		pct = 100
	}
	price := p.Price * (1 - pct/100)
	if price < 0 {
		return 0
	}
	return price
}

// SaleActive reports whether the sale window is still open at the given time.
// A sale with no end date stays active while isOnSale is set.
func (p *Product) SaleActive(now time.Time) bool {
	if !p.IsOnSale {
		return false
	}
	if p.SaleEndDate == nil {
		return true
	}
	return now.Before(*p.SaleEndDate)
}
