package legacyapi

import (
	"encoding/json"
	"time"

	"github.com/TanzilStore/store_api/internal/models"
)

// The legacy storefront API is loosely typed: identifiers arrive as
// "_id" or "id" depending on the endpoint, localized fields may be
// missing, and numeric fields occasionally arrive as null. These types
// absorb that variance; Normalize* methods produce the single canonical
// record shape the rest of the service works with. The core never
// branches on source-specific field naming.

// Envelope is the standard legacy response wrapper.
type Envelope struct {
	Success    bool             `json:"success"`
	Data       json.RawMessage  `json:"data"`
	Pagination *PaginationBlock `json:"pagination,omitempty"`
	Message    string           `json:"message,omitempty"`
}

// PaginationBlock mirrors the legacy pagination metadata.
type PaginationBlock struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
	Limit   int `json:"limit"`
}

// Record carries the identifier variants the legacy API emits.
type Record struct {
	MongoID string `json:"_id"`
	PlainID string `json:"id"`
}

// Identifier returns whichever identifier field is populated.
func (r Record) Identifier() string {
	if r.MongoID != "" {
		return r.MongoID
	}
	return r.PlainID
}

// Product is a product record as the legacy API ships it.
type Product struct {
	Record
	Name               string     `json:"name"`
	NameAr             string     `json:"nameAr"`
	Description        string     `json:"description"`
	DescriptionAr      string     `json:"descriptionAr"`
	Price              float64    `json:"price"`
	OriginalPrice      *float64   `json:"originalPrice"`
	Category           string     `json:"category"`
	SubCategory        *string    `json:"subCategory"`
	Images             []string   `json:"images"`
	Rating             float64    `json:"rating"`
	ReviewsCount       int        `json:"reviewsCount"`
	Stock              int        `json:"stock"`
	IsFeatured         bool       `json:"isFeatured"`
	IsBestSeller       bool       `json:"isBestSeller"`
	IsOnSale           bool       `json:"isOnSale"`
	DiscountPercentage *float64   `json:"discountPercentage"`
	SaleEndDate        *time.Time `json:"saleEndDate"`
	CreatedAt          *time.Time `json:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt"`
}

// Normalize maps a legacy product onto the canonical model. Missing
// localized fields fall back to their English counterpart, matching the
// dashboard's historical mapping.
func (p Product) Normalize(now time.Time) models.Product {
	out := models.Product{
		ID:                 p.Identifier(),
		Name:               p.Name,
		NameAr:             fallback(p.NameAr, p.Name),
		Description:        p.Description,
		DescriptionAr:      fallback(p.DescriptionAr, p.Description),
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		CategoryID:         p.Category,
		SubCategoryID:      p.SubCategory,
		Images:             p.Images,
		Rating:             p.Rating,
		ReviewsCount:       p.ReviewsCount,
		Stock:              p.Stock,
		IsFeatured:         p.IsFeatured,
		IsBestSeller:       p.IsBestSeller,
		IsOnSale:           p.IsOnSale,
		DiscountPercentage: p.DiscountPercentage,
		SaleEndDate:        p.SaleEndDate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if p.CreatedAt != nil {
		out.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		out.UpdatedAt = *p.UpdatedAt
	}
	if out.Stock < 0 {
		out.Stock = 0
	}
	return out
}

// Category is a category record as the legacy API ships it. The legacy
// API does not carry an explicit type: a record with a parent is a
// subcategory, everything else is a main category.
type Category struct {
	Record
	Name          string     `json:"name"`
	NameAr        string     `json:"nameAr"`
	Description   string     `json:"description"`
	DescriptionAr string     `json:"descriptionAr"`
	Icon          string     `json:"icon"`
	Image         string     `json:"image"`
	Parent        *string    `json:"parent"`
	ProductCount  int        `json:"productCount"`
	IsActive      *bool      `json:"isActive"`
	CreatedAt     *time.Time `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

// Normalize maps a legacy category onto the canonical model.
func (c Category) Normalize(now time.Time) models.Category {
	out := models.Category{
		ID:            c.Identifier(),
		Name:          c.Name,
		NameAr:        fallback(c.NameAr, c.Name),
		Description:   c.Description,
		DescriptionAr: fallback(c.DescriptionAr, c.Description),
		Icon:          fallback(c.Icon, "folder"),
		Image:         c.Image,
		Type:          models.CategoryTypeMain,
		ProductCount:  c.ProductCount,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if c.Parent != nil && *c.Parent != "" {
		out.Type = models.CategoryTypeSub
		out.ParentID = c.Parent
	}
	if c.IsActive != nil {
		out.IsActive = *c.IsActive
	}
	if c.CreatedAt != nil {
		out.CreatedAt = *c.CreatedAt
	}
	if c.UpdatedAt != nil {
		out.UpdatedAt = *c.UpdatedAt
	}
	return out
}

// Order is an order record as the legacy API ships it.
type Order struct {
	Record
	OrderNumber string `json:"orderNumber"`
	Customer    struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"customer"`
	Items []struct {
		ProductID string  `json:"productId"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
	} `json:"items"`
	Total         float64    `json:"total"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	Notes         string     `json:"notes"`
	CreatedAt     *time.Time `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

// Normalize maps a legacy order onto the canonical model. Unknown
// status strings degrade to pending rather than failing the import.
func (o Order) Normalize(now time.Time) models.Order {
	out := models.Order{
		ID:            o.Identifier(),
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.Customer.Name,
		CustomerEmail: o.Customer.Email,
		CustomerPhone: o.Customer.Phone,
		Total:         o.Total,
		Status:        models.OrderStatus(o.Status),
		PaymentStatus: models.PaymentStatus(o.PaymentStatus),
		Notes:         o.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, it := range o.Items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		out.Items = append(out.Items, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  qty,
		})
	}
	if !out.Status.Valid() {
		out.Status = models.OrderStatusPending
	}
	if !out.PaymentStatus.Valid() {
		out.PaymentStatus = models.PaymentStatusPending
	}
	if out.Total == 0 {
		out.Total = out.ItemsTotal()
	}
	if o.CreatedAt != nil {
		out.CreatedAt = *o.CreatedAt
	}
	if o.UpdatedAt != nil {
		out.UpdatedAt = *o.UpdatedAt
	}
	return out
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
