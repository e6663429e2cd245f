// Package seed holds the built-in fallback dataset. When a collection
// fetch fails, loaders answer with these records instead of propagating
// the failure, and mark the resulting snapshot as fallback data.
package seed

import (
	"time"

	"github.com/lib/pq"

	"github.com/TanzilStore/store_api/internal/models"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

var seededAt = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

// Products returns a fresh copy of the fallback product collection.
func Products() []models.Product {
	return []models.Product{
		{
			ID:            "seed-p1",
			Name:          "Dishwashing Liquid",
			NameAr:        "سائل غسيل الأطباق",
			Description:   "Concentrated dishwashing liquid with lemon scent",
			DescriptionAr: "سائل مركز لغسيل الأطباق برائحة الليمون",
			Price:         25.99,
			CategoryID:    "seed-c1",
			Images:        pq.StringArray{"products/dishwashing-liquid.jpg"},
			Rating:        4.5,
			ReviewsCount:  128,
			Stock:         50,
			IsBestSeller:  true,
			CreatedAt:     seededAt,
			UpdatedAt:     seededAt,
		},
		{
			ID:                 "seed-p2",
			Name:               "Lavender Floor Cleaner",
			NameAr:             "منظف أرضيات باللافندر",
			Description:        "Floor cleaner with long-lasting lavender fragrance",
			DescriptionAr:      "منظف أرضيات برائحة اللافندر تدوم طويلاً",
			Price:              45.99,
			CategoryID:         "seed-c1",
			Images:             pq.StringArray{"products/floor-cleaner.jpg"},
			Rating:             4.2,
			ReviewsCount:       86,
			Stock:              30,
			IsOnSale:           true,
			DiscountPercentage: f64Ptr(25),
			CreatedAt:          seededAt,
			UpdatedAt:          seededAt,
		},
		{
			ID:            "seed-p3",
			Name:          "Bathroom Cleaner",
			NameAr:        "منظف الحمامات",
			Description:   "Heavy-duty bathroom and tile cleaner",
			DescriptionAr: "منظف قوي للحمامات والبلاط",
			Price:         60.00,
			CategoryID:    "seed-c1",
			Images:        pq.StringArray{"products/bathroom-cleaner.jpg"},
			Rating:        4.7,
			ReviewsCount:  54,
			Stock:         18,
			IsFeatured:    true,
			CreatedAt:     seededAt,
			UpdatedAt:     seededAt,
		},
		{
			ID:            "seed-p4",
			Name:          "Microfiber Mop Set",
			NameAr:        "طقم ممسحة مايكروفايبر",
			Description:   "Mop set with two washable microfiber pads",
			DescriptionAr: "طقم ممسحة مع وسادتين قابلتين للغسل",
			Price:         120.00,
			CategoryID:    "seed-c2",
			Images:        pq.StringArray{"products/mop-set.jpg"},
			Rating:        4.0,
			ReviewsCount:  21,
			Stock:         12,
			CreatedAt:     seededAt,
			UpdatedAt:     seededAt,
		},
	}
}

// Categories returns a fresh copy of the fallback category collection.
func Categories() []models.Category {
	return []models.Category{
		{
			ID:        "seed-c1",
			Name:      "Cleaners",
			NameAr:    "منظفات",
			Icon:      "spray",
			Type:      models.CategoryTypeMain,
			IsActive:  true,
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
		{
			ID:        "seed-c2",
			Name:      "Household Tools",
			NameAr:    "أدوات منزلية",
			Icon:      "tools",
			Type:      models.CategoryTypeMain,
			IsActive:  true,
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
		{
			ID:        "seed-c3",
			Name:      "Floor Care",
			NameAr:    "العناية بالأرضيات",
			Type:      models.CategoryTypeSub,
			ParentID:  strPtr("seed-c1"),
			IsActive:  true,
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
	}
}

// Orders returns a fresh copy of the fallback order collection.
func Orders() []models.Order {
	created1 := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	created2 := time.Date(2024, 1, 14, 14, 0, 0, 0, time.UTC)
	return []models.Order{
		{
			ID:            "seed-o1",
			OrderNumber:   "ORD-001",
			CustomerName:  "أحمد محمد",
			CustomerEmail: "ahmed@example.com",
			CustomerPhone: "+201234567890",
			Items: models.OrderItems{
				{ProductID: "seed-p1", Name: "Dishwashing Liquid", Price: 25.99, Quantity: 2},
				{ProductID: "seed-p2", Name: "Lavender Floor Cleaner", Price: 45.99, Quantity: 1},
			},
			Total:         97.97,
			Status:        models.OrderStatusConfirmed,
			PaymentStatus: models.PaymentStatusPaid,
			StatusHistory: models.StatusHistory{
				{Status: models.OrderStatusPending, Timestamp: created1, Note: "Order created"},
				{Status: models.OrderStatusConfirmed, Timestamp: created1.Add(2 * time.Hour), Note: "Order confirmed"},
			},
			CreatedAt: created1,
			UpdatedAt: created1.Add(2 * time.Hour),
		},
		{
			ID:            "seed-o2",
			OrderNumber:   "ORD-002",
			CustomerName:  "فاطمة علي",
			CustomerEmail: "fatima@example.com",
			CustomerPhone: "+201234567891",
			Items: models.OrderItems{
				{ProductID: "seed-p3", Name: "Bathroom Cleaner", Price: 60.00, Quantity: 1},
			},
			Total:         60.00,
			Status:        models.OrderStatusShipped,
			PaymentStatus: models.PaymentStatusPaid,
			StatusHistory: models.StatusHistory{
				{Status: models.OrderStatusPending, Timestamp: created2, Note: "Order created"},
				{Status: models.OrderStatusConfirmed, Timestamp: created2.Add(time.Hour), Note: "Order confirmed"},
				{Status: models.OrderStatusShipped, Timestamp: created2.Add(26 * time.Hour), Note: "Order shipped"},
			},
			CreatedAt: created2,
			UpdatedAt: created2.Add(26 * time.Hour),
		},
	}
}

// Users returns a fresh copy of the fallback user collection.
func Users() []models.User {
	return []models.User{
		{
			ID:        "seed-u1",
			Name:      "Store Admin",
			Email:     "admin@tanzil.store",
			Role:      models.RoleAdmin,
			IsActive:  true,
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
	}
}
