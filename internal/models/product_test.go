package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pct(v float64) *float64 { return &v }

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		onSale   bool
		discount *float64
		want     float64
	}{
		{"quarter off", 100, true, pct(25), 75},
		{"not on sale ignores discount", 100, false, pct(25), 100},
		{"no discount value", 100, true, nil, 100},
		{"zero percent", 100, true, pct(0), 100},
		{"negative percent", 100, true, pct(-10), 100},
		{"full discount", 80, true, pct(100), 0},
		{"over 100 clamps", 80, true, pct(150), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, IsOnSale: tt.onSale, DiscountPercentage: tt.discount}
			assert.InDelta(t, tt.want, p.DiscountedPrice(), 0.001)
		})
	}
}

func TestSaleActive(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	p := Product{IsOnSale: true}
	assert.True(t, p.SaleActive(now), "open-ended sale stays active")

	p.SaleEndDate = &future
	assert.True(t, p.SaleActive(now))

	p.SaleEndDate = &past
	assert.False(t, p.SaleActive(now))

	p = Product{IsOnSale: false, SaleEndDate: &future}
	assert.False(t, p.SaleActive(now))
}
