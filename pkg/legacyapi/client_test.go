package legacyapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanzilStore/store_api/internal/models"
)

func TestGetProductsRequiresCredential(t *testing.T) {
	c := NewClient("http://unused", "")
	_, err := c.GetProducts(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestGetProductsDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/products/admin", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": [{"_id": "64abc", "name": "Mop", "price": 9.5, "stock": 3}],
			"pagination": {"current": 2, "pages": 4, "total": 40, "limit": 10}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	page, err := c.GetProducts(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "64abc", page.Products[0].Identifier())
	assert.Equal(t, 4, page.Pagination.Pages)
}

func TestGetProductsRejectedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "token expired"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	_, err := c.GetProducts(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestGetCategoriesFallsBackToPublic(t *testing.T) {
	var adminCalled, publicCalled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/categories/admin":
			adminCalled = true
			w.WriteHeader(http.StatusInternalServerError)
		case "/categories":
			publicCalled = true
			w.Write([]byte(`{"success": true, "data": [{"id": "c1", "name": "Cleaners"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	cats, err := c.GetCategories(context.Background())
	require.NoError(t, err)
	assert.True(t, adminCalled)
	assert.True(t, publicCalled)
	require.Len(t, cats, 1)
	assert.Equal(t, "c1", cats[0].Identifier())
}

func TestGetCategoriesWithoutCredentialGoesPublicDirectly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.GetCategories(context.Background())
	assert.NoError(t, err)
}

func TestDecodeOrdersShapeVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id": "o1"}, {"id": "o2"}]`, 2},
		{"envelope with array", `{"success": true, "data": [{"_id": "o1"}]}`, 1},
		{"envelope with single object", `{"success": true, "data": {"_id": "o1"}}`, 1},
		{"single object", `{"id": "o1", "orderNumber": "ORD-001"}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := decodeOrders([]byte(tt.body))
			require.NoError(t, err)
			assert.Len(t, orders, tt.want)
		})
	}
}

func TestDecodeOrdersUnrecognizedShape(t *testing.T) {
	_, err := decodeOrders([]byte(`"just a string"`))
	assert.Error(t, err)
}

func TestProductNormalizeFallbacks(t *testing.T) {
	now := time.Now()
	p := Product{
		Record: Record{MongoID: "64abc"},
		Name:   "Mop",
		Price:  9.5,
		Stock:  -2,
	}

	got := p.Normalize(now)
	assert.Equal(t, "64abc", got.ID)
	assert.Equal(t, "Mop", got.NameAr, "missing Arabic name falls back to English")
	assert.Equal(t, 0, got.Stock, "negative stock clamps to zero")
	assert.Equal(t, now, got.CreatedAt)
}

func TestCategoryNormalizeDerivesType(t *testing.T) {
	now := time.Now()

	main := Category{Record: Record{PlainID: "c1"}, Name: "Cleaners"}
	got := main.Normalize(now)
	assert.Equal(t, models.CategoryTypeMain, got.Type)
	assert.True(t, got.IsActive, "active defaults to true when absent")

	parent := "c1"
	sub := Category{Record: Record{PlainID: "c2"}, Name: "Floor Care", Parent: &parent}
	got = sub.Normalize(now)
	assert.Equal(t, models.CategoryTypeSub, got.Type)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, "c1", *got.ParentID)
}

func TestOrderNormalizeDegradesGracefully(t *testing.T) {
	now := time.Now()
	o := Order{Record: Record{MongoID: "o1"}, OrderNumber: "ORD-009", Status: "lost-in-transit"}
	o.Items = append(o.Items, struct {
		ProductID string  `json:"productId"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
	}{ProductID: "p1", Name: "Mop", Price: 10, Quantity: 0})

	got := o.Normalize(now)
	assert.Equal(t, models.OrderStatusPending, got.Status, "unknown status degrades to pending")
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity, "zero quantity clamps to one")
	assert.Equal(t, 10.0, got.Total, "missing total recomputes from items")
}
