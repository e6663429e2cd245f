package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/models"
	"github.com/TanzilStore/store_api/internal/service"
	"github.com/TanzilStore/store_api/internal/utils"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns the product list with search, filters and pagination.
func (h *ProductHandler) List(c *gin.Context) {
	params := parseListParams(c)

	result := h.productService.List(service.ListProductsFilter{
		Search:   params.Search,
		Category: c.Query("category"),
		OnSale:   parseBoolQuery(c, "isOnSale"),
		Featured: parseBoolQuery(c, "isFeatured"),
		SortBy:   params.SortBy,
		SortDir:  params.SortDir,
		Page:     params.Page,
		Limit:    params.Limit,
	})

	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"products": result.Products,
	}, toMeta(result.Pagination), result.Fallback)
}

// Get returns a single product.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", product)
}

// Create stores a new product.
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product payload")
		return
	}

	if err := h.productService.Create(c.Request.Context(), &product); err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, 201, "Product created successfully", product)
}

// Update modifies an existing product.
func (h *ProductHandler) Update(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product payload")
		return
	}
	product.ID = c.Param("id")

	if err := h.productService.Update(c.Request.Context(), &product); err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, 200, "Product updated successfully", product)
}

// Delete removes a product.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, 200, "Product deleted successfully", nil)
}

func (h *ProductHandler) writeError(c *gin.Context, err error) {
	if ve, ok := utils.AsValidation(err); ok {
		utils.ValidationFailed(c, ve.Messages)
		return
	}
	if errors.Is(err, utils.ErrProductNotFound) {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}
	log.Error().Err(err).Msg("product operation failed")
	utils.Error(c, 500, "INTERNAL_ERROR", "Product operation failed")
}
