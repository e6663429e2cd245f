package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/models"
	"github.com/TanzilStore/store_api/internal/service"
	"github.com/TanzilStore/store_api/internal/utils"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Tree returns active categories nested for the storefront.
func (h *CategoryHandler) Tree(c *gin.Context) {
	result := h.categoryService.Tree(true)
	utils.SuccessWithFallback(c, 200, "Categories retrieved successfully", gin.H{
		"categories": result.Categories,
	}, result.Fallback)
}

// List returns all categories flat for the admin table.
func (h *CategoryHandler) List(c *gin.Context) {
	result := h.categoryService.Flat()
	utils.SuccessWithFallback(c, 200, "Categories retrieved successfully", gin.H{
		"categories": result.Categories,
	}, result.Fallback)
}

// Get returns a single category.
func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.categoryService.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, 200, "Category retrieved successfully", cat)
}

// Create stores a new category.
func (h *CategoryHandler) Create(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid category payload")
		return
	}

	if err := h.categoryService.Create(&cat); err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, 201, "Category created successfully", cat)
}

// Update modifies an existing category.
func (h *CategoryHandler) Update(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid category payload")
		return
	}
	cat.ID = c.Param("id")

	if err := h.categoryService.Update(&cat); err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, 200, "Category updated successfully", cat)
}

// Delete removes a category unless products or subcategories still
// reference it.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, 200, "Category deleted successfully", nil)
}

func (h *CategoryHandler) writeError(c *gin.Context, err error) {
	if ve, ok := utils.AsValidation(err); ok {
		utils.ValidationFailed(c, ve.Messages)
		return
	}
	switch {
	case errors.Is(err, utils.ErrCategoryNotFound):
		utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
	case errors.Is(err, utils.ErrCategoryInUse):
		utils.Error(c, 409, "CATEGORY_IN_USE", "Category still has products or subcategories")
	default:
		log.Error().Err(err).Msg("category operation failed")
		utils.Error(c, 500, "INTERNAL_ERROR", "Category operation failed")
	}
}
