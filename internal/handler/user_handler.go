package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TanzilStore/store_api/internal/service"
	"github.com/TanzilStore/store_api/internal/utils"
)

// UserHandler handles user account listing for the admin dashboard.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns the user list with search and pagination.
func (h *UserHandler) List(c *gin.Context) {
	params := parseListParams(c)

	result := h.userService.List(service.ListUsersFilter{
		Search:  params.Search,
		Role:    c.Query("role"),
		SortBy:  params.SortBy,
		SortDir: params.SortDir,
		Page:    params.Page,
		Limit:   params.Limit,
	})

	utils.SuccessWithPagination(c, 200, "Users retrieved successfully", gin.H{
		"users": result.Users,
	}, toMeta(result.Pagination), result.Fallback)
}
