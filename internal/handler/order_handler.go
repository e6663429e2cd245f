package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/models"
	"github.com/TanzilStore/store_api/internal/service"
	"github.com/TanzilStore/store_api/internal/utils"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns the order list with search, filters and pagination.
func (h *OrderHandler) List(c *gin.Context) {
	params := parseListParams(c)

	result := h.orderService.List(service.ListOrdersFilter{
		Search:        params.Search,
		Status:        c.Query("status"),
		PaymentStatus: c.Query("paymentStatus"),
		SortBy:        params.SortBy,
		SortDir:       params.SortDir,
		Page:          params.Page,
		Limit:         params.Limit,
	})

	utils.SuccessWithPagination(c, 200, "Orders retrieved successfully", gin.H{
		"orders": result.Orders,
	}, toMeta(result.Pagination), result.Fallback)
}

// Get returns a single order with its status history.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, 200, "Order retrieved successfully", order)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateStatus moves an order along the fulfilment lifecycle.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Status is required")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"),
		models.OrderStatus(req.Status), req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, 200, "Order status updated successfully", order)
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// UpdatePaymentStatus moves an order's payment state.
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "paymentStatus is required")
		return
	}

	order, err := h.orderService.UpdatePaymentStatus(c.Request.Context(), c.Param("id"),
		models.PaymentStatus(req.PaymentStatus))
	if err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, 200, "Order payment status updated successfully", order)
}

func (h *OrderHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrOrderNotFound):
		utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, utils.ErrInvalidStatus):
		utils.Error(c, 400, "INVALID_STATUS", "Unknown status value")
	case errors.Is(err, utils.ErrInvalidTransition):
		utils.Error(c, 422, "INVALID_TRANSITION", "Status transition is not allowed")
	default:
		log.Error().Err(err).Msg("order operation failed")
		utils.Error(c, 500, "INTERNAL_ERROR", "Order operation failed")
	}
}
