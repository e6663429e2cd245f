package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TanzilStore/store_api/internal/service"
	"github.com/TanzilStore/store_api/internal/utils"
)

// DashboardHandler serves the overview screen and the sales report.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns headline stats, recent activity and the short report.
func (h *DashboardHandler) Overview(c *gin.Context) {
	dashboard := h.dashboardService.Overview(c.Request.Context())
	utils.SuccessWithFallback(c, 200, "Dashboard retrieved successfully", dashboard, dashboard.Fallback)
}

// Sales returns the full sales report for the reports screen.
func (h *DashboardHandler) Sales(c *gin.Context) {
	report := h.dashboardService.Sales(c.Request.Context())
	utils.SuccessWithFallback(c, 200, "Sales report retrieved successfully", report.Report, report.Fallback)
}
