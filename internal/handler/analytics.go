package handler

import (
	"net/http"

	"github.com/DarkZone24/inventory-monitoring-system/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct{ svc service.AnalyticsService }

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// CategoryStats godoc
// @Summary Stock per category
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryStat
// @Router /api/analytics/category-stats [get]
func (h *AnalyticsHandler) CategoryStats(c *gin.Context) {
	resp, err := h.svc.CategoryStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalesReport godoc
// @Summary Revenue and sale count of the last 7 sale days
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SalesDay
// @Router /api/analytics/sales-report [get]
func (h *AnalyticsHandler) SalesReport(c *gin.Context) {
	resp, err := h.svc.SalesReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DashboardStats godoc
// @Summary Dashboard totals and recent borrowings
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardStats
// @Router /api/dashboard/stats [get]
func (h *AnalyticsHandler) DashboardStats(c *gin.Context) {
	resp, err := h.svc.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
