package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vivekdevkar123/BillEase-BE/internal/services"
	"github.com/vivekdevkar123/BillEase-BE/pkg/middleware"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
}

func NewDashboardController(dashboardService services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// Overview godoc
// @Summary Dashboard overview
// @Description Key revenue, bill and stock metrics for the authenticated user
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/overview [get]
func (d *DashboardController) Overview(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	overview, err := d.dashboardService.Overview(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, overview, "Dashboard overview fetched successfully")
}

// MonthlySales godoc
// @Summary Monthly sales series
// @Description Completed sales bucketed by month over the last 12 months
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/monthly-sales [get]
func (d *DashboardController) MonthlySales(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sales, err := d.dashboardService.MonthlySales(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sales, "Monthly sales fetched successfully")
}

// DailySales godoc
// @Summary Daily sales series
// @Description Completed sales bucketed by day over the last 30 days
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/daily-sales [get]
func (d *DashboardController) DailySales(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sales, err := d.dashboardService.DailySales(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sales, "Daily sales fetched successfully")
}

// ProductInsights godoc
// @Summary Product insights
// @Description Low stock, out of stock and top selling products
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/product-insights [get]
func (d *DashboardController) ProductInsights(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	insights, err := d.dashboardService.ProductInsights(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, insights, "Product insights fetched successfully")
}

// RevenueBreakdown godoc
// @Summary Revenue breakdown
// @Description Completed revenue split across day, week and month windows
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/revenue-breakdown [get]
func (d *DashboardController) RevenueBreakdown(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	breakdown, err := d.dashboardService.RevenueBreakdown(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, breakdown, "Revenue breakdown fetched successfully")
}
