package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vivekdevkar123/BillEase-BE/internal/services"
	"github.com/vivekdevkar123/BillEase-BE/pkg/middleware"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
}

func NewReportController(reportService services.ReportServiceInterface) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// SalesReport godoc
// @Summary Sales report
// @Description Detailed sales report for a date range, defaulting to the last 30 days
// @Tags Reports
// @Produce json
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/sales-report [get]
func (r *ReportController) SalesReport(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	report, err := r.reportService.SalesReport(c.Request.Context(), userID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Sales report fetched successfully")
}

// InventoryReport godoc
// @Summary Inventory report
// @Description Stock classification and valuation across the active catalog
// @Tags Reports
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/inventory-report [get]
func (r *ReportController) InventoryReport(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	report, err := r.reportService.InventoryReport(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Inventory report fetched successfully")
}

// ExportSalesReport godoc
// @Summary Export sales report
// @Description Download the sales report as an xlsx workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/sales-report/export [get]
func (r *ReportController) ExportSalesReport(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	data, filename, err := r.reportService.ExportSalesReport(c.Request.Context(), userID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
