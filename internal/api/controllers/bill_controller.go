package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/request_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/services"
	"github.com/vivekdevkar123/BillEase-BE/pkg/middleware"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

type BillController struct {
	billingService services.BillingServiceInterface
}

func NewBillController(billingService services.BillingServiceInterface) *BillController {
	return &BillController{
		billingService: billingService,
	}
}

// CreateBill godoc
// @Summary Create a bill
// @Description Validate items, compute GST amounts and persist the bill
// @Tags Bills
// @Accept json
// @Produce json
// @Param request body request_models.CreateBillRequest true "Bill payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bills [post]
func (b *BillController) CreateBill(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req request_models.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	bill, err := b.billingService.CreateBill(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, bill, "Bill created successfully")
}

// ListBills godoc
// @Summary List bills
// @Description Fetch the caller's bills, newest first, optionally filtered by status
// @Tags Bills
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, completed)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bills [get]
func (b *BillController) ListBills(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bills, err := b.billingService.ListBills(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bills, "Bills fetched successfully")
}

// GetBill godoc
// @Summary Get a bill
// @Tags Bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bills/{id} [get]
func (b *BillController) GetBill(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	bill, err := b.billingService.GetBill(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bill, "Bill fetched successfully")
}

// UpdateBill godoc
// @Summary Update a bill
// @Description Update customer, status or payment fields; re-supplied items recompute all amounts
// @Tags Bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body request_models.UpdateBillRequest true "Bill fields to update"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bills/{id} [put]
func (b *BillController) UpdateBill(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	var req request_models.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	bill, err := b.billingService.UpdateBill(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bill, "Bill updated successfully")
}

// DeleteBill godoc
// @Summary Delete a bill
// @Tags Bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bills/{id} [delete]
func (b *BillController) DeleteBill(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	if err := b.billingService.DeleteBill(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Bill deleted successfully")
}
