package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/request_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/services"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

// AdminController covers the operator surface: user activation after
// payment verification and plan catalog management.
type AdminController struct {
	accountService services.AccountServiceInterface
	planService    services.PlanServiceInterface
}

func NewAdminController(accountService services.AccountServiceInterface, planService services.PlanServiceInterface) *AdminController {
	return &AdminController{
		accountService: accountService,
		planService:    planService,
	}
}

// ListUsers godoc
// @Summary List all users
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (a *AdminController) ListUsers(c *gin.Context) {
	users, err := a.accountService.ListUsers(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, users, "Users fetched successfully")
}

// ActivateUser godoc
// @Summary Activate a user account
// @Description Mark a user activated and restart their plan window
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/users/{id}/activate [post]
func (a *AdminController) ActivateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	user, err := a.accountService.ActivateUser(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User activated successfully")
}

// DeactivateUser godoc
// @Summary Deactivate a user account
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/users/{id}/deactivate [post]
func (a *AdminController) DeactivateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	user, err := a.accountService.DeactivateUser(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User deactivated successfully")
}

// CreatePlan godoc
// @Summary Create a plan
// @Description Add a plan to the catalog, optionally custom (hidden from the public list)
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CreatePlanRequest true "Plan payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans [post]
func (a *AdminController) CreatePlan(c *gin.Context) {
	var req request_models.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := a.planService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, plan, "Plan created successfully")
}

// UpdatePlan godoc
// @Summary Update a plan
// @Description Partially update plan fields; omitted fields stay unchanged
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body request_models.UpdatePlanRequest true "Plan fields to update"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans/{id} [put]
func (a *AdminController) UpdatePlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	var req request_models.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := a.planService.UpdatePlan(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan updated successfully")
}
