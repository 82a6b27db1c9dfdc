package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/vivekdevkar123/BillEase-BE/internal/services"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// ListPlans godoc
// @Summary List subscription plans
// @Description Fetch the public plan catalog ordered by price
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /user/plans [get]
func (p *PlanController) ListPlans(c *gin.Context) {
	plans, err := p.planService.GetPublicPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}
