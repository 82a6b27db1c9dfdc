package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/request_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/response_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

type PlanServiceInterface interface {
	GetPublicPlans(ctx context.Context) ([]response_models.PlanResponse, error)
	CreatePlan(ctx context.Context, req request_models.CreatePlanRequest) (*response_models.PlanResponse, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, req request_models.UpdatePlanRequest) (*response_models.PlanResponse, error)
	// SeedDefaultPlans upserts the standard tiers by plan_key at startup.
	SeedDefaultPlans(ctx context.Context) error
}

type PlanService struct {
	planRepo repositories.PlanRepository
}

func NewPlanService(planRepo repositories.PlanRepository) PlanServiceInterface {
	return &PlanService{planRepo: planRepo}
}

func (p *PlanService) GetPublicPlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.ListPublic(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.PlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, toPlanResponse(&plans[i]))
	}
	return result, nil
}

func (p *PlanService) CreatePlan(ctx context.Context, req request_models.CreatePlanRequest) (*response_models.PlanResponse, error) {
	if err := validateCapabilities(req.Capabilities); err != nil {
		return nil, err
	}

	existing, err := p.planRepo.FindByKey(ctx, req.PlanKey)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		vErr := utils.NewValidationError()
		vErr.Add("plan_key", "Plan with this key already exists")
		return nil, vErr
	}

	plan := &db_models.Plan{
		PlanKey:         req.PlanKey,
		Name:            req.Name,
		Description:     req.Description,
		Price:           decimal.NewFromFloat(req.Price),
		BillingRequests: req.BillingRequests,
		DurationDays:    req.DurationDays,
		Capabilities:    pq.StringArray(req.Capabilities),
		IsActive:        true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.IsCustom != nil {
		plan.IsCustom = *req.IsCustom
	}

	if err := p.planRepo.Insert(ctx, plan); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toPlanResponse(plan)
	return &resp, nil
}

func (p *PlanService) UpdatePlan(ctx context.Context, id uuid.UUID, req request_models.UpdatePlanRequest) (*response_models.PlanResponse, error) {
	plan, err := p.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	if req.Capabilities != nil {
		if err := validateCapabilities(*req.Capabilities); err != nil {
			return nil, err
		}
		plan.Capabilities = pq.StringArray(*req.Capabilities)
	}
	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		plan.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.BillingRequests != nil {
		plan.BillingRequests = *req.BillingRequests
	}
	if req.DurationDays != nil {
		plan.DurationDays = *req.DurationDays
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.IsCustom != nil {
		plan.IsCustom = *req.IsCustom
	}

	if err := p.planRepo.Update(ctx, plan); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toPlanResponse(plan)
	return &resp, nil
}

func (p *PlanService) SeedDefaultPlans(ctx context.Context) error {
	for _, seed := range defaultPlans() {
		existing, err := p.planRepo.FindByKey(ctx, seed.PlanKey)
		if err != nil {
			return err
		}

		if existing == nil {
			plan := seed
			if err := p.planRepo.Insert(ctx, &plan); err != nil {
				return err
			}
			log.Info().Str("plan_key", seed.PlanKey).Msg("seeded plan")
			continue
		}

		existing.Name = seed.Name
		existing.Description = seed.Description
		existing.Price = seed.Price
		existing.BillingRequests = seed.BillingRequests
		existing.DurationDays = seed.DurationDays
		existing.Capabilities = seed.Capabilities
		existing.IsActive = true
		existing.IsCustom = false
		if err := p.planRepo.Update(ctx, existing); err != nil {
			return err
		}
	}
	return nil
}

func toPlanResponse(p *db_models.Plan) response_models.PlanResponse {
	return response_models.PlanResponse{
		ID:              p.ID,
		PlanKey:         p.PlanKey,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price.InexactFloat64(),
		BillingRequests: p.BillingRequests,
		DurationDays:    p.DurationDays,
		Capabilities:    []string(p.Capabilities),
		IsUnlimited:     p.IsUnlimited(),
		IsActive:        p.IsActive,
	}
}

var knownCapabilities = map[string]bool{
	string(db_models.CapUnlimitedBills):      true,
	string(db_models.CapCloudStorage):        true,
	string(db_models.CapGSTCompliance):       true,
	string(db_models.CapMultiDevice):         true,
	string(db_models.CapCloudBackup):         true,
	string(db_models.CapPrioritySupport):     true,
	string(db_models.CapInventoryManagement): true,
	string(db_models.CapInsightsDashboard):   true,
	string(db_models.CapSalesReports):        true,
	string(db_models.CapInventoryReports):    true,
	string(db_models.CapExcelExport):         true,
	string(db_models.CapMeteredQuota):        true,
}

func validateCapabilities(caps []string) error {
	vErr := utils.NewValidationError()
	for _, c := range caps {
		if !knownCapabilities[c] {
			vErr.Add("capabilities", "Unknown capability: "+c)
		}
	}
	return vErr.ErrOrNil()
}

func baseCaps(extra ...db_models.Capability) pq.StringArray {
	caps := pq.StringArray{
		string(db_models.CapCloudStorage),
		string(db_models.CapGSTCompliance),
		string(db_models.CapMultiDevice),
	}
	for _, c := range extra {
		caps = append(caps, string(c))
	}
	return caps
}

func defaultPlans() []db_models.Plan {
	return []db_models.Plan{
		{
			PlanKey:         "trial",
			Name:            "Trial Plan",
			Description:     "Perfect to start - 50 bills to try out our service",
			Price:           decimal.NewFromInt(199),
			BillingRequests: 50,
			DurationDays:    30,
			Capabilities:    baseCaps(db_models.CapMeteredQuota),
			IsActive:        true,
		},
		{
			PlanKey:         "1month",
			Name:            "1 Month Plan",
			Description:     "Try it out - unlimited bills for a month",
			Price:           decimal.NewFromInt(399),
			BillingRequests: 0,
			DurationDays:    30,
			Capabilities:    baseCaps(db_models.CapUnlimitedBills),
			IsActive:        true,
		},
		{
			PlanKey:         "3months",
			Name:            "3 Months Plan",
			Description:     "Most popular - save 17% with unlimited bills",
			Price:           decimal.NewFromInt(999),
			BillingRequests: 0,
			DurationDays:    90,
			Capabilities: baseCaps(
				db_models.CapUnlimitedBills,
				db_models.CapCloudBackup,
				db_models.CapPrioritySupport,
			),
			IsActive: true,
		},
		{
			PlanKey:         "6months",
			Name:            "6 Months Plan",
			Description:     "Great value - save 29% plus inventory management",
			Price:           decimal.NewFromInt(1699),
			BillingRequests: 0,
			DurationDays:    180,
			Capabilities: baseCaps(
				db_models.CapUnlimitedBills,
				db_models.CapCloudBackup,
				db_models.CapPrioritySupport,
				db_models.CapInventoryManagement,
			),
			IsActive: true,
		},
		{
			PlanKey:         "12months",
			Name:            "12 Months Plan",
			Description:     "Best deal - save 42% with all premium features",
			Price:           decimal.NewFromInt(2799),
			BillingRequests: 0,
			DurationDays:    365,
			Capabilities: baseCaps(
				db_models.CapUnlimitedBills,
				db_models.CapCloudBackup,
				db_models.CapPrioritySupport,
				db_models.CapInventoryManagement,
				db_models.CapInsightsDashboard,
				db_models.CapSalesReports,
				db_models.CapInventoryReports,
				db_models.CapExcelExport,
			),
			IsActive: true,
		},
	}
}
