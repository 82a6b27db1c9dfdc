package plan_fx

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/internal/services"
)

var Module = fx.Options(
	fx.Provide(providePlanService, providePlanRepo),
	fx.Invoke(seedDefaultPlans))

func providePlanRepo(db *gorm.DB) repositories.PlanRepository {
	return repositories.NewPlanRepository(db)
}

func providePlanService(planRepo repositories.PlanRepository) services.PlanServiceInterface {
	return services.NewPlanService(planRepo)
}

// Seeding runs at startup so a fresh database exposes the standard
// tiers before the first registration arrives.
func seedDefaultPlans(planService services.PlanServiceInterface) {
	if err := planService.SeedDefaultPlans(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default plans")
	}
}
