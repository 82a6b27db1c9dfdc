package dashboard_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/internal/services"
	"github.com/vivekdevkar123/BillEase-BE/pkg/metrics"
)

var Module = fx.Provide(
	provideDashboardService, provideReportService, provideDashboardRepo)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(
	userRepo repositories.UserRepository,
	dashRepo repositories.DashboardRepository,
) services.DashboardServiceInterface {
	return services.NewDashboardService(userRepo, dashRepo)
}

func provideReportService(
	userRepo repositories.UserRepository,
	dashRepo repositories.DashboardRepository,
	productRepo repositories.ProductRepository,
	m *metrics.Metrics,
) services.ReportServiceInterface {
	return services.NewReportService(userRepo, dashRepo, productRepo, m)
}
