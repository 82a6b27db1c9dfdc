package bill_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/internal/services"
	"github.com/vivekdevkar123/BillEase-BE/pkg/metrics"
)

var Module = fx.Provide(
	provideBillingService, provideBillRepo)

func provideBillRepo(db *gorm.DB) repositories.BillRepository {
	return repositories.NewBillRepository(db)
}

func provideBillingService(
	userRepo repositories.UserRepository,
	billRepo repositories.BillRepository,
	productRepo repositories.ProductRepository,
	m *metrics.Metrics,
) services.BillingServiceInterface {
	return services.NewBillingService(userRepo, billRepo, productRepo, m)
}
