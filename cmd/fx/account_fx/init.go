package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/internal/services"
	mem "github.com/vivekdevkar123/BillEase-BE/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(
	userRepo repositories.UserRepository,
	planRepo repositories.PlanRepository,
	codes mem.CodeStore,
	mailService services.MailServiceInterface,
) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, planRepo, codes, mailService)
}
