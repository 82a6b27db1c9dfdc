package product_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/internal/services"
)

var Module = fx.Provide(
	provideProductService, provideProductRepo)

func provideProductRepo(db *gorm.DB) repositories.ProductRepository {
	return repositories.NewProductRepository(db)
}

func provideProductService(productRepo repositories.ProductRepository) services.ProductServiceInterface {
	return services.NewProductService(productRepo)
}
