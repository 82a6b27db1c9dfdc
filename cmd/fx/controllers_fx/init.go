package controllers_fx

import (
	"go.uber.org/fx"

	"github.com/vivekdevkar123/BillEase-BE/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewPlanController),
	fx.Provide(controllers.NewProductController),
	fx.Provide(controllers.NewBillController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(controllers.NewReportController),
	fx.Provide(controllers.NewAdminController))
