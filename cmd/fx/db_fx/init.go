package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/vivekdevkar123/BillEase-BE/internal/infra"
)

var Module = fx.Options(
	fx.Provide(provideDB),
	fx.Invoke(registerClose))

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}

func registerClose(lc fx.Lifecycle, db *gorm.DB) {
	lc.Append(fx.StopHook(func() {
		infra.ClosePostgresql(db)
	}))
}
