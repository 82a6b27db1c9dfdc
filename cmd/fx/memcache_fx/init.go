package memcache_fx

import (
	"go.uber.org/fx"

	mem "github.com/vivekdevkar123/BillEase-BE/pkg/memcache"
)

var Module = fx.Provide(provideCodeStore)

func provideCodeStore() mem.CodeStore {
	return mem.NewCodeStore()
}
