package metrics_fx

import (
	"go.uber.org/fx"

	"github.com/vivekdevkar123/BillEase-BE/pkg/metrics"
)

var Module = fx.Provide(provideMetrics)

func provideMetrics() *metrics.Metrics {
	return metrics.New()
}
