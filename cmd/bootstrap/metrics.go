package bootstrap

import (
	"inventory-reservation/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewRegistry,
		func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
		fx.Annotate(
			NewRecorder,
			fx.As(new(metrics.Recorder)),
		),
	),
)

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewRecorder(reg *prometheus.Registry) (*metrics.PrometheusRecorder, error) {
	return metrics.NewPrometheusRecorder(reg)
}
