package bootstrap

import (
	"context"
	"log/slog"

	"inventory-reservation/internal/pkg/config"
	"inventory-reservation/internal/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Provide(NewTracerProvider),
)

// NewTracerProvider installs the SDK provider globally and flushes it when
// the app stops.
func NewTracerProvider(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (trace.TracerProvider, error) {
	tp, err := tracing.NewTracerProvider(cfg.Tracing)
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	logger.Info("tracing initialized", "exporter", cfg.Tracing.Exporter, "service", cfg.Tracing.ServiceName)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
	return tp, nil
}
