package components

import (
	"inventory-reservation/internal/pkg/clock"
	"inventory-reservation/internal/pkg/config"
	"inventory-reservation/internal/usecase/commands"
	"inventory-reservation/internal/usecase/queries"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewReservationOptions,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewCartUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewAvailabilityQueries,
	),
)

func NewReservationOptions(cfg config.Config, tp trace.TracerProvider) commands.Options {
	return commands.Options{
		DefaultTTL:     cfg.Reservation.DefaultTTL,
		OpTimeout:      cfg.Reservation.OpTimeout,
		SweepBatchSize: cfg.Sweeper.BatchSize,
		TracerProvider: tp,
	}
}
