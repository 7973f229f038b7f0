package bootstrap

import (
	"inventory-reservation/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule wires everything the reservation use cases need. The sweep
// subcommand runs on it alone.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	MetricsModule,
	TracingModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	CoreModule,
	components.HandlerModule,
	SweeperModule,
)
