package components

import (
	"inventory-reservation/internal/infra/readstore"
	sqlc "inventory-reservation/internal/infra/sqlc/generated"
	"inventory-reservation/internal/infra/uow"
	"inventory-reservation/internal/pkg/config"
	"inventory-reservation/internal/usecase/queries"
	"inventory-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Reservation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReservationViewQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
	),
)

// Write-side repositories are bound per transaction by the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		NewUnitOfWork,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func NewUnitOfWork(pool *pgxpool.Pool, q *sqlc.Queries, cfg config.Config) shared.UnitOfWork {
	return uow.NewPostgresUoW(pool, q, cfg.Reservation.TxMaxRetries)
}
