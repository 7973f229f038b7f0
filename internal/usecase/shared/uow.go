package shared

import (
	"context"
	"time"

	"inventory-reservation/internal/domain/reservation"
	sqlc "inventory-reservation/internal/infra/sqlc/generated"
	"inventory-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrStorage marks transient failures: lock or transaction errors, timeouts,
// exhausted retries. Callers may retry the operation.
var ErrStorage = errs.New("reservation storage unavailable")

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for consistent multi-table reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Catalog() CatalogRepository
	DB() sqlc.DBTX
}

type ReservationRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	FindByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	// FindForUpdate locks the reservation row until the transaction ends.
	FindForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	// SumHeld totals the quantity of active reservations on target whose
	// window is still open at now.
	SumHeld(ctx context.Context, tx sqlc.DBTX, target reservation.Target, now time.Time) (int, error)
	MarkCompleted(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
	// Release reports false when the row was no longer active.
	Release(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, reason reservation.ReleaseReason, now time.Time) (bool, error)
	ExpireLapsed(ctx context.Context, tx sqlc.DBTX, now time.Time, batchSize int32) ([]uuid.UUID, error)
}

// CatalogRepository is the catalog store contract. Both methods run on the
// caller's transaction so that stock changes commit together with the
// reservation rows.
type CatalogRepository interface {
	// LockStock reads total stock and holds the row lock that serializes every
	// reserve and complete on the same target.
	LockStock(ctx context.Context, tx sqlc.DBTX, target reservation.Target) (int, error)
	GetStock(ctx context.Context, tx sqlc.DBTX, target reservation.Target) (int, error)
	DecrementStock(ctx context.Context, tx sqlc.DBTX, target reservation.Target, quantity int) error
}
