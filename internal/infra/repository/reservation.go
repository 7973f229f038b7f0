package repository

import (
	"context"
	"time"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/infra"
	"inventory-reservation/internal/infra/repository/converter"
	sqlc "inventory-reservation/internal/infra/sqlc/generated"
	"inventory-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) (uuid.UUID, error)
	GetReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.StockReservations, error)
	GetReservationForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.StockReservations, error)
	SumHeldByProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.SumHeldByProductParams) (int32, error)
	SumHeldByVariant(ctx context.Context, db sqlc.DBTX, arg sqlc.SumHeldByVariantParams) (int32, error)
	CompleteReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteReservationParams) (int64, error)
	ReleaseReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.ReleaseReservationParams) (int64, error)
	ExpireLapsedReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.ExpireLapsedReservationsParams) ([]uuid.UUID, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      sqlc.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db sqlc.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	params := converter.ReservationToInfra(res)

	resultID, err := r.queries.CreateReservation(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return resultID, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByID(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return toDomain(row)
}

func (r *ReservationRepository) FindForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationForUpdate(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return toDomain(row)
}

func (r *ReservationRepository) SumHeld(ctx context.Context, tx sqlc.DBTX, target reservation.Target, now time.Time) (int, error) {
	var (
		held int32
		err  error
	)
	switch target.Kind() {
	case reservation.TargetProduct:
		held, err = r.queries.SumHeldByProduct(ctx, tx, sqlc.SumHeldByProductParams{
			ProductID: pgconv.UUIDToPgtype(target.ID()),
			Now:       pgconv.TimeToPgtype(now),
		})
	case reservation.TargetVariant:
		held, err = r.queries.SumHeldByVariant(ctx, tx, sqlc.SumHeldByVariantParams{
			VariantID: pgconv.UUIDToPgtype(target.ID()),
			Now:       pgconv.TimeToPgtype(now),
		})
	default:
		return 0, reservation.ErrInvalidTarget
	}
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum held quantity", err)
	}
	return int(held), nil
}

// MarkCompleted persists a completion decided by the aggregate. The update is
// guarded on status so a row that left active in the meantime is reported as
// a conflict instead of being overwritten.
func (r *ReservationRepository) MarkCompleted(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	orderID := res.OrderID()
	completedAt := res.CompletedAt()
	if orderID == nil || completedAt == nil {
		return infra.WrapRepoErr("reservation is not completed", nil, infra.KindConflict)
	}

	orderIDStr := orderID.String()
	affected, err := r.queries.CompleteReservation(ctx, tx, sqlc.CompleteReservationParams{
		OrderID: pgconv.StringPtrToPgtype(&orderIDStr),
		Now:     pgconv.TimeToPgtype(*completedAt),
		ID:      res.ID(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to complete reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation is no longer active", nil, infra.KindConflict)
	}
	return nil
}

func (r *ReservationRepository) Release(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, reason reservation.ReleaseReason, now time.Time) (bool, error) {
	affected, err := r.queries.ReleaseReservation(ctx, tx, sqlc.ReleaseReservationParams{
		Status: reason.Status().String(),
		Now:    pgconv.TimeToPgtype(now),
		ID:     id,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to release reservation", err)
	}
	return affected > 0, nil
}

func (r *ReservationRepository) ExpireLapsed(ctx context.Context, tx sqlc.DBTX, now time.Time, batchSize int32) ([]uuid.UUID, error) {
	ids, err := r.queries.ExpireLapsedReservations(ctx, tx, sqlc.ExpireLapsedReservationsParams{
		Now:       pgconv.TimeToPgtype(now),
		BatchSize: batchSize,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire lapsed reservations", err)
	}
	return ids, nil
}

func toDomain(row sqlc.StockReservations) (*reservation.Reservation, error) {
	res, err := converter.ReservationFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation is malformed", err, infra.KindCheckViolated)
	}
	return res, nil
}
