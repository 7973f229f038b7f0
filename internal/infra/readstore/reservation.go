package readstore

import (
	"context"

	"inventory-reservation/internal/infra"
	sqlc "inventory-reservation/internal/infra/sqlc/generated"
	"inventory-reservation/internal/pkg/pgconv"
	"inventory-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.StockReservations, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return rowToReservationView(row), nil
}

func rowToReservationView(row sqlc.StockReservations) *queries.ReservationView {
	return &queries.ReservationView{
		ID:          row.ID,
		ProductID:   pgconv.UUIDPtrFromPgtype(row.ProductID),
		VariantID:   pgconv.UUIDPtrFromPgtype(row.VariantID),
		Quantity:    row.Quantity,
		UserID:      pgconv.UUIDPtrFromPgtype(row.UserID),
		SessionID:   pgconv.StringPtrFromPgtype(row.SessionID),
		Status:      row.Status,
		OrderID:     pgconv.StringPtrFromPgtype(row.OrderID),
		ExpiresAt:   pgconv.TimeFromPgtype(row.ExpiresAt),
		CompletedAt: pgconv.TimePtrFromPgtype(row.CompletedAt),
		CancelledAt: pgconv.TimePtrFromPgtype(row.CancelledAt),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
