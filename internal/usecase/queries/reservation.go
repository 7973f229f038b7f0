package queries

import (
	"context"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/infra"
	"inventory-reservation/internal/pkg/errs"
	"inventory-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, reservation.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, shared.ErrStorage)
	}
	return view, nil
}
