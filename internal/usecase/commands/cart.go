package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/pkg/errs"
	"inventory-reservation/internal/pkg/metrics"

	"github.com/google/uuid"
)

type CartCommands interface {
	// ReserveCart reserves every item or none. On the first failure the
	// reservations already made are released and the original error returned.
	ReserveCart(ctx context.Context, items []reservation.LineItem, holder reservation.Holder, ttl *time.Duration) ([]uuid.UUID, error)
	// CompleteCart stops at the first failing id. Ids completed before it stay
	// completed.
	CompleteCart(ctx context.Context, ids []uuid.UUID, orderID string) error
	// CancelCart releases every id and returns how many were still active.
	CancelCart(ctx context.Context, ids []uuid.UUID) (int, error)
}

type cartUseCaseImpl struct {
	reservations ReservationCommands
	metrics      metrics.Recorder
	logger       *slog.Logger
}

func NewCartUseCase(reservations ReservationCommands, rec metrics.Recorder, logger *slog.Logger) CartCommands {
	if rec == nil {
		rec = metrics.Nop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &cartUseCaseImpl{
		reservations: reservations,
		metrics:      rec,
		logger:       logger,
	}
}

func (uc *cartUseCaseImpl) ReserveCart(ctx context.Context, items []reservation.LineItem, holder reservation.Holder, ttl *time.Duration) ([]uuid.UUID, error) {
	if len(items) == 0 {
		return nil, reservation.ErrEmptyCart
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id, err := uc.reservations.Reserve(ctx, ReserveParams{
			Target:   item.Target,
			Quantity: item.Quantity,
			Holder:   holder,
			TTL:      ttl,
		})
		if err != nil {
			uc.rollback(ctx, ids)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// rollback is best effort. A reservation it fails to release still lapses at
// its deadline and the sweeper expires it.
func (uc *cartUseCaseImpl) rollback(ctx context.Context, ids []uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	// The caller's context may be the reason we are rolling back.
	ctx = context.WithoutCancel(ctx)

	for _, id := range ids {
		if _, err := uc.reservations.Release(ctx, id, reservation.ReasonCancelled); err != nil {
			uc.metrics.AddRollbackFailure()
			uc.logger.WarnContext(ctx, "failed to release reservation during cart rollback",
				"reservation_id", id,
				"error", err.Error())
		}
	}
	uc.logger.InfoContext(ctx, "cart reservation rolled back", "released", len(ids))
}

func (uc *cartUseCaseImpl) CompleteCart(ctx context.Context, ids []uuid.UUID, orderID string) error {
	if len(ids) == 0 {
		return reservation.ErrEmptyCart
	}
	if _, err := reservation.NewOrderID(orderID); err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := uc.reservations.Complete(ctx, id, orderID); err != nil {
			return errs.Wrapf(err, "complete reservation %s", id)
		}
	}
	return nil
}

func (uc *cartUseCaseImpl) CancelCart(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, reservation.ErrEmptyCart
	}

	var (
		released int
		failures []error
	)
	for _, id := range ids {
		ok, err := uc.reservations.Release(ctx, id, reservation.ReasonCancelled)
		if err != nil {
			failures = append(failures, errs.Wrapf(err, "release reservation %s", id))
			continue
		}
		if ok {
			released++
		}
	}
	return released, errors.Join(failures...)
}
