package queries

import (
	"context"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/infra"
	"inventory-reservation/internal/pkg/clock"
	"inventory-reservation/internal/pkg/errs"
	"inventory-reservation/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

// Bounds the read transactions a single cart check holds at once.
const maxConcurrentChecks = 4

type AvailabilityQueries interface {
	GetAvailableStock(ctx context.Context, target reservation.Target) (int, error)
	GetAvailability(ctx context.Context, target reservation.Target) (*AvailabilityView, error)
	// CheckAvailability reports whether every item could be reserved right now.
	// Nothing is held; a later ReserveCart can still fail.
	CheckAvailability(ctx context.Context, items []reservation.LineItem) (*AvailabilityReport, error)
}

type availabilityQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAvailabilityQueries(uow shared.UnitOfWork, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow, clock: clk}
}

func (q *availabilityQueriesImpl) GetAvailableStock(ctx context.Context, target reservation.Target) (int, error) {
	view, err := q.GetAvailability(ctx, target)
	if err != nil {
		return 0, err
	}
	return view.Available, nil
}

func (q *availabilityQueriesImpl) GetAvailability(ctx context.Context, target reservation.Target) (*AvailabilityView, error) {
	t, err := reservation.ValidTarget(target)
	if err != nil {
		return nil, err
	}

	view := &AvailabilityView{TargetKind: string(t.Kind()), TargetID: t.ID()}
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		total, derr := tx.Catalog().GetStock(ctx, tx.DB(), t)
		if derr != nil {
			return derr
		}
		held, derr := tx.Reservations().SumHeld(ctx, tx.DB(), t, q.clock.Now())
		if derr != nil {
			return derr
		}
		view.TotalStock = total
		view.Held = held
		view.Available = reservation.AvailableStock(total, held)
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, reservation.ErrTargetNotFound)
		}
		return nil, errs.Mark(err, shared.ErrStorage)
	}
	return view, nil
}

func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, items []reservation.LineItem) (*AvailabilityReport, error) {
	if len(items) == 0 {
		return nil, reservation.ErrEmptyCart
	}
	for _, item := range items {
		if _, err := reservation.ValidTarget(item.Target); err != nil {
			return nil, err
		}
		if _, err := reservation.NewQuantity(item.Quantity); err != nil {
			return nil, err
		}
	}

	merged := reservation.MergeLineItems(items)
	available := make([]int, len(merged))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)
	for i, item := range merged {
		g.Go(func() error {
			n, err := q.GetAvailableStock(gctx, item.Target)
			if err != nil {
				return err
			}
			available[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &AvailabilityReport{Available: true, UnavailableItems: []UnavailableItem{}}
	for i, item := range merged {
		if item.Quantity <= available[i] {
			continue
		}
		report.Available = false
		report.UnavailableItems = append(report.UnavailableItems, UnavailableItem{
			TargetKind: string(item.Target.Kind()),
			TargetID:   item.Target.ID(),
			Requested:  item.Quantity,
			Available:  available[i],
		})
	}
	return report, nil
}
