package commands

import (
	"context"
	"log/slog"
	"time"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/infra"
	"inventory-reservation/internal/pkg/clock"
	"inventory-reservation/internal/pkg/errs"
	"inventory-reservation/internal/pkg/metrics"
	"inventory-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrStorage = shared.ErrStorage

const (
	opReserve        = "reserve"
	opRelease        = "release"
	opComplete       = "complete"
	opCleanupExpired = "cleanup_expired"
)

type ReserveParams struct {
	Target   reservation.Target
	Quantity int
	Holder   reservation.Holder
	// TTL nil means the configured default. Zero is allowed.
	TTL *time.Duration
}

type ReservationCommands interface {
	Reserve(ctx context.Context, p ReserveParams) (uuid.UUID, error)
	// Release reports false when the reservation was already terminal.
	Release(ctx context.Context, id uuid.UUID, reason reservation.ReleaseReason) (bool, error)
	// Complete is idempotent per order id.
	Complete(ctx context.Context, id uuid.UUID, orderID string) (bool, error)
	CleanupExpired(ctx context.Context) (int, error)
}

type Options struct {
	DefaultTTL     time.Duration
	OpTimeout      time.Duration
	SweepBatchSize int32
	// TracerProvider defaults to the global otel provider.
	TracerProvider trace.TracerProvider
}

type reservationUseCaseImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	opts    Options
	metrics metrics.Recorder
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewReservationUseCase(uow shared.UnitOfWork, clk clock.Clock, opts Options, rec metrics.Recorder, logger *slog.Logger) ReservationCommands {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = reservation.DefaultTTL
	}
	if opts.SweepBatchSize <= 0 {
		opts.SweepBatchSize = 500
	}
	if rec == nil {
		rec = metrics.Nop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}
	return &reservationUseCaseImpl{
		uow:     uow,
		clock:   clk,
		opts:    opts,
		metrics: rec,
		logger:  logger,
		tracer:  opts.TracerProvider.Tracer("inventory-reservation/commands"),
	}
}

func (uc *reservationUseCaseImpl) Reserve(ctx context.Context, p ReserveParams) (id uuid.UUID, err error) {
	ctx, done := uc.begin(ctx, opReserve)
	defer func() { err = done(err, metrics.OutcomeOK) }()

	ttl := uc.opts.DefaultTTL
	if p.TTL != nil {
		ttl = *p.TTL
	}

	res, err := reservation.NewReservation(p.Target, p.Quantity, p.Holder, ttl, uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("reservation.target", res.Target().String()),
		attribute.Int("reservation.quantity", res.Quantity().Value()),
	)

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		total, derr := tx.Catalog().LockStock(ctx, tx.DB(), res.Target())
		if derr != nil {
			return catalogErr(derr)
		}
		held, derr := tx.Reservations().SumHeld(ctx, tx.DB(), res.Target(), uc.clock.Now())
		if derr != nil {
			return derr
		}
		if available, ok := reservation.CanReserve(total, held, p.Quantity); !ok {
			return reservation.NewInsufficientStockError(res.Target(), p.Quantity, available)
		}

		id, derr = tx.Reservations().Create(ctx, tx.DB(), res)
		return derr
	})
	if err != nil {
		return uuid.Nil, err
	}

	uc.logger.InfoContext(ctx, "reservation created",
		"reservation_id", id,
		"target", res.Target().String(),
		"quantity", res.Quantity().Value(),
		"holder", res.Holder().String(),
		"expires_at", res.ExpiresAt())
	return id, nil
}

func (uc *reservationUseCaseImpl) Release(ctx context.Context, id uuid.UUID, reason reservation.ReleaseReason) (released bool, err error) {
	ctx, done := uc.begin(ctx, opRelease)
	defer func() {
		outcome := metrics.OutcomeOK
		if !released {
			outcome = metrics.OutcomeNoop
		}
		err = done(err, outcome)
	}()

	if reason != reservation.ReasonCancelled && reason != reservation.ReasonExpired {
		return false, reservation.ErrInvalidReleaseReason
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// A retried attempt must not inherit the previous attempt's result.
		released = false
		ok, derr := tx.Reservations().Release(ctx, tx.DB(), id, reason, uc.clock.Now())
		if derr != nil {
			return derr
		}
		if ok {
			released = true
			return nil
		}
		// Nothing moved: either terminal already or unknown.
		_, derr = tx.Reservations().FindByID(ctx, tx.DB(), id)
		return derr
	})
	if err != nil {
		return false, err
	}

	if released {
		uc.logger.InfoContext(ctx, "reservation released", "reservation_id", id, "reason", string(reason))
	}
	return released, nil
}

func (uc *reservationUseCaseImpl) Complete(ctx context.Context, id uuid.UUID, orderID string) (ok bool, err error) {
	ctx, done := uc.begin(ctx, opComplete)
	var replayed bool
	defer func() {
		outcome := metrics.OutcomeOK
		if replayed {
			outcome = metrics.OutcomeReplayed
		}
		err = done(err, outcome)
	}()

	oid, err := reservation.NewOrderID(orderID)
	if err != nil {
		return false, err
	}

	var lapsed bool
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayed, lapsed = false, false
		now := uc.clock.Now()

		res, derr := tx.Reservations().FindForUpdate(ctx, tx.DB(), id)
		if derr != nil {
			return derr
		}

		// The deadline passed before the sweeper got to it. Record the expiry
		// and commit it, then report the state to the caller.
		if res.Status() == reservation.StatusActive && res.Lapsed(now) {
			if _, derr = tx.Reservations().Release(ctx, tx.DB(), id, reservation.ReasonExpired, now); derr != nil {
				return derr
			}
			lapsed = true
			return nil
		}

		replayed, derr = res.Complete(oid, now)
		if derr != nil || replayed {
			return derr
		}

		if _, derr = tx.Catalog().LockStock(ctx, tx.DB(), res.Target()); derr != nil {
			return catalogErr(derr)
		}
		if derr = tx.Catalog().DecrementStock(ctx, tx.DB(), res.Target(), res.Quantity().Value()); derr != nil {
			return decrementErr(derr)
		}
		return tx.Reservations().MarkCompleted(ctx, tx.DB(), res)
	})
	if err != nil {
		return false, err
	}
	if lapsed {
		uc.logger.InfoContext(ctx, "reservation expired at completion", "reservation_id", id, "order_id", oid.String())
		return false, reservation.NewInvalidStateError(id, reservation.StatusExpired, "complete")
	}

	if !replayed {
		uc.logger.InfoContext(ctx, "reservation completed", "reservation_id", id, "order_id", oid.String())
	}
	return true, nil
}

// CleanupExpired expires lapsed reservations batch by batch. Each batch is its
// own transaction and skips rows another caller has locked, so concurrent
// sweeps and lifecycle calls never wait on each other.
func (uc *reservationUseCaseImpl) CleanupExpired(ctx context.Context) (total int, err error) {
	ctx, done := uc.begin(ctx, opCleanupExpired)
	defer func() {
		uc.metrics.AddExpired(total)
		err = done(err, metrics.OutcomeOK)
	}()

	now := uc.clock.Now()
	for {
		var batch int
		batchCtx, cancel := uc.withTimeout(ctx)
		err = uc.uow.Within(batchCtx, func(ctx context.Context, tx shared.Tx) error {
			ids, derr := tx.Reservations().ExpireLapsed(ctx, tx.DB(), now, uc.opts.SweepBatchSize)
			batch = len(ids)
			return derr
		})
		cancel()
		if err != nil {
			return total, err
		}
		total += batch
		if batch < int(uc.opts.SweepBatchSize) {
			break
		}
	}

	if total > 0 {
		uc.logger.InfoContext(ctx, "expired lapsed reservations", "count", total)
	}
	return total, nil
}

// begin starts the span and the per-operation timeout. The returned func ends
// both, records metrics, and converts the error into the public taxonomy.
func (uc *reservationUseCaseImpl) begin(ctx context.Context, op string) (context.Context, func(err error, okOutcome string) error) {
	start := time.Now()
	ctx, span := uc.tracer.Start(ctx, "ReservationCommands."+op)
	cancel := context.CancelFunc(func() {})
	if op != opCleanupExpired {
		ctx, cancel = uc.withTimeout(ctx)
	}

	return ctx, func(err error, okOutcome string) error {
		defer span.End()
		defer cancel()

		err = classifyError(err)
		outcome := okOutcome
		if err != nil {
			outcome = outcomeOf(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if outcome == metrics.OutcomeStorageError {
				uc.logger.ErrorContext(ctx, "reservation operation failed", "operation", op, "error", err.Error())
			}
		}
		uc.metrics.ObserveOperation(op, outcome, time.Since(start))
		return err
	}
}

func (uc *reservationUseCaseImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.opts.OpTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.opts.OpTimeout)
}

// classifyError keeps domain errors as they are and marks everything else,
// including timeouts and cancellations, as ErrStorage.
func classifyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errs.Is(err, reservation.ErrInvalidArgument),
		errs.Is(err, reservation.ErrInsufficientStock),
		errs.Is(err, reservation.ErrInvalidState),
		errs.Is(err, reservation.ErrReservationNotFound),
		errs.Is(err, reservation.ErrTargetNotFound),
		errs.Is(err, ErrStorage):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, reservation.ErrReservationNotFound)
	default:
		return errs.Mark(err, ErrStorage)
	}
}

// catalogErr separates a missing product or variant from a missing
// reservation; the store reports both as KindNotFound.
func catalogErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, reservation.ErrTargetNotFound)
	}
	return err
}

// decrementErr turns a short stock row into a state error. Retrying cannot
// help, so it must not surface as ErrStorage.
func decrementErr(err error) error {
	if infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(errs.Mark(err, reservation.ErrStockShortfall), reservation.ErrInvalidState)
	}
	return err
}

func outcomeOf(err error) string {
	switch {
	case errs.Is(err, reservation.ErrInvalidArgument):
		return metrics.OutcomeInvalidArgument
	case errs.Is(err, reservation.ErrInsufficientStock):
		return metrics.OutcomeInsufficientStock
	case errs.Is(err, reservation.ErrInvalidState):
		return metrics.OutcomeInvalidState
	case errs.Is(err, reservation.ErrReservationNotFound), errs.Is(err, reservation.ErrTargetNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeStorageError
	}
}
