package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"inventory-reservation/internal/infra/repository"
	sqlc "inventory-reservation/internal/infra/sqlc/generated"
	"inventory-reservation/internal/pkg/errs"
	"inventory-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	DefaultMaxRetries = 3
	defaultBackoff    = 100 * time.Millisecond
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// IsMaxRetriesExceeded reports whether err came out of a transaction that
// kept hitting serialization failures or deadlocks.
func IsMaxRetriesExceeded(err error) bool {
	return errs.Is(err, errMaxRetriesExceeded)
}

type PostgresUoW struct {
	pool       *pgxpool.Pool
	q          *sqlc.Queries
	maxRetries int
	base       time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries, maxRetries int) shared.UnitOfWork {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	return &PostgresUoW{
		pool:       pool,
		q:          q,
		maxRetries: maxRetries,
		base:       defaultBackoff,
	}
}

// ReadCommitted is enough here: every write path locks the rows it decides on.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// readOnlyTxOptions pins one snapshot for every statement in the transaction.
// Under READ COMMITTED a completion committing between the stock read and the
// held sum would be counted on one side only.
var readOnlyTxOptions = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runReadOnlyTx(ctx, readOnlyTxOptions, fn)
}

// Each attempt finishes its transaction before the next begins, so retries
// never stack deferred rollbacks on one connection.
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = u.attempt(ctx, options, fn)
		if !shouldRetry(err, attempt, u.maxRetries) {
			break
		}

		wait := calculateBackoff(attempt, u.base)
		slog.Warn("retrying transaction",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	if isRetryableError(err) {
		slog.Error("transaction failed after max retries", "attempts", u.maxRetries+1, "error", err.Error())
		return errs.Mark(err, errMaxRetriesExceeded)
	}
	return err
}

func (u *PostgresUoW) attempt(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	if err = fn(ctx, newPgTx(pgxTx, u.q)); err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", rbErr.Error())
	}
	return err
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback read-only transaction", "error", rbErr.Error())
		}
	}()

	if err := fn(ctx, newPgTx(pgxTx, u.q)); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

// calculateBackoff doubles base per attempt and adds up to 20% jitter.
func calculateBackoff(attempt int, base time.Duration) time.Duration {
	wait := time.Duration(1<<attempt) * base
	if span := int64(wait / 5); span > 0 {
		wait += time.Duration(rand.Int64N(span))
	}
	return wait
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	q    *sqlc.Queries

	// Lazy-initialized repositories
	reservationRepo shared.ReservationRepository
	catalogRepo     shared.CatalogRepository
}

func newPgTx(dbtx sqlc.DBTX, q *sqlc.Queries) *pgTx {
	return &pgTx{dbtx: dbtx, q: q}
}

func (t *pgTx) DB() sqlc.DBTX {
	return t.dbtx
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.q, t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Catalog() shared.CatalogRepository {
	if t.catalogRepo == nil {
		t.catalogRepo = repository.NewCatalogRepository(t.q, t.dbtx)
	}
	return t.catalogRepo
}
