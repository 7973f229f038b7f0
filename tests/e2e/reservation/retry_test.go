//go:build e2e

package reservation_test

import (
	"context"
	"sync"
	"sync/atomic"

	sqlc "inventory-reservation/internal/infra/sqlc/generated"
	"inventory-reservation/internal/infra/uow"
	"inventory-reservation/internal/usecase/shared"
	"inventory-reservation/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func (s *ConcurrencySuite) TestTransactionRetry() {
	s.Run("deadlock victim is retried and both transactions commit", func() {
		t := s.T()
		first := dbtest.CreateProduct(t, s.DB, "Left", 1)
		second := dbtest.CreateProduct(t, s.DB, "Right", 1)
		work := uow.NewPostgresUoW(s.DB, sqlc.New(), 3)

		// Both transactions take their first lock, wait for each other, then
		// reach for the other row. Postgres aborts one with 40P01.
		var ready sync.WaitGroup
		ready.Add(2)
		var attempts atomic.Int32

		lockBoth := func(a, b uuid.UUID) func() error {
			var tries atomic.Int32
			return func() error {
				return work.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
					attempts.Add(1)
					if _, err := tx.DB().Exec(ctx, "SELECT stock FROM products WHERE id = $1 FOR UPDATE", a); err != nil {
						return err
					}
					if tries.Add(1) == 1 {
						ready.Done()
						ready.Wait()
					}
					_, err := tx.DB().Exec(ctx, "UPDATE products SET stock = stock + 1 WHERE id = $1", b)
					return err
				})
			}
		}

		var g errgroup.Group
		g.Go(lockBoth(first, second))
		g.Go(lockBoth(second, first))
		require.NoError(t, g.Wait())

		s.GreaterOrEqual(attempts.Load(), int32(3), "one transaction should have been retried")
		s.Equal(2, dbtest.StockOf(t, s.DB, productTarget(first)))
		s.Equal(2, dbtest.StockOf(t, s.DB, productTarget(second)))
	})

	s.Run("persistent serialization failure stops after the retry budget", func() {
		t := s.T()
		work := uow.NewPostgresUoW(s.DB, sqlc.New(), 2)

		var attempts atomic.Int32
		err := work.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			attempts.Add(1)
			return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
		})

		require.Error(t, err)
		s.True(uow.IsMaxRetriesExceeded(err))
		s.Equal(int32(3), attempts.Load())
	})

	s.Run("non-retryable failure is returned after one attempt", func() {
		t := s.T()
		productID := dbtest.CreateProduct(t, s.DB, "Guarded", 1)
		work := uow.NewPostgresUoW(s.DB, sqlc.New(), 3)

		var attempts atomic.Int32
		err := work.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			attempts.Add(1)
			_, err := tx.DB().Exec(ctx, "UPDATE products SET stock = -1 WHERE id = $1", productID)
			return err
		})

		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		s.Equal("23514", pgErr.Code)
		s.False(uow.IsMaxRetriesExceeded(err))
		s.Equal(int32(1), attempts.Load())
	})
}
