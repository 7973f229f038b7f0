//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/infra"
	sqlc "inventory-reservation/internal/infra/sqlc/generated"
	"inventory-reservation/internal/pkg/clock"
	"inventory-reservation/internal/pkg/errs"
	"inventory-reservation/internal/pkg/metrics"
	"inventory-reservation/internal/usecase/commands"
	"inventory-reservation/internal/usecase/shared"
	"inventory-reservation/tests/common/builder"
	sharedmock "inventory-reservation/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

var baseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type ReservationCommandsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	resRepo   *sharedmock.MockReservationRepository
	catalog   *sharedmock.MockCatalogRepository
	clock     *clock.MockClock
	useCase   commands.ReservationCommands
	productID uuid.UUID
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.resRepo = sharedmock.NewMockReservationRepository(s.ctrl)
	s.catalog = sharedmock.NewMockCatalogRepository(s.ctrl)
	s.clock = clock.NewMockClock(baseTime)
	s.productID = uuid.New()

	s.tx.EXPECT().DB().Return(nil).AnyTimes()
	s.tx.EXPECT().Reservations().Return(s.resRepo).AnyTimes()
	s.tx.EXPECT().Catalog().Return(s.catalog).AnyTimes()

	s.useCase = commands.NewReservationUseCase(s.uow, s.clock, commands.Options{
		DefaultTTL:     15 * time.Minute,
		OpTimeout:      time.Second,
		SweepBatchSize: 2,
	}, metrics.Nop(), nil)
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

// runTx makes the mocked unit of work execute the callback once against the
// mocked transaction, like a first attempt that does not hit a conflict.
func (s *ReservationCommandsTestSuite) runTx(times int) {
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).Times(times)
}

func (s *ReservationCommandsTestSuite) reserveParams(qty int) commands.ReserveParams {
	return commands.ReserveParams{
		Target:   reservation.Product(s.productID),
		Quantity: qty,
		Holder:   reservation.User(uuid.New()),
	}
}

// =============================================================================
// Reserve
// =============================================================================

func (s *ReservationCommandsTestSuite) TestReserve_Success() {
	s.runTx(1)
	target := reservation.Product(s.productID)
	s.catalog.EXPECT().LockStock(gomock.Any(), gomock.Any(), target).Return(5, nil)
	s.resRepo.EXPECT().SumHeld(gomock.Any(), gomock.Any(), target, baseTime).Return(2, nil)
	s.resRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
			s.Equal(3, res.Quantity().Value())
			s.Equal(reservation.StatusActive, res.Status())
			s.Equal(baseTime.Add(15*time.Minute), res.ExpiresAt())
			return res.ID(), nil
		})

	id, err := s.useCase.Reserve(context.Background(), s.reserveParams(3))

	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, id)
}

func (s *ReservationCommandsTestSuite) TestReserve_ZeroTTLIsKept() {
	s.runTx(1)
	s.catalog.EXPECT().LockStock(gomock.Any(), gomock.Any(), gomock.Any()).Return(5, nil)
	s.resRepo.EXPECT().SumHeld(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
	s.resRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
			s.Equal(baseTime, res.ExpiresAt())
			return res.ID(), nil
		})

	ttl := time.Duration(0)
	p := s.reserveParams(1)
	p.TTL = &ttl
	_, err := s.useCase.Reserve(context.Background(), p)

	s.Require().NoError(err)
}

func (s *ReservationCommandsTestSuite) TestReserve_InsufficientStock() {
	s.runTx(1)
	s.catalog.EXPECT().LockStock(gomock.Any(), gomock.Any(), gomock.Any()).Return(5, nil)
	s.resRepo.EXPECT().SumHeld(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(3, nil)

	_, err := s.useCase.Reserve(context.Background(), s.reserveParams(4))

	s.Require().Error(err)
	s.True(errs.Is(err, reservation.ErrInsufficientStock))
	var ise *reservation.InsufficientStockError
	s.Require().True(errors.As(err, &ise))
	s.Equal(4, ise.Requested)
	s.Equal(2, ise.Available)
}

func (s *ReservationCommandsTestSuite) TestReserve_InvalidArguments() {
	cases := map[string]commands.ReserveParams{
		"zero quantity":     {Target: reservation.Product(s.productID), Quantity: 0, Holder: reservation.User(uuid.New())},
		"negative quantity": {Target: reservation.Product(s.productID), Quantity: -2, Holder: reservation.User(uuid.New())},
		"missing target":    {Quantity: 1, Holder: reservation.User(uuid.New())},
		"nil target id":     {Target: reservation.Variant(uuid.Nil), Quantity: 1, Holder: reservation.User(uuid.New())},
		"missing holder":    {Target: reservation.Product(s.productID), Quantity: 1},
		"blank session":     {Target: reservation.Product(s.productID), Quantity: 1, Holder: reservation.Session("  ")},
	}
	negative := -time.Second
	cases["negative ttl"] = commands.ReserveParams{Target: reservation.Product(s.productID), Quantity: 1, Holder: reservation.User(uuid.New()), TTL: &negative}

	for name, p := range cases {
		s.Run(name, func() {
			_, err := s.useCase.Reserve(context.Background(), p)
			s.Require().Error(err)
			s.True(errs.Is(err, reservation.ErrInvalidArgument), "got %v", err)
		})
	}
}

func (s *ReservationCommandsTestSuite) TestReserve_UnknownTarget() {
	s.runTx(1)
	s.catalog.EXPECT().LockStock(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, infra.WrapRepoErr("product or variant not found", errors.New("no rows"), infra.KindNotFound))

	_, err := s.useCase.Reserve(context.Background(), s.reserveParams(1))

	s.Require().Error(err)
	s.True(errs.Is(err, reservation.ErrTargetNotFound))
	s.False(errs.Is(err, commands.ErrStorage))
}

func (s *ReservationCommandsTestSuite) TestReserve_StorageFailure() {
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

	_, err := s.useCase.Reserve(context.Background(), s.reserveParams(1))

	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrStorage))
	s.False(errs.Is(err, reservation.ErrInsufficientStock))
}

// =============================================================================
// Release
// =============================================================================

func (s *ReservationCommandsTestSuite) TestRelease() {
	id := uuid.New()

	s.Run("active reservation is released", func() {
		s.runTx(1)
		s.resRepo.EXPECT().Release(gomock.Any(), gomock.Any(), id, reservation.ReasonCancelled, baseTime).Return(true, nil)

		ok, err := s.useCase.Release(context.Background(), id, reservation.ReasonCancelled)
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("terminal reservation reports false", func() {
		s.runTx(1)
		s.resRepo.EXPECT().Release(gomock.Any(), gomock.Any(), id, reservation.ReasonExpired, baseTime).Return(false, nil)
		s.resRepo.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).
			Return(builder.NewReservationBuilder().Released(reservation.StatusCancelled).BuildDomain(), nil)

		ok, err := s.useCase.Release(context.Background(), id, reservation.ReasonExpired)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("retried attempt reports the outcome of the attempt that committed", func() {
		// First attempt moves the row but fails to commit; by the second
		// attempt another caller has released it.
		s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
				if err := fn(ctx, s.tx); err != nil {
					return err
				}
				return fn(ctx, s.tx)
			})
		gomock.InOrder(
			s.resRepo.EXPECT().Release(gomock.Any(), gomock.Any(), id, reservation.ReasonCancelled, baseTime).Return(true, nil),
			s.resRepo.EXPECT().Release(gomock.Any(), gomock.Any(), id, reservation.ReasonCancelled, baseTime).Return(false, nil),
		)
		s.resRepo.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).
			Return(builder.NewReservationBuilder().Released(reservation.StatusCancelled).BuildDomain(), nil)

		ok, err := s.useCase.Release(context.Background(), id, reservation.ReasonCancelled)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("unknown id", func() {
		s.runTx(1)
		s.resRepo.EXPECT().Release(gomock.Any(), gomock.Any(), id, reservation.ReasonCancelled, baseTime).Return(false, nil)
		s.resRepo.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound))

		_, err := s.useCase.Release(context.Background(), id, reservation.ReasonCancelled)
		s.Require().Error(err)
		s.True(errs.Is(err, reservation.ErrReservationNotFound))
	})

	s.Run("invalid reason", func() {
		_, err := s.useCase.Release(context.Background(), id, reservation.ReleaseReason("completed"))
		s.Require().Error(err)
		s.True(errs.Is(err, reservation.ErrInvalidArgument))
	})
}

// =============================================================================
// Complete
// =============================================================================

func (s *ReservationCommandsTestSuite) TestComplete_Success() {
	b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.CreatedAt = baseTime.Add(-time.Minute)
		b.Quantity = 3
	})
	res := b.BuildDomain()

	s.runTx(1)
	gomock.InOrder(
		s.resRepo.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), b.ID).Return(res, nil),
		s.catalog.EXPECT().LockStock(gomock.Any(), gomock.Any(), b.Target()).Return(5, nil),
		s.catalog.EXPECT().DecrementStock(gomock.Any(), gomock.Any(), b.Target(), 3).Return(nil),
		s.resRepo.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), res).Return(nil),
	)

	ok, err := s.useCase.Complete(context.Background(), b.ID, "O1")

	s.Require().NoError(err)
	s.True(ok)
	s.Equal(reservation.StatusCompleted, res.Status())
	s.Equal("O1", res.OrderID().String())
}

func (s *ReservationCommandsTestSuite) TestComplete_SameOrderIsIdempotent() {
	b := builder.NewReservationBuilder().Completed("O1")

	s.runTx(1)
	s.resRepo.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), b.ID).Return(b.BuildDomain(), nil)
	// no stock lock, no decrement, no write

	ok, err := s.useCase.Complete(context.Background(), b.ID, "O1")

	s.Require().NoError(err)
	s.True(ok)
}

func (s *ReservationCommandsTestSuite) TestComplete_NotActive() {
	cases := map[string]*builder.ReservationBuilder{
		"completed with another order": builder.NewReservationBuilder().Completed("O1"),
		"cancelled":                    builder.NewReservationBuilder().Released(reservation.StatusCancelled),
		"expired":                      builder.NewReservationBuilder().Released(reservation.StatusExpired),
	}

	for name, b := range cases {
		s.Run(name, func() {
			s.runTx(1)
			s.resRepo.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), b.ID).Return(b.BuildDomain(), nil)

			ok, err := s.useCase.Complete(context.Background(), b.ID, "O2")

			s.Require().Error(err)
			s.False(ok)
			s.True(errs.Is(err, reservation.ErrInvalidState))
			var ise *reservation.InvalidStateError
			s.Require().True(errors.As(err, &ise))
			s.Equal(b.Status, ise.Status)
		})
	}
}

func (s *ReservationCommandsTestSuite) TestComplete_LapsedIsExpiredFirst() {
	b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.CreatedAt = baseTime.Add(-time.Hour)
		b.TTL = 15 * time.Minute
	})

	s.runTx(1)
	s.resRepo.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), b.ID).Return(b.BuildDomain(), nil)
	s.resRepo.EXPECT().Release(gomock.Any(), gomock.Any(), b.ID, reservation.ReasonExpired, baseTime).Return(true, nil)

	ok, err := s.useCase.Complete(context.Background(), b.ID, "O1")

	s.Require().Error(err)
	s.False(ok)
	var ise *reservation.InvalidStateError
	s.Require().True(errors.As(err, &ise))
	s.Equal(reservation.StatusExpired, ise.Status)
}

func (s *ReservationCommandsTestSuite) TestComplete_InvalidOrderID() {
	_, err := s.useCase.Complete(context.Background(), uuid.New(), "   ")

	s.Require().Error(err)
	s.True(errs.Is(err, reservation.ErrInvalidArgument))
}

func (s *ReservationCommandsTestSuite) TestComplete_UnknownID() {
	id := uuid.New()
	s.runTx(1)
	s.resRepo.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), id).
		Return(nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound))

	_, err := s.useCase.Complete(context.Background(), id, "O1")

	s.Require().Error(err)
	s.True(errs.Is(err, reservation.ErrReservationNotFound))
}

func (s *ReservationCommandsTestSuite) TestComplete_StockShortfallIsNotRetryable() {
	b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.CreatedAt = baseTime
	})

	s.runTx(1)
	s.resRepo.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), b.ID).Return(b.BuildDomain(), nil)
	s.catalog.EXPECT().LockStock(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)
	s.catalog.EXPECT().DecrementStock(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(infra.WrapRepoErr("stock row missing or below requested quantity", nil, infra.KindConflict))

	_, err := s.useCase.Complete(context.Background(), b.ID, "O1")

	s.Require().Error(err)
	s.True(errs.Is(err, reservation.ErrStockShortfall))
	s.True(errs.Is(err, reservation.ErrInvalidState))
	s.False(errs.Is(err, commands.ErrStorage))
}

func (s *ReservationCommandsTestSuite) TestComplete_DecrementDriverFailureIsStorageError() {
	b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.CreatedAt = baseTime
	})

	s.runTx(1)
	s.resRepo.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), b.ID).Return(b.BuildDomain(), nil)
	s.catalog.EXPECT().LockStock(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)
	s.catalog.EXPECT().DecrementStock(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(infra.WrapRepoErr("failed to decrement stock", errors.New("connection reset")))

	_, err := s.useCase.Complete(context.Background(), b.ID, "O1")

	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrStorage))
}

// =============================================================================
// CleanupExpired
// =============================================================================

func (s *ReservationCommandsTestSuite) TestCleanupExpired_DrainsInBatches() {
	s.runTx(2)
	gomock.InOrder(
		s.resRepo.EXPECT().ExpireLapsed(gomock.Any(), gomock.Any(), baseTime, int32(2)).Return([]uuid.UUID{uuid.New(), uuid.New()}, nil),
		s.resRepo.EXPECT().ExpireLapsed(gomock.Any(), gomock.Any(), baseTime, int32(2)).Return([]uuid.UUID{uuid.New()}, nil),
	)

	n, err := s.useCase.CleanupExpired(context.Background())

	s.Require().NoError(err)
	s.Equal(3, n)
}

func (s *ReservationCommandsTestSuite) TestCleanupExpired_NothingToDo() {
	s.runTx(1)
	s.resRepo.EXPECT().ExpireLapsed(gomock.Any(), gomock.Any(), baseTime, int32(2)).Return(nil, nil)

	n, err := s.useCase.CleanupExpired(context.Background())

	s.Require().NoError(err)
	s.Zero(n)
}

func (s *ReservationCommandsTestSuite) TestCleanupExpired_StorageFailureKeepsCount() {
	s.runTx(1)
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
	s.resRepo.EXPECT().ExpireLapsed(gomock.Any(), gomock.Any(), baseTime, int32(2)).Return([]uuid.UUID{uuid.New(), uuid.New()}, nil)

	n, err := s.useCase.CleanupExpired(context.Background())

	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrStorage))
	s.Equal(2, n)
}

func TestNewReservationUseCase_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	uow := sharedmock.NewMockUnitOfWork(ctrl)
	tx := sharedmock.NewMockTx(ctrl)
	repo := sharedmock.NewMockReservationRepository(ctrl)
	catalog := sharedmock.NewMockCatalogRepository(ctrl)
	tx.EXPECT().DB().Return(nil).AnyTimes()
	tx.EXPECT().Reservations().Return(repo).AnyTimes()
	tx.EXPECT().Catalog().Return(catalog).AnyTimes()

	uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, tx)
		})
	catalog.EXPECT().LockStock(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().SumHeld(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
			assert.Equal(t, baseTime.Add(reservation.DefaultTTL), res.ExpiresAt())
			return res.ID(), nil
		})

	uc := commands.NewReservationUseCase(uow, clock.NewMockClock(baseTime), commands.Options{}, nil, nil)
	_, err := uc.Reserve(context.Background(), commands.ReserveParams{
		Target:   reservation.Product(uuid.New()),
		Quantity: 1,
		Holder:   reservation.Session("sess"),
	})
	require.NoError(t, err)
}

// =============================================================================
// Tracing
// =============================================================================

func (s *ReservationCommandsTestSuite) TestOperationsRecordSpans() {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	s.T().Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	uc := commands.NewReservationUseCase(s.uow, s.clock, commands.Options{
		OpTimeout:      time.Second,
		SweepBatchSize: 2,
		TracerProvider: tp,
	}, metrics.Nop(), nil)

	target := reservation.Product(s.productID)
	s.runTx(2)
	s.catalog.EXPECT().LockStock(gomock.Any(), gomock.Any(), target).Return(5, nil)
	s.resRepo.EXPECT().SumHeld(gomock.Any(), gomock.Any(), target, baseTime).Return(0, nil)
	s.resRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
			return res.ID(), nil
		})
	_, err := uc.Reserve(context.Background(), s.reserveParams(2))
	s.Require().NoError(err)

	s.catalog.EXPECT().LockStock(gomock.Any(), gomock.Any(), target).Return(1, nil)
	s.resRepo.EXPECT().SumHeld(gomock.Any(), gomock.Any(), target, baseTime).Return(1, nil)
	_, err = uc.Reserve(context.Background(), s.reserveParams(1))
	s.Require().Error(err)

	ended := recorder.Ended()
	s.Require().Len(ended, 2)

	ok, failed := ended[0], ended[1]
	s.Equal("ReservationCommands.reserve", ok.Name())
	s.Equal(codes.Unset, ok.Status().Code)
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ok.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	s.Equal(int64(2), attrs["reservation.quantity"].AsInt64())
	s.Equal(target.String(), attrs["reservation.target"].AsString())

	s.Equal("ReservationCommands.reserve", failed.Name())
	s.Equal(codes.Error, failed.Status().Code)
	s.NotEmpty(failed.Events(), "error should be recorded as a span event")
}

