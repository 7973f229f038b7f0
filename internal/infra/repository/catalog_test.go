//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/infra"
	"inventory-reservation/internal/infra/repository"
	sqlc "inventory-reservation/internal/infra/sqlc/generated"
	repositorymock "inventory-reservation/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCatalogRepository_LockStock(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	variantID := uuid.New()

	testCases := []struct {
		name       string
		target     reservation.Target
		setupMock  func(*repositorymock.MockCatalogQueries, *mockDBTX)
		want       int
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:   "success: product row locked",
			target: reservation.Product(productID),
			setupMock: func(m *repositorymock.MockCatalogQueries, tx *mockDBTX) {
				m.EXPECT().LockProductStock(ctx, tx, productID).Return(int32(5), nil)
			},
			want: 5,
		},
		{
			name:   "success: variant row locked",
			target: reservation.Variant(variantID),
			setupMock: func(m *repositorymock.MockCatalogQueries, tx *mockDBTX) {
				m.EXPECT().LockVariantStock(ctx, tx, variantID).Return(int32(9), nil)
			},
			want: 9,
		},
		{
			name:   "error: unknown product",
			target: reservation.Product(productID),
			setupMock: func(m *repositorymock.MockCatalogQueries, tx *mockDBTX) {
				m.EXPECT().LockProductStock(ctx, tx, productID).Return(int32(0), pgx.ErrNoRows)
			},
			expectKind: infra.KindNotFound,
		},
		{
			name:   "error: deadlock keeps driver error reachable",
			target: reservation.Variant(variantID),
			setupMock: func(m *repositorymock.MockCatalogQueries, tx *mockDBTX) {
				m.EXPECT().LockVariantStock(ctx, tx, variantID).Return(int32(0), &pgconn.PgError{Code: "40P01"})
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockCatalogQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewCatalogRepository(mockQueries, mockDB)
			tc.setupMock(mockQueries, mockDB)

			stock, err := repo.LockStock(ctx, mockDB, tc.target)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) {
					assert.Equal(t, "40P01", pgErr.Code)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, stock)
		})
	}
}

func TestCatalogRepository_GetStock(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockCatalogQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewCatalogRepository(mockQueries, mockDB)

	mockQueries.EXPECT().GetProductStock(ctx, mockDB, productID).Return(int32(12), nil)

	stock, err := repo.GetStock(ctx, mockDB, reservation.Product(productID))
	require.NoError(t, err)
	assert.Equal(t, 12, stock)
}

func TestCatalogRepository_DecrementStock(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	variantID := uuid.New()

	testCases := []struct {
		name       string
		target     reservation.Target
		setupMock  func(*repositorymock.MockCatalogQueries, *mockDBTX)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:   "success: product decremented",
			target: reservation.Product(productID),
			setupMock: func(m *repositorymock.MockCatalogQueries, tx *mockDBTX) {
				m.EXPECT().DecrementProductStock(ctx, tx, sqlc.DecrementProductStockParams{Quantity: 3, ID: productID}).Return(int64(1), nil)
			},
		},
		{
			name:   "success: variant decremented",
			target: reservation.Variant(variantID),
			setupMock: func(m *repositorymock.MockCatalogQueries, tx *mockDBTX) {
				m.EXPECT().DecrementVariantStock(ctx, tx, sqlc.DecrementVariantStockParams{Quantity: 3, ID: variantID}).Return(int64(1), nil)
			},
		},
		{
			name:   "error: stock would go negative",
			target: reservation.Product(productID),
			setupMock: func(m *repositorymock.MockCatalogQueries, tx *mockDBTX) {
				m.EXPECT().DecrementProductStock(ctx, tx, gomock.Any()).Return(int64(0), nil)
			},
			expectKind: infra.KindConflict,
		},
		{
			name:   "error: driver failure",
			target: reservation.Variant(variantID),
			setupMock: func(m *repositorymock.MockCatalogQueries, tx *mockDBTX) {
				m.EXPECT().DecrementVariantStock(ctx, tx, gomock.Any()).Return(int64(0), errors.New("broken pipe"))
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockCatalogQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewCatalogRepository(mockQueries, mockDB)
			tc.setupMock(mockQueries, mockDB)

			err := repo.DecrementStock(ctx, mockDB, tc.target, 3)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// =============================================================================
// helpers
// =============================================================================

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use sqlc mock instead.")
}

func pgtypeTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
