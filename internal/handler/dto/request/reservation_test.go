//go:build unit

package request_test

import (
	"testing"
	"time"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/handler/dto/request"
	"inventory-reservation/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveRequest_ToParams_TTL(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()
	secs := func(v int64) *int64 { return &v }

	tests := []struct {
		name    string
		ttl     *int64
		want    *time.Duration
		wantErr error
	}{
		{name: "omitted", ttl: nil, want: nil},
		{name: "zero", ttl: secs(0), want: durationPtr(0)},
		{name: "ten minutes", ttl: secs(600), want: durationPtr(10 * time.Minute)},
		{name: "exactly the ceiling", ttl: secs(int64(reservation.MaxTTL / time.Second)), want: durationPtr(reservation.MaxTTL)},
		{name: "one second past the ceiling", ttl: secs(int64(reservation.MaxTTL/time.Second) + 1), wantErr: reservation.ErrInvalidTTL},
		{name: "would overflow int64 nanoseconds", ttl: secs(18446744074), wantErr: reservation.ErrInvalidTTL},
		{name: "negative", ttl: secs(-1), wantErr: reservation.ErrInvalidTTL},
		{name: "negative overflow", ttl: secs(-18446744074), wantErr: reservation.ErrInvalidTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request.ReserveRequest{ProductID: &productID, Quantity: 1, UserID: &userID, TTLSeconds: tt.ttl}

			params, err := req.ToParams()

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
				assert.True(t, errs.Is(err, reservation.ErrInvalidArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, params.TTL)
		})
	}
}

func TestReserveCartRequest_TTL(t *testing.T) {
	huge := int64(18446744074)
	_, err := request.ReserveCartRequest{TTLSeconds: &huge}.TTL()
	assert.True(t, errs.Is(err, reservation.ErrInvalidTTL))

	ttl, err := request.ReserveCartRequest{}.TTL()
	require.NoError(t, err)
	assert.Nil(t, ttl)
}

func durationPtr(d time.Duration) *time.Duration { return &d }
