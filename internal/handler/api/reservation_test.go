//go:build unit

package api_test

import (
	"errors"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/handler/api"
	resdto "inventory-reservation/internal/handler/dto/response"
	"inventory-reservation/internal/pkg/errs"
	"inventory-reservation/internal/usecase/commands"
	"inventory-reservation/internal/usecase/shared"
	"inventory-reservation/tests/common/builder"
	"inventory-reservation/tests/common/httptest"
	"inventory-reservation/tests/common/testutil"
	commandsmock "inventory-reservation/tests/mock/commands"
	queriesmock "inventory-reservation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/reservations", s.handler.Reserve)
	s.router.GET("/reservations/:id", s.handler.Get)
	s.router.POST("/reservations/:id/release", s.handler.Release)
	s.router.POST("/reservations/:id/complete", s.handler.Complete)
	s.router.POST("/maintenance/cleanup-expired", s.handler.CleanupExpired)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestReserve
// ================================================================================

func (s *ReservationHandlerTestSuite) TestReserve() {
	url := "/reservations"

	b := builder.NewReservationBuilder()
	reqBody := b.BuildReserveRequestDTO()
	newID := uuid.New()

	s.Run("success: returns 201 Created with the reservation id", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, p commands.ReserveParams) (uuid.UUID, error) {
				s.Equal(b.Target(), p.Target)
				s.Equal(b.Holder(), p.Holder)
				s.Equal(b.Quantity, p.Quantity)
				s.Require().NotNil(p.TTL)
				s.Equal(b.TTL, *p.TTL)
				return newID, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.ReserveResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(newID, body.ReservationID)
	})

	s.Run("success: omitted ttl leaves the default to the service", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, p commands.ReserveParams) (uuid.UUID, error) {
				s.Nil(p.TTL)
				return newID, nil
			}).Times(1)

		requestMap := testutil.JSONMap(s.T(), reqBody, testutil.Drop("ttlSeconds"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("error: 400 Bad Request when target or holder is malformed", func() {
		other := uuid.New().String()
		cases := []testCaseReservation{
			{name: "no target", mutate: testutil.Drop("productId"), expectCode: http.StatusBadRequest},
			{name: "product and variant", mutate: testutil.Set("variantId", other), expectCode: http.StatusBadRequest},
			{name: "no holder", mutate: testutil.Drop("userId"), expectCode: http.StatusBadRequest},
			{name: "user and session", mutate: testutil.Set("sessionId", "sess-1"), expectCode: http.StatusBadRequest},
			{name: "product id not a uuid", mutate: testutil.Set("productId", "nope"), expectCode: http.StatusBadRequest},
			{name: "ttl past the ceiling", mutate: testutil.Set("ttlSeconds", 86401), expectCode: http.StatusBadRequest},
			{name: "ttl that would overflow a duration", mutate: testutil.Set("ttlSeconds", int64(18446744074)), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.JSONMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: 409 Conflict carries requested and available", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, reservation.NewInsufficientStockError(b.Target(), 2, 1)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Insufficient stock")
		s.Equal(b.Target().String(), body.Detail["target"])
		s.EqualValues(2, body.Detail["requested"])
		s.EqualValues(1, body.Detail["available"])
	})

	s.Run("error: use case failures map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "invalid quantity", err: reservation.ErrInvalidQuantity, expectCode: http.StatusBadRequest},
			{name: "unknown product", err: reservation.ErrTargetNotFound, expectCode: http.StatusNotFound},
			{name: "storage timeout", err: errs.Mark(errs.New("deadline exceeded"), shared.ErrStorage), expectCode: http.StatusServiceUnavailable},
			{name: "unclassified", err: errors.New("boom"), expectCode: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(uuid.Nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	b := builder.NewReservationBuilder().ForSession("sess-42").Completed("order-7")
	view := b.BuildView()
	url := "/reservations/" + view.ID.String()

	s.Run("success: returns the reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("completed", body.Status)
		s.Require().NotNil(body.OrderID)
		s.Equal("order-7", *body.OrderID)
		s.Require().NotNil(body.SessionID)
		s.Equal("sess-42", *body.SessionID)
		s.Nil(body.UserID)
		s.True(view.ExpiresAt.Equal(body.ExpiresAt))
	})

	s.Run("error: 404 Not Found for unknown id", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
			Return(nil, reservation.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: 400 Bad Request for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID format")
	})
}

// ================================================================================
// TestRelease
// ================================================================================

func (s *ReservationHandlerTestSuite) TestRelease() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/release"

	s.Run("success: empty body releases as cancelled", func() {
		s.mockCommands.EXPECT().Release(gomock.Any(), id, reservation.ReasonCancelled).Return(true, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		var body resdto.ReleaseResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Released)
	})

	s.Run("success: explicit expired reason", func() {
		s.mockCommands.EXPECT().Release(gomock.Any(), id, reservation.ReasonExpired).Return(true, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "expired"})
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: chunked body without content length is still read", func() {
		s.mockCommands.EXPECT().Release(gomock.Any(), id, reservation.ReasonExpired).Return(true, nil).Times(1)

		req := nethttptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"reason":"expired"}`))
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = -1
		req.TransferEncoding = []string{"chunked"}
		rec := nethttptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 Bad Request for a malformed body", func() {
		rec := nethttptest.NewRecorder()
		req := nethttptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"reason":`))
		req.Header.Set("Content-Type", "application/json")
		s.router.ServeHTTP(rec, req)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("success: already terminal reports released=false", func() {
		s.mockCommands.EXPECT().Release(gomock.Any(), id, reservation.ReasonCancelled).Return(false, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "cancelled"})

		var body resdto.ReleaseResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Released)
	})

	s.Run("error: 400 Bad Request for completed as a reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "completed"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 404 Not Found for unknown id", func() {
		s.mockCommands.EXPECT().Release(gomock.Any(), id, reservation.ReasonCancelled).
			Return(false, reservation.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestComplete
// ================================================================================

func (s *ReservationHandlerTestSuite) TestComplete() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/complete"
	reqBody := map[string]any{"orderId": "order-1"}

	s.Run("success: returns completed=true", func() {
		s.mockCommands.EXPECT().Complete(gomock.Any(), id, "order-1").Return(true, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.CompleteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Completed)
	})

	s.Run("error: 400 Bad Request when orderId is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 409 Conflict for a reservation that is not active", func() {
		s.mockCommands.EXPECT().Complete(gomock.Any(), id, "order-1").
			Return(false, reservation.NewInvalidStateError(id, reservation.StatusExpired, "complete")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Reservation is not active")
		s.Equal("expired", body.Detail["status"])
		s.Equal("complete", body.Detail["operation"])
	})

	s.Run("error: 409 Conflict when stock was lowered under the hold", func() {
		shortfall := errs.Mark(errs.Mark(errs.New("stock row below requested quantity"), reservation.ErrStockShortfall), reservation.ErrInvalidState)
		s.mockCommands.EXPECT().Complete(gomock.Any(), id, "order-1").Return(false, shortfall).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Stock no longer covers the reservation")
	})
}

// ================================================================================
// TestCleanupExpired
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCleanupExpired() {
	url := "/maintenance/cleanup-expired"

	s.Run("success: returns number of expired reservations", func() {
		s.mockCommands.EXPECT().CleanupExpired(gomock.Any()).Return(3, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		var body resdto.CleanupResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(3, body.Expired)
	})

	s.Run("error: 503 Service Unavailable on storage failure", func() {
		s.mockCommands.EXPECT().CleanupExpired(gomock.Any()).
			Return(0, errs.Mark(errs.New("connection refused"), shared.ErrStorage)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Storage temporarily unavailable")
	})
}
