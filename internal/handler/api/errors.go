package api

import (
	"net/http"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/handler/httperr"
	"inventory-reservation/internal/pkg/errs"
	"inventory-reservation/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// abortWithDomainError maps the error taxonomy onto HTTP statuses.
func abortWithDomainError(c *gin.Context, err error) {
	var (
		insufficient *reservation.InsufficientStockError
		invalidState *reservation.InvalidStateError
	)
	switch {
	case errs.Is(err, reservation.ErrInvalidArgument):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
	case errs.Is(err, reservation.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errs.Is(err, reservation.ErrTargetNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product or variant not found", nil)
	case errs.As(err, &insufficient):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient stock", gin.H{
			"target":    insufficient.Target.String(),
			"requested": insufficient.Requested,
			"available": insufficient.Available,
		})
	case errs.Is(err, reservation.ErrStockShortfall):
		httperr.AbortWithError(c, http.StatusConflict, err, "Stock no longer covers the reservation", nil)
	case errs.As(err, &invalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation is not active", gin.H{
			"reservationId": invalidState.ReservationID,
			"status":        invalidState.Status.String(),
			"operation":     invalidState.Operation,
		})
	case errs.Is(err, shared.ErrStorage):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Storage temporarily unavailable, retry the request", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func abortWithBindError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", err.Error())
}
