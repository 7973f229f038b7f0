package api

import (
	"io"
	"net/http"

	"inventory-reservation/internal/domain/reservation"
	reqdto "inventory-reservation/internal/handler/dto/request"
	resdto "inventory-reservation/internal/handler/dto/response"
	"inventory-reservation/internal/handler/httperr"
	"inventory-reservation/internal/pkg/errs"
	"inventory-reservation/internal/usecase/commands"
	"inventory-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmd commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: cmd,
		queries:  q,
	}
}

// @Summary Reserve stock
// @Description Hold stock of a product or variant for a checkout window
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.ReserveRequest true "Reservation request"
// @Success 201 {object} resdto.ReserveResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req reqdto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	params, err := req.ToParams()
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	id, err := h.commands.Reserve(c.Request.Context(), params)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.ReserveResponse{ReservationID: id})
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	resp, err := resdto.FromReservationView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Release reservation
// @Description Cancel (or expire) an active reservation. Releasing a reservation that is no longer active is a no-op.
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ReleaseRequest false "Release reason, cancelled by default"
// @Success 200 {object} resdto.ReleaseResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations/{id}/release [post]
func (h *ReservationHandler) Release(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.ReleaseRequest
	// The body is optional. Chunked bodies report ContentLength -1, so only
	// the absence of a body or an empty one falls back to the default reason.
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errs.Is(err, io.EOF) {
			abortWithBindError(c, err)
			return
		}
	}
	reason, err := reservation.ParseReleaseReason(req.Reason)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	released, err := h.commands.Release(c.Request.Context(), id, reason)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.ReleaseResponse{Released: released})
}

// @Summary Complete reservation
// @Description Commit a reservation to an order and decrement stock. Repeating the call with the same order id succeeds without a second decrement.
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CompleteRequest true "Order"
// @Success 200 {object} resdto.CompleteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	completed, err := h.commands.Complete(c.Request.Context(), id, req.OrderID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CompleteResponse{Completed: completed})
}

// @Summary Expire lapsed reservations
// @Description Entry point for an external scheduler. Moves every active reservation past its deadline to expired.
// @Tags maintenance
// @Produce json
// @Success 200 {object} resdto.CleanupResponse
// @Failure 503 {object} httperr.Response
// @Router /maintenance/cleanup-expired [post]
func (h *ReservationHandler) CleanupExpired(c *gin.Context) {
	n, err := h.commands.CleanupExpired(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CleanupResponse{Expired: n})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
