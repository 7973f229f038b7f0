package api

import (
	"net/http"

	reqdto "inventory-reservation/internal/handler/dto/request"
	resdto "inventory-reservation/internal/handler/dto/response"
	"inventory-reservation/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cart commands.CartCommands
}

func NewCartHandler(cart commands.CartCommands) *CartHandler {
	return &CartHandler{cart: cart}
}

// @Summary Reserve a cart
// @Description Reserve every line item or none of them
// @Tags carts
// @Accept json
// @Produce json
// @Param request body reqdto.ReserveCartRequest true "Cart"
// @Success 201 {object} resdto.CartReserveResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /carts/reserve [post]
func (h *CartHandler) Reserve(c *gin.Context) {
	var req reqdto.ReserveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	items, err := reqdto.LineItemsToDomain(req.Items)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	holder, err := req.Holder()
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	ttl, err := req.TTL()
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	ids, err := h.cart.ReserveCart(c.Request.Context(), items, holder, ttl)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CartReserveResponse{ReservationIDs: ids})
}

// @Summary Complete a cart
// @Description Complete each reservation with the same order id, stopping at the first failure
// @Tags carts
// @Accept json
// @Produce json
// @Param request body reqdto.CompleteCartRequest true "Reservations and order"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /carts/complete [post]
func (h *CartHandler) Complete(c *gin.Context) {
	var req reqdto.CompleteCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	if err := h.cart.CompleteCart(c.Request.Context(), req.ReservationIDs, req.OrderID); err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel a cart
// @Description Release every reservation of an abandoned checkout
// @Tags carts
// @Accept json
// @Produce json
// @Param request body reqdto.CancelCartRequest true "Reservations"
// @Success 200 {object} resdto.CartCancelResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /carts/cancel [post]
func (h *CartHandler) Cancel(c *gin.Context) {
	var req reqdto.CancelCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	n, err := h.cart.CancelCart(c.Request.Context(), req.ReservationIDs)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CartCancelResponse{Released: n})
}
