package api

import (
	"net/http"

	"inventory-reservation/internal/domain/reservation"
	reqdto "inventory-reservation/internal/handler/dto/request"
	resdto "inventory-reservation/internal/handler/dto/response"
	"inventory-reservation/internal/handler/httperr"
	"inventory-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	queries queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{queries: q}
}

// @Summary Get availability
// @Description Stock that can still be reserved for one product or variant
// @Tags availability
// @Produce json
// @Param product_id query string false "Product ID"
// @Param variant_id query string false "Variant ID"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	productID, err := optionalUUIDQuery(c, "product_id")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product_id", nil)
		return
	}
	variantID, err := optionalUUIDQuery(c, "variant_id")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid variant_id", nil)
		return
	}

	target, err := reservation.NewTarget(productID, variantID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	view, err := h.queries.GetAvailability(c.Request.Context(), target)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	resp, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Check cart availability
// @Description Read-only pre-flight for a cart. Nothing is held.
// @Tags availability
// @Accept json
// @Produce json
// @Param request body reqdto.CheckAvailabilityRequest true "Line items"
// @Success 200 {object} resdto.AvailabilityReportResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability/check [post]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req reqdto.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	items, err := reqdto.LineItemsToDomain(req.Items)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	report, err := h.queries.CheckAvailability(c.Request.Context(), items)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	resp, err := resdto.FromAvailabilityReport(report)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func optionalUUIDQuery(c *gin.Context, key string) (*uuid.UUID, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
