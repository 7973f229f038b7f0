package components

import (
	"inventory-reservation/internal/handler"
	"inventory-reservation/internal/handler/api"
	"inventory-reservation/internal/handler/middleware"
	"inventory-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewCartHandler,
		api.NewAvailabilityHandler,
	),
	fx.Invoke(RegisterRoutes),
)

func RegisterRoutes(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	gatherer prometheus.Gatherer,
	reservations *api.ReservationHandler,
	cart *api.CartHandler,
	availability *api.AvailabilityHandler,
) {
	handler.NewRouter(engine, cfg, logger, gatherer, handler.Handlers{
		Reservation:  reservations,
		Cart:         cart,
		Availability: availability,
	})
}
