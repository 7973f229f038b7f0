package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"inventory-reservation/internal/handler/api"
	"inventory-reservation/internal/handler/middleware"
	"inventory-reservation/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservation  *api.ReservationHandler
	Cart         *api.CartHandler
	Availability *api.AvailabilityHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, gatherer prometheus.Gatherer, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, gatherer, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, gatherer prometheus.Gatherer, h Handlers) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup.Group("/availability"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Availability.Get},
			{Method: http.MethodPost, Path: "/check", Handler: h.Availability.Check},
		})

		addRoutes(apiGroup.Group("/reservations"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Reservation.Reserve},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
			{Method: http.MethodPost, Path: "/:id/release", Handler: h.Reservation.Release},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Reservation.Complete},
		})

		addRoutes(apiGroup.Group("/carts"), []route{
			{Method: http.MethodPost, Path: "/reserve", Handler: h.Cart.Reserve},
			{Method: http.MethodPost, Path: "/complete", Handler: h.Cart.Complete},
			{Method: http.MethodPost, Path: "/cancel", Handler: h.Cart.Cancel},
		})

		addRoutes(apiGroup.Group("/maintenance"), []route{
			{Method: http.MethodPost, Path: "/cleanup-expired", Handler: h.Reservation.CleanupExpired},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
