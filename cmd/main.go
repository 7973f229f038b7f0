package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-reservation/cmd/bootstrap"
	"inventory-reservation/internal/pkg/config"
	"inventory-reservation/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func init() {
	// Never expose debug output because of a missing setting.
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

func main() {
	root := &cobra.Command{
		Use:          "inventory-reservation",
		Short:        "Inventory reservation service",
		Long:         "Holds stock for checkouts, commits it to orders, and expires abandoned holds.",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newSweepCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServer()
		},
	}
}

func newSweepCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Expire every lapsed reservation once and exit",
		Long:  "One-shot expiry pass meant to be run by cron or another external scheduler.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return runSweep(ctx)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Upper bound for the whole sweep (0 for none)")
	return cmd
}

// @title           inventory-reservation
// @version         1.0
// @description     Stock reservation and consistency engine for concurrent checkouts.

// @BasePath  /api
// @schemes http https
func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			logger.Info("starting server", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")
			return srv.Shutdown(ctx)
		},
	})
}

func runServer() error {
	app := fx.New(
		bootstrap.Module,
		fx.Provide(
			func() *gin.Engine {
				return gin.New()
			},
		),
		fx.Invoke(
			startServer,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start application", "error", err)
		return err
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop application", "error", err)
	}

	slog.Info("application stopped")
	return nil
}

func runSweep(ctx context.Context) error {
	var (
		reservations commands.ReservationCommands
		logger       *slog.Logger
	)
	app := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Populate(&reservations, &logger),
	)
	if err := app.Err(); err != nil {
		slog.Error("failed to build application", "error", err)
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			logger.Error("failed to stop application", "error", err)
		}
	}()

	n, err := reservations.CleanupExpired(ctx)
	if err != nil {
		logger.Error("sweep failed", "error", err, "expired", n)
		return err
	}
	logger.Info("sweep finished", "expired", n)
	return nil
}
