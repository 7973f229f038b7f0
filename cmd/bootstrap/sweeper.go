package bootstrap

import (
	"context"
	"log/slog"

	"inventory-reservation/internal/pkg/config"
	"inventory-reservation/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

// StartSweeper runs the expiry sweeper for the lifetime of the app when
// SWEEPER_INTERVAL is set.
func StartSweeper(lc fx.Lifecycle, cfg config.Config, reservations commands.ReservationCommands, logger *slog.Logger) {
	if cfg.Sweeper.Interval <= 0 {
		logger.Info("in-process expiry sweeper disabled")
		return
	}

	sweeper := commands.NewSweeper(reservations, cfg.Sweeper.Interval, logger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				sweeper.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
