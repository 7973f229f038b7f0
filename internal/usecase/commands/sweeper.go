package commands

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper calls CleanupExpired on a fixed interval until its context ends.
// It is an in-process stand-in for an external scheduler.
type Sweeper struct {
	reservations ReservationCommands
	interval     time.Duration
	logger       *slog.Logger
}

func NewSweeper(reservations ReservationCommands, interval time.Duration, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		reservations: reservations,
		interval:     interval,
		logger:       logger,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "expiry sweeper started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "expiry sweeper stopped")
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	n, err := s.reservations.CleanupExpired(ctx)
	if err != nil {
		// The next tick retries; a failed pass leaves rows active, never half-expired.
		s.logger.WarnContext(ctx, "expiry sweep failed", "error", err, "expired", n)
		return
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expiry sweep finished", "expired", n)
	}
}
