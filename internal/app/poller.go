package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/karm/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// Pinger reports whether the answering service is reachable.
type Pinger interface {
	Ping(ctx context.Context) (string, error)
}

// calculateBackoff doubles the interval for each consecutive failure, capped
// at maxBackoff. An interval already above the cap is left as is.
func calculateBackoff(failures int, baseInterval time.Duration) time.Duration {
	if failures <= 0 {
		return baseInterval
	}
	ceiling := max(maxBackoff, baseInterval)
	backoff := baseInterval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= ceiling {
			return ceiling
		}
	}
	return backoff
}

// StartPoller launches a background goroutine that checks service health and
// records the result in the store. Consecutive failures back off
// exponentially. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, pinger Pinger, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	go func() {
		for {
			failures := refresh(ctx, store, pinger, logger)
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// refresh performs one health check and returns the consecutive failure count.
func refresh(ctx context.Context, store *state.Store, pinger Pinger, logger *slog.Logger) int {
	message, err := pinger.Ping(ctx)
	if ctx.Err() != nil {
		return 0
	}
	store.UpdateHealth(message, err)
	health := store.Snapshot().Health
	if err != nil {
		logger.Warn("health check failed",
			"error", err,
			"consecutive_failures", health.ConsecutiveFailures,
		)
	}
	return health.ConsecutiveFailures
}
