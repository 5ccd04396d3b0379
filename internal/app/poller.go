package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/strip/internal/state"
)

// maxBackoff caps the retry delay for short refresh intervals.
const maxBackoff = 30 * time.Second

// Refresher re-reads the latest comic and reports request health.
// *nav.Navigator satisfies it.
type Refresher interface {
	RefreshLatest(ctx context.Context) (bool, error)
	Status() state.Snapshot
}

// StartPoller launches a background goroutine that calls RefreshLatest every
// interval. The delay grows with the consecutive request failures reported by
// Status, so failed navigation slows polling as well. A non-positive interval
// disables polling. It returns immediately.
func StartPoller(ctx context.Context, r Refresher, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		return
	}
	log = log.With().Str("component", "poller").Logger()
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			raised, err := r.RefreshLatest(ctx)
			if err != nil && ctx.Err() != nil {
				return
			}
			failures := r.Status().ConsecutiveFailures
			switch {
			case err != nil:
				log.Warn().Err(err).Int("failures", failures).Msg("latest comic poll failed")
			case raised:
				log.Info().Msg("new comic published")
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles base per consecutive failure. The delay is capped
// at maxBackoff, or at eight times base when that is larger.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := maxBackoff
	if base*8 > limit {
		limit = base * 8
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= limit {
			return limit
		}
	}
	return backoff
}
