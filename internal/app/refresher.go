package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/blogfront/internal/page"
)

// maxBackoff caps the delay between refreshes after repeated failures.
const maxBackoff = 30 * time.Second

// reloader is the part of page.Controller the refresher drives.
type reloader interface {
	Current() page.Route
	Navigate(ctx context.Context, route page.Route) error
}

// StartRefresher launches a background goroutine that reloads the current home
// or list view every interval. Consecutive failures back off exponentially up to
// maxBackoff. A non-positive interval disables it. It returns immediately.
func StartRefresher(ctx context.Context, ctrl reloader, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		return
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			failures = refresh(ctx, ctrl, failures, log)
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// refresh reloads once and returns the updated failure count. Post pages are
// left alone so a reader is not interrupted.
func refresh(ctx context.Context, ctrl reloader, failures int, log zerolog.Logger) int {
	route := ctrl.Current()
	if route.View != page.ViewHome && route.View != page.ViewList {
		return failures
	}
	err := ctrl.Navigate(ctx, route)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, page.ErrSuperseded), ctx.Err() != nil:
		return failures
	default:
		failures++
		log.Warn().Err(err).Int("failures", failures).Str("view", route.View.String()).Msg("refresh failed")
		return failures
	}
}

// calculateBackoff returns base doubled once per failure, capped at maxBackoff.
// A base above maxBackoff is never shortened.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	limit := max(maxBackoff, base)
	d := base
	for i := 0; i < failures && d < limit; i++ {
		d *= 2
	}
	return min(d, limit)
}
