package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sigstub"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches url, retrying after each of delays on failure
// (len(delays)+1 attempts in total). Each retry is logged at debug level
// when logger is non-nil. Manual pages are static, so only the network
// layer is ever retried.
func FetchWithRetry(ctx context.Context, fetcher sigstub.Fetcher, url string, delays []time.Duration, logger *slog.Logger) (string, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= len(delays) {
			return "", lastErr
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if logger != nil {
			logger.Debug("retry fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
}
