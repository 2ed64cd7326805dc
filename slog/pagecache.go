package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sigstub"
)

// Ensure LoggingPageCache implements sigstub.PageCache.
var _ sigstub.PageCache = (*LoggingPageCache)(nil)

// LoggingPageCache wraps a PageCache with logging.
type LoggingPageCache struct {
	next   sigstub.PageCache
	logger *slog.Logger
}

// NewLoggingPageCache creates a new LoggingPageCache.
func NewLoggingPageCache(next sigstub.PageCache, logger *slog.Logger) *LoggingPageCache {
	return &LoggingPageCache{next: next, logger: logger}
}

func (c *LoggingPageCache) Exists(ctx context.Context) (ok bool, err error) {
	defer func() {
		c.logger.Debug("page cache lookup", "hit", ok, "err", err)
	}()
	return c.next.Exists(ctx)
}

func (c *LoggingPageCache) Load(ctx context.Context) (pages []*sigstub.Page, err error) {
	defer func(begin time.Time) {
		c.logger.Info("page cache load",
			"pages", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Load(ctx)
}

func (c *LoggingPageCache) Store(ctx context.Context, pages []*sigstub.Page) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("page cache store",
			"pages", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Store(ctx, pages)
}
