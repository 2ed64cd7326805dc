package crawl

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/sigstub"
	"golang.org/x/time/rate"
)

var _ sigstub.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets, so
// concurrent page fetches stay polite to the manual's host.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per domain, with the given burst (at least 1).
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	if burst < 1 {
		burst = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// waitURL waits on the limiter for the host of rawURL. A nil limiter never
// blocks.
func waitURL(ctx context.Context, limiter sigstub.DomainLimiter, rawURL string) error {
	if limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return sigstub.Errorf(sigstub.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return limiter.Wait(ctx, u.Host)
}
