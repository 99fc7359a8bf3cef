package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/sitescout"
	"golang.org/x/time/rate"
)

var _ sitescout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles discovery fetches per domain using token
// buckets. Each domain gets its own limiter, so link-graph excursions to
// other hosts are not slowed down by the primary domain's budget.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second per domain with a burst of up to burst requests. A burst below 1
// is raised to 1.
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
