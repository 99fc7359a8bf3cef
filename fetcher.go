package sitescout

import "context"

// Fetcher retrieves raw HTML from URLs. The http implementation issues
// plain GET requests; the rod implementation drives a headless browser for
// sites that only render links client-side. Which one a crawl uses is an
// explicit configuration choice.
type Fetcher interface {
	// Fetch retrieves the HTML body of url. A non-success HTTP status is
	// reported as an EFAILED coded error; transport and timeout problems
	// surface as ordinary errors.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases underlying resources (connections, browser).
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
