// Package http provides HTTP-based implementations of the sitescout fetch
// interfaces: a lightweight discovery fetcher, a retrying content page
// fetcher, and a sitemap URL source.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/sitescout"
)

// DefaultFetchTimeout is the default timeout for discovery requests.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements sitescout.Fetcher at compile time.
var _ sitescout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw HTML using plain HTTP GET requests. It does not
// execute JavaScript; use the rod fetcher for sites that render links
// client-side.
//
// The underlying client and its connection pool are shared read-only
// configuration across all fetch workers in a crawl; nothing mutates the
// client after construction.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	proxyURL  string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithProxy routes all requests through the given upstream proxy URL.
func WithProxy(proxyURL string) Option {
	return func(f *Fetcher) {
		f.proxyURL = proxyURL
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
// Returns an error if the configured proxy URL cannot be parsed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: sitescout.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if f.proxyURL != "" {
		proxy, err := url.Parse(f.proxyURL)
		if err != nil {
			return nil, sitescout.Errorf(sitescout.EINVALID, "invalid proxy URL %q: %v", f.proxyURL, err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f, nil
}

// Fetch retrieves the HTML body of the given URL. A non-success status is
// reported as an EFAILED coded error so callers can tell a server that
// answered "no" apart from one that never answered.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", sitescout.Errorf(sitescout.EFAILED, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
