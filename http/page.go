package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitescout"
	"github.com/fwojciec/sitescout/crawl"
)

// Ensure PageFetcher implements sitescout.PageFetcher at compile time.
var _ sitescout.PageFetcher = (*PageFetcher)(nil)

// PageFetcher retrieves page content for the downstream pipeline: fetch
// with retry, extract the main content, convert it to markdown, and hash
// the result. Unlike the discovery Fetcher it follows redirects and falls
// back to a legacy-TLS client for servers that still require unsafe
// renegotiation.
type PageFetcher struct {
	client       *http.Client
	legacyClient *http.Client
	extractor    sitescout.ContentExtractor
	converter    sitescout.Converter
	retryDelays  []time.Duration
	userAgent    string
}

// PageOption configures a PageFetcher.
type PageOption func(*PageFetcher)

// WithPageRetryDelays overrides the backoff delays between attempts.
func WithPageRetryDelays(delays []time.Duration) PageOption {
	return func(f *PageFetcher) {
		f.retryDelays = delays
	}
}

// WithPageUserAgent sets the User-Agent header for content fetches.
func WithPageUserAgent(ua string) PageOption {
	return func(f *PageFetcher) {
		f.userAgent = ua
	}
}

// NewPageFetcher creates a PageFetcher. proxyURL may be empty; requireProxy
// makes construction fail fast when it is (a deployment that mandates a
// proxy must not issue a single direct request).
func NewPageFetcher(extractor sitescout.ContentExtractor, converter sitescout.Converter, proxyURL string, requireProxy bool, opts ...PageOption) (*PageFetcher, error) {
	if requireProxy && proxyURL == "" {
		return nil, sitescout.Errorf(sitescout.EINVALID, "content fetching requires a proxy")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		proxy, err := url.Parse(proxyURL)
		if err != nil {
			return nil, sitescout.Errorf(sitescout.EINVALID, "invalid proxy URL %q: %v", proxyURL, err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	// Some aging servers refuse modern handshakes unless the client
	// permits renegotiation; keep a second client for that fallback.
	legacyTransport := transport.Clone()
	legacyTransport.TLSClientConfig = &tls.Config{
		Renegotiation: tls.RenegotiateOnceAsClient,
		MinVersion:    tls.VersionTLS10,
	}

	f := &PageFetcher{
		client:       &http.Client{Timeout: 60 * time.Second, Transport: transport},
		legacyClient: &http.Client{Timeout: 60 * time.Second, Transport: legacyTransport},
		extractor:    extractor,
		converter:    converter,
		retryDelays:  crawl.DefaultRetryDelays(),
		userAgent:    sitescout.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FetchPage retrieves a URL and returns its content as markdown plus the
// raw HTML it was derived from.
func (f *PageFetcher) FetchPage(ctx context.Context, rawURL string) (*sitescout.PageDoc, error) {
	var status int
	fetch := func(ctx context.Context, u string) (string, error) {
		html, code, err := f.get(ctx, u)
		status = code
		return html, err
	}

	html, err := crawl.FetchWithRetryDelays(ctx, rawURL, fetch, f.retryDelays)
	if err != nil {
		return nil, err
	}

	doc := &sitescout.PageDoc{
		URL:       rawURL,
		Status:    status,
		HTML:      html,
		FetchedAt: time.Now().UTC(),
	}

	contentHTML := html
	if f.extractor != nil {
		if extracted, err := f.extractor.Extract(html); err == nil {
			doc.Title = extracted.Title
			if extracted.ContentHTML != "" {
				contentHTML = extracted.ContentHTML
			}
		}
	}

	markdown, err := f.converter.Convert(contentHTML)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", rawURL, err)
	}

	doc.Markdown = markdown
	doc.ContentHash = ContentHash(markdown)
	return doc, nil
}

// get issues a single GET, falling back to the legacy-TLS client when the
// handshake fails on a renegotiation error.
func (f *PageFetcher) get(ctx context.Context, rawURL string) (string, int, error) {
	html, status, err := f.doGet(ctx, f.client, rawURL)
	if err != nil && isLegacyTLSError(err) {
		html, status, err = f.doGet(ctx, f.legacyClient, rawURL)
	}
	return html, status, err
}

func (f *PageFetcher) doGet(ctx context.Context, client *http.Client, rawURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", resp.StatusCode, sitescout.Errorf(sitescout.EFAILED, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(body), resp.StatusCode, nil
}

// isLegacyTLSError reports whether an error looks like a handshake
// rejected for missing legacy renegotiation support.
func isLegacyTLSError(err error) bool {
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "legacy") || strings.Contains(msg, "renegotiation") || strings.Contains(msg, "handshake failure")
}

// ContentHash computes a stable hash of page content using xxhash.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
