package sitescout

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Crawl option defaults. The concurrency default matches the connection pool
// limit of the discovery HTTP client; raising it does not make sites answer
// faster.
const (
	DefaultMaxDepth              = 12
	DefaultMaxURLs               = 50000
	DefaultBatchSize             = 100
	DefaultMaxConcurrentRequests = 100
	DefaultRequestTimeout        = 30 * time.Second
	DefaultUserAgent             = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// CrawlOptions is the immutable configuration for a single discovery crawl.
// It is constructed once per crawl and consumed read-only by all components.
type CrawlOptions struct {
	// MaxDepth is the number of link-hops from the homepage to explore.
	// The homepage is depth 0.
	MaxDepth int

	// MaxURLs is the hard budget for successfully discovered URLs.
	MaxURLs int

	// BatchSize is the number of URLs fetched per batch within a depth.
	BatchSize int

	// MaxConcurrentRequests bounds in-flight fetches inside a batch.
	MaxConcurrentRequests int

	// RequestTimeout bounds each individual fetch.
	RequestTimeout time.Duration

	// Proxy is an optional upstream HTTP proxy URL.
	Proxy string

	// RequireProxy makes the crawl fail fast before issuing any request
	// when no proxy is configured.
	RequireProxy bool

	// UserAgent is sent with every discovery request.
	UserAgent string

	// ExcludedExtensions lists lowercased path suffixes that are never
	// crawled (binary/media/archive formats).
	ExcludedExtensions []string

	// RequireSameDomain restricts discovery to the seed URL's host.
	RequireSameDomain bool
}

// DefaultCrawlOptions returns CrawlOptions populated with the standard
// defaults.
func DefaultCrawlOptions() CrawlOptions {
	return CrawlOptions{
		MaxDepth:              DefaultMaxDepth,
		MaxURLs:               DefaultMaxURLs,
		BatchSize:             DefaultBatchSize,
		MaxConcurrentRequests: DefaultMaxConcurrentRequests,
		RequestTimeout:        DefaultRequestTimeout,
		UserAgent:             DefaultUserAgent,
		ExcludedExtensions:    DefaultExcludedExtensions(),
		RequireSameDomain:     true,
	}
}

// DefaultExcludedExtensions returns the path suffixes excluded from
// discovery by default: images, media, fonts, archives, documents, and
// executable binary formats, plus stylesheet/script assets reachable
// through link elements.
func DefaultExcludedExtensions() []string {
	return []string{
		".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico", ".bmp", ".tiff",
		".mp3", ".mp4", ".avi", ".mov", ".wmv", ".flv", ".wav", ".mkv", ".webm",
		".woff", ".woff2", ".ttf", ".eot", ".otf",
		".zip", ".tar", ".gz", ".rar", ".7z", ".bz2",
		".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".csv",
		".exe", ".dmg", ".iso", ".bin", ".apk", ".msi",
		".css", ".js",
	}
}

// FetchStatus classifies the outcome of a single discovery fetch.
type FetchStatus int

// Fetch outcome statuses. A failed fetch got an HTTP answer with a
// non-success status; an errored fetch never got a usable answer
// (transport, timeout, connection).
const (
	FetchSuccess FetchStatus = iota
	FetchFailed
	FetchErrored
)

// String returns the status name.
func (s FetchStatus) String() string {
	switch s {
	case FetchSuccess:
		return "success"
	case FetchFailed:
		return "failed"
	case FetchErrored:
		return "error"
	default:
		return "unknown"
	}
}

// FetchOutcome is the transient, per-URL result of one discovery fetch.
// It is folded into crawl state immediately and never persisted.
type FetchOutcome struct {
	URL      string
	Status   FetchStatus
	NewLinks []string
	Err      string
}

// DiscoveryResult is the final output of a discovery crawl.
type DiscoveryResult struct {
	InputURL        string        `json:"inputUrl"`
	HomepageURL     string        `json:"homepageUrl"`
	Domain          string        `json:"domain"`
	URLs            []string      `json:"urls"`
	TotalFound      int           `json:"totalFound"`
	MaxDepthReached int           `json:"maxDepthReached"`
	SuccessCount    int           `json:"successCount"`
	FailureCount    int           `json:"failureCount"`
	Elapsed         time.Duration `json:"elapsed"`
}

// Finder discovers the in-scope URL set of a site starting from a seed URL.
type Finder interface {
	// Discover runs a bounded breadth-first crawl from inputURL and
	// returns the discovered URL set. Partial results are valid results:
	// Discover returns an error only when the configuration prevents the
	// crawl from starting at all.
	Discover(ctx context.Context, inputURL string, opts CrawlOptions) (*DiscoveryResult, error)
}

// NormalizeSeedURL prepends an https scheme when the input has none.
func NormalizeSeedURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// HomepageURL reduces a URL to its scheme://host root. The input must
// already carry a scheme.
func HomepageURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid seed URL %q: %v", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "seed URL %q has no scheme or host", raw)
	}
	return u.Scheme + "://" + u.Host, nil
}
