package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sitescout"
	"github.com/fwojciec/sitescout/crawl"
	"github.com/fwojciec/sitescout/goquery"
	ssslog "github.com/fwojciec/sitescout/slog"
)

// DiscoverCmd crawls a site, prioritizes the discovered URLs, and stores
// the run.
type DiscoverCmd struct {
	URL string `arg:"" required:"" help:"Seed URL to discover from"`

	MaxDepth     int           `default:"12" help:"Maximum link-hops from the homepage"`
	MaxURLs      int           `default:"50000" help:"Maximum URLs to discover"`
	BatchSize    int           `default:"100" help:"URLs fetched per batch"`
	Concurrency  int           `short:"c" default:"100" help:"Concurrent fetch limit within a batch"`
	Timeout      time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	UserAgent    string        `help:"User-Agent header for discovery requests"`
	Proxy        string        `env:"PROXY_URL" help:"Upstream HTTP proxy URL"`
	RequireProxy bool          `help:"Fail fast when no proxy is configured"`
	Headless     bool          `help:"Use a headless browser instead of plain HTTP"`
	RateLimit    float64       `default:"0" help:"Requests per second per domain (0 = unlimited)"`
	Select       int           `default:"30" help:"Number of URLs to keep after prioritization"`
	NoSitemap    bool          `help:"Skip sitemap.xml seeding"`
	NoSave       bool          `help:"Print results without storing the run"`
}

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	opts := sitescout.DefaultCrawlOptions()
	opts.MaxDepth = c.MaxDepth
	opts.MaxURLs = c.MaxURLs
	opts.BatchSize = c.BatchSize
	opts.MaxConcurrentRequests = c.Concurrency
	opts.RequestTimeout = c.Timeout
	opts.Proxy = c.Proxy
	opts.RequireProxy = c.RequireProxy
	if c.UserAgent != "" {
		opts.UserAgent = c.UserAgent
	}

	fetcher, err := deps.NewFetcher(c.Headless, c.Timeout, opts.UserAgent, c.Proxy)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	var limiter sitescout.DomainLimiter
	if c.RateLimit > 0 {
		limiter = crawl.NewDomainLimiter(c.RateLimit, 1)
	}

	crawler := &crawl.Crawler{
		Fetcher:     ssslog.NewLoggingFetcher(fetcher, deps.Logger),
		Extractor:   goquery.NewLinkExtractor(),
		RateLimiter: limiter,
		Progress: func(event crawl.ProgressEvent) {
			switch event.Type {
			case crawl.ProgressDepthStarted:
				fmt.Fprintf(deps.Stderr, "depth %d: %d batches\n", event.Depth, event.Batches)
			case crawl.ProgressBatchCompleted:
				fmt.Fprintf(deps.Stderr, "\r[depth %d, batch %d/%d] %d found, %d failed",
					event.Depth, event.Batch, event.Batches, event.Discovered, event.Failed)
			case crawl.ProgressTargetReached:
				fmt.Fprintf(deps.Stderr, "\nURL budget reached at depth %d\n", event.Depth)
			case crawl.ProgressFinished:
				fmt.Fprintf(deps.Stderr, "\n")
			}
		},
	}
	finder := ssslog.NewLoggingFinder(crawler, deps.Logger)

	result, err := finder.Discover(deps.Ctx, c.URL, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescout.ErrorMessage(err))
		return err
	}

	if !c.NoSitemap {
		c.mergeSitemapURLs(deps, result, opts)
	}

	selected := c.selectURLs(result)

	fmt.Fprintf(deps.Stdout, "Discovered %d URLs (depth %d, %d failed, %s)\n",
		result.TotalFound, result.MaxDepthReached, result.FailureCount, result.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(deps.Stdout, "Selected %d URLs:\n", len(selected))
	for _, sel := range selected {
		fmt.Fprintf(deps.Stdout, "  [%s] %s\n", sel.Bucket, sel.URL)
	}

	if c.NoSave {
		return nil
	}

	run := &sitescout.Run{
		InputURL: c.URL,
		Homepage: result.HomepageURL,
		Domain:   result.Domain,
		Result:   result,
		Selected: selected,
	}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored run %s\n", run.ID)
	return nil
}

// mergeSitemapURLs appends in-scope sitemap URLs the link-graph crawl
// missed. Sitemap failures never fail the run.
func (c *DiscoverCmd) mergeSitemapURLs(deps *Dependencies, result *sitescout.DiscoveryResult, opts sitescout.CrawlOptions) {
	scope := sitescout.NewScope(result.Domain, opts)
	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, result.HomepageURL, scope)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "sitemap discovery skipped: %v\n", err)
		return
	}

	seen := make(map[string]struct{}, len(result.URLs))
	for _, u := range result.URLs {
		seen[u] = struct{}{}
	}
	added := 0
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		result.URLs = append(result.URLs, u)
		added++
	}
	result.TotalFound = len(result.URLs)
	if added > 0 {
		fmt.Fprintf(deps.Stderr, "sitemap added %d URLs\n", added)
	}
}

// selectURLs runs priority selection and records each pick's bucket.
func (c *DiscoverCmd) selectURLs(result *sitescout.DiscoveryResult) []sitescout.SelectedURL {
	patterns := sitescout.DefaultPriorityPatterns()
	brandTokens := sitescout.BrandTokens(result.HomepageURL)

	urls := sitescout.SelectURLs(result.URLs, c.Select, result.HomepageURL, patterns)
	selected := make([]sitescout.SelectedURL, 0, len(urls))
	for i, u := range urls {
		bucket, ok := sitescout.Classify(u, brandTokens, patterns)
		if !ok {
			continue
		}
		selected = append(selected, sitescout.SelectedURL{URL: u, Bucket: bucket, Position: i})
	}
	return selected
}
