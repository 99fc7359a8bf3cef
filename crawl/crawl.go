// Package crawl provides the domain-scoped breadth-first discovery engine.
// It expands a site's link graph depth by depth under strict concurrency,
// depth, and URL-count limits, and owns the deduplication and visited-set
// bookkeeping for one crawl invocation.
package crawl

import (
	"context"
	"net/url"
	"sort"
	"time"

	"github.com/fwojciec/sitescout"
)

// Compile-time interface verification.
var _ sitescout.Finder = (*Crawler)(nil)

// Crawler orchestrates breadth-first URL discovery. Each Discover call
// constructs fresh crawl state; a Crawler may be reused across calls but a
// single call's state is never shared.
//
// All visited-set mutation happens on the Discover goroutine after a batch
// fully completes. Fetch workers only return outcomes, which keeps the
// depth and visited-set bookkeeping race-free without locking.
type Crawler struct {
	Fetcher   sitescout.Fetcher
	Extractor sitescout.LinkExtractor

	// RateLimiter, when set, throttles fetches per domain.
	RateLimiter sitescout.DomainLimiter

	// Progress, when set, receives events as the crawl proceeds.
	Progress ProgressFunc
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressDepthStarted ProgressType = iota
	ProgressBatchCompleted
	ProgressTargetReached
	ProgressFinished
)

// ProgressEvent reports progress during a discovery crawl.
type ProgressEvent struct {
	Type       ProgressType
	Depth      int
	Batch      int
	Batches    int
	Discovered int
	Failed     int
	NewLinks   int
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Discover runs a bounded breadth-first crawl from inputURL.
//
// The homepage (scheme://host of the seed) is pre-seeded as successful and
// fetched at depth 0. Each subsequent depth deduplicates the candidates
// discovered at the previous depth, partitions them into fixed-size
// batches, and fetches each batch with bounded concurrency. The crawl
// stops when the URL budget is reached, the frontier is exhausted, or the
// depth limit is hit. A canceled context stops the crawl at the next batch
// boundary and returns the partial result.
func (c *Crawler) Discover(ctx context.Context, inputURL string, opts sitescout.CrawlOptions) (*sitescout.DiscoveryResult, error) {
	if opts.RequireProxy && opts.Proxy == "" {
		return nil, sitescout.Errorf(sitescout.EINVALID, "proxy is required but not configured")
	}
	normalizeOptions(&opts)

	seedURL := sitescout.NormalizeSeedURL(inputURL)
	homepage, err := sitescout.HomepageURL(seedURL)
	if err != nil {
		return nil, err
	}
	parsed, err := url.Parse(homepage)
	if err != nil {
		return nil, sitescout.Errorf(sitescout.EINVALID, "invalid homepage URL %q: %v", homepage, err)
	}
	domain := parsed.Host

	gate := &Gate{
		Fetcher:   c.Fetcher,
		Extractor: c.Extractor,
		Scope:     sitescout.NewScope(domain, opts),
		Limiter:   c.RateLimiter,
	}

	start := time.Now()

	// Crawl state, owned exclusively by this invocation. A URL enters
	// exactly one of the two sets, exactly once.
	successful := map[string]struct{}{homepage: {}}
	failed := make(map[string]struct{})
	maxDepthReached := 0

	var nextCandidates []string

depthLoop:
	for depth := 0; depth <= opts.MaxDepth; depth++ {
		var toVisit []string
		if depth == 0 {
			toVisit = []string{homepage}
		} else {
			toVisit = Deduplicate(nextCandidates, visitedSet(successful, failed))
			if len(toVisit) == 0 {
				break
			}
		}

		batches := partition(toVisit, opts.BatchSize)
		c.emit(ProgressEvent{
			Type:       ProgressDepthStarted,
			Depth:      depth,
			Batches:    len(batches),
			Discovered: len(successful),
		})

		frontier := NewFrontier()
		targetReached := false

		for i, batch := range batches {
			// Natural, already-serialized cancellation checkpoint.
			if ctx.Err() != nil {
				maxDepthReached = depth
				break depthLoop
			}

			outcomes := gate.FetchBatch(ctx, batch, opts.MaxConcurrentRequests)

			newLinks := 0
			for _, outcome := range outcomes {
				newLinks += c.fold(outcome, successful, failed, frontier)
			}

			c.emit(ProgressEvent{
				Type:       ProgressBatchCompleted,
				Depth:      depth,
				Batch:      i + 1,
				Batches:    len(batches),
				Discovered: len(successful),
				Failed:     len(failed),
				NewLinks:   newLinks,
			})

			if len(successful) >= opts.MaxURLs {
				targetReached = true
				break
			}
		}

		maxDepthReached = depth

		if targetReached {
			c.emit(ProgressEvent{
				Type:       ProgressTargetReached,
				Depth:      depth,
				Discovered: len(successful),
			})
			break
		}

		nextCandidates = frontier.Drain(opts.MaxURLs - len(successful))
	}

	result := &sitescout.DiscoveryResult{
		InputURL:        inputURL,
		HomepageURL:     homepage,
		Domain:          domain,
		URLs:            sortedKeys(successful),
		TotalFound:      len(successful),
		MaxDepthReached: maxDepthReached,
		SuccessCount:    len(successful),
		FailureCount:    len(failed),
		Elapsed:         time.Since(start),
	}

	c.emit(ProgressEvent{
		Type:       ProgressFinished,
		Depth:      maxDepthReached,
		Discovered: result.TotalFound,
		Failed:     result.FailureCount,
	})

	return result, nil
}

// fold applies one fetch outcome to the visited sets and collects its new
// links into the frontier. Returns the number of links accepted.
//
// The homepage is pre-seeded as successful before any fetch, so a URL
// already in the successful set is never demoted to failed; the sets stay
// disjoint.
func (c *Crawler) fold(outcome sitescout.FetchOutcome, successful, failed map[string]struct{}, frontier *Frontier) int {
	if outcome.Status != sitescout.FetchSuccess {
		if _, ok := successful[outcome.URL]; !ok {
			failed[outcome.URL] = struct{}{}
		}
		return 0
	}

	if _, ok := failed[outcome.URL]; !ok {
		successful[outcome.URL] = struct{}{}
	}

	accepted := 0
	for _, link := range outcome.NewLinks {
		if _, ok := successful[link]; ok {
			continue
		}
		if _, ok := failed[link]; ok {
			continue
		}
		if frontier.Push(link) {
			accepted++
		}
	}
	return accepted
}

func (c *Crawler) emit(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

// normalizeOptions fills zero-valued knobs with their defaults so a
// partially populated CrawlOptions still crawls sensibly.
func normalizeOptions(opts *sitescout.CrawlOptions) {
	if opts.MaxDepth < 0 {
		opts.MaxDepth = 0
	}
	if opts.MaxURLs <= 0 {
		opts.MaxURLs = sitescout.DefaultMaxURLs
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = sitescout.DefaultBatchSize
	}
	if opts.MaxConcurrentRequests <= 0 {
		opts.MaxConcurrentRequests = sitescout.DefaultMaxConcurrentRequests
	}
}

// partition splits urls into fixed-size batches, preserving order.
func partition(urls []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(urls); start += size {
		end := start + size
		if end > len(urls) {
			end = len(urls)
		}
		batches = append(batches, urls[start:end])
	}
	return batches
}

// visitedSet merges the success and failure sets into the seen set the
// deduplicator checks against.
func visitedSet(successful, failed map[string]struct{}) map[string]struct{} {
	seen := make(map[string]struct{}, len(successful)+len(failed))
	for u := range successful {
		seen[u] = struct{}{}
	}
	for u := range failed {
		seen[u] = struct{}{}
	}
	return seen
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
