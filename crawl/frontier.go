package crawl

import "github.com/fwojciec/sitescout/bloom"

// Frontier sizing for the per-depth candidate accumulator.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 50000
	// frontierFalsePositiveRate is the acceptable false positive rate for
	// duplicate suppression. A false positive drops a candidate that would
	// have been re-deduplicated at the next depth anyway.
	frontierFalsePositiveRate = 0.01
)

// Frontier accumulates next-depth candidate URLs in first-seen order,
// suppressing duplicates across batches with a Bloom filter. Exact
// deduplication against the visited sets happens separately at each depth
// boundary.
//
// Frontier is not safe for concurrent use; the orchestrator folds outcomes
// on a single goroutine.
type Frontier struct {
	seen *bloom.Filter
	urls []string
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
	}
}

// Push appends a candidate URL unless it was already pushed.
// Returns false for duplicates.
func (f *Frontier) Push(url string) bool {
	if f.seen.TestAndAdd(url) {
		return false
	}
	f.urls = append(f.urls, url)
	return true
}

// Len returns the number of accumulated candidates.
func (f *Frontier) Len() int {
	return len(f.urls)
}

// Drain returns the accumulated candidates in first-seen order, capped at
// limit entries, and empties the frontier. A negative limit is treated as
// zero.
func (f *Frontier) Drain(limit int) []string {
	urls := f.urls
	f.urls = nil
	if limit < 0 {
		limit = 0
	}
	if len(urls) > limit {
		urls = urls[:limit]
	}
	return urls
}
