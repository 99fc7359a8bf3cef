package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/fwojciec/sitescout"
	"golang.org/x/sync/semaphore"
)

// Gate fetches a batch of URLs with bounded concurrency and returns one
// outcome per URL. It is a counting admission gate, not a fixed worker
// pool: every URL in the batch is submitted up front, at most limit fetches
// run at once, and a completed fetch immediately admits the next queued
// one.
//
// Workers write only to their own slot of the outcome slice; they never
// touch shared crawl state. A single URL's failure, or even a panic inside
// its fetch, never aborts the batch.
type Gate struct {
	Fetcher   sitescout.Fetcher
	Extractor sitescout.LinkExtractor
	Scope     sitescout.Scope

	// Limiter, when set, throttles fetches per domain.
	Limiter sitescout.DomainLimiter
}

// FetchBatch fetches every URL in the batch, bounding in-flight fetches to
// limit. Outcomes are returned in input order.
func (g *Gate) FetchBatch(ctx context.Context, urls []string, limit int) []sitescout.FetchOutcome {
	if limit <= 0 {
		limit = 1
	}

	sem := semaphore.NewWeighted(int64(limit))
	outcomes := make([]sitescout.FetchOutcome, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		if err := sem.Acquire(ctx, 1); err != nil {
			outcomes[i] = sitescout.FetchOutcome{
				URL:    u,
				Status: sitescout.FetchErrored,
				Err:    err.Error(),
			}
			continue
		}

		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			defer sem.Release(1)
			outcomes[i] = g.fetchOne(ctx, u)
		}(i, u)
	}
	wg.Wait()

	return outcomes
}

// fetchOne fetches a single URL and extracts its in-scope links.
func (g *Gate) fetchOne(ctx context.Context, rawURL string) (outcome sitescout.FetchOutcome) {
	outcome = sitescout.FetchOutcome{URL: rawURL}

	// Isolate worker failures at the worker boundary.
	defer func() {
		if r := recover(); r != nil {
			outcome.Status = sitescout.FetchErrored
			outcome.NewLinks = nil
			outcome.Err = fmt.Sprintf("panic: %v", r)
		}
	}()

	if g.Limiter != nil {
		if u, err := url.Parse(rawURL); err == nil {
			if err := g.Limiter.Wait(ctx, u.Host); err != nil {
				outcome.Status = sitescout.FetchErrored
				outcome.Err = err.Error()
				return outcome
			}
		}
	}

	html, err := g.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if sitescout.ErrorCode(err) == sitescout.EFAILED {
			outcome.Status = sitescout.FetchFailed
		} else {
			outcome.Status = sitescout.FetchErrored
		}
		outcome.Err = err.Error()
		return outcome
	}

	outcome.Status = sitescout.FetchSuccess

	// A malformed document yields zero new links, not an error.
	links, err := g.Extractor.Extract(html, rawURL)
	if err != nil {
		return outcome
	}

	for _, link := range links {
		if g.Scope.Allow(link) {
			outcome.NewLinks = append(outcome.NewLinks, link)
		}
	}
	return outcome
}
