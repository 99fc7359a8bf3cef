package crawl_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sitescout"
	"github.com/fwojciec/sitescout/crawl"
	"github.com/fwojciec/sitescout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// siteCrawler builds a Crawler over a static link graph. Missing URLs
// answer with an EFAILED error, like a 404.
func siteCrawler(links map[string][]string) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if _, ok := links[url]; !ok {
					return "", sitescout.Errorf(sitescout.EFAILED, "HTTP 404 for %s", url)
				}
				return url, nil
			},
		},
		Extractor: &mock.LinkExtractor{
			ExtractFn: func(html, baseURL string) ([]string, error) {
				return links[baseURL], nil
			},
		},
	}
}

func defaultOpts() sitescout.CrawlOptions {
	opts := sitescout.DefaultCrawlOptions()
	opts.MaxDepth = 5
	opts.MaxURLs = 100
	opts.BatchSize = 2
	opts.MaxConcurrentRequests = 2
	return opts
}

func TestCrawler_Discover(t *testing.T) {
	t.Parallel()

	t.Run("walks the link graph breadth-first", func(t *testing.T) {
		t.Parallel()

		crawler := siteCrawler(map[string][]string{
			"https://example.com":       {"https://example.com/about", "https://example.com/faq"},
			"https://example.com/about": {"https://example.com/team"},
			"https://example.com/faq":   {},
			"https://example.com/team":  {},
		})

		result, err := crawler.Discover(context.Background(), "example.com", defaultOpts())
		require.NoError(t, err)

		assert.Equal(t, "example.com", result.InputURL)
		assert.Equal(t, "https://example.com", result.HomepageURL)
		assert.Equal(t, "example.com", result.Domain)
		assert.ElementsMatch(t, []string{
			"https://example.com",
			"https://example.com/about",
			"https://example.com/faq",
			"https://example.com/team",
		}, result.URLs)
		assert.Equal(t, 4, result.TotalFound)
		assert.Equal(t, 4, result.SuccessCount)
		assert.Equal(t, 0, result.FailureCount)
		assert.Equal(t, 2, result.MaxDepthReached)
	})

	t.Run("maxDepth zero fetches only the homepage", func(t *testing.T) {
		t.Parallel()

		crawler := siteCrawler(map[string][]string{
			"https://example.com": {"https://example.com/about"},
		})

		opts := defaultOpts()
		opts.MaxDepth = 0
		result, err := crawler.Discover(context.Background(), "example.com", opts)
		require.NoError(t, err)

		assert.Equal(t, []string{"https://example.com"}, result.URLs)
		assert.Equal(t, 0, result.MaxDepthReached)
	})

	t.Run("never overshoots the URL budget", func(t *testing.T) {
		t.Parallel()

		// The homepage links to far more pages than the budget allows.
		links := map[string][]string{"https://example.com": {}}
		for i := 0; i < 50; i++ {
			u := "https://example.com/page" + string(rune('a'+i%26)) + string(rune('a'+i/26))
			links["https://example.com"] = append(links["https://example.com"], u)
			links[u] = nil
		}

		opts := defaultOpts()
		opts.MaxURLs = 7
		opts.BatchSize = 3

		crawler := siteCrawler(links)
		result, err := crawler.Discover(context.Background(), "example.com", opts)
		require.NoError(t, err)

		assert.Equal(t, opts.MaxURLs, result.TotalFound,
			"frontier truncation keeps the discovered set at the budget")
	})

	t.Run("keeps success and failure sets disjoint", func(t *testing.T) {
		t.Parallel()

		crawler := siteCrawler(map[string][]string{
			"https://example.com": {
				"https://example.com/ok",
				"https://example.com/broken",
			},
			"https://example.com/ok": {"https://example.com/broken"},
		})

		result, err := crawler.Discover(context.Background(), "example.com", defaultOpts())
		require.NoError(t, err)

		assert.NotContains(t, result.URLs, "https://example.com/broken")
		assert.Equal(t, 1, result.FailureCount)
		assert.Equal(t, result.SuccessCount, len(result.URLs))
	})

	t.Run("homepage stays successful even when its fetch fails", func(t *testing.T) {
		t.Parallel()

		// Empty graph: every fetch including the homepage answers 404.
		crawler := siteCrawler(map[string][]string{})

		result, err := crawler.Discover(context.Background(), "example.com", defaultOpts())
		require.NoError(t, err)

		assert.Equal(t, []string{"https://example.com"}, result.URLs)
		assert.Equal(t, 0, result.FailureCount)
	})

	t.Run("collapses scheme duplicates across a depth", func(t *testing.T) {
		t.Parallel()

		crawler := siteCrawler(map[string][]string{
			"https://example.com": {
				"http://example.com/about",
				"https://example.com/about",
			},
			"https://example.com/about": {},
		})

		result, err := crawler.Discover(context.Background(), "example.com", defaultOpts())
		require.NoError(t, err)

		assert.Contains(t, result.URLs, "https://example.com/about")
		assert.NotContains(t, result.URLs, "http://example.com/about")
	})

	t.Run("fails fast when a required proxy is missing", func(t *testing.T) {
		t.Parallel()

		fetched := false
		crawler := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					fetched = true
					return "", nil
				},
			},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string) ([]string, error) { return nil, nil },
			},
		}

		opts := defaultOpts()
		opts.RequireProxy = true
		_, err := crawler.Discover(context.Background(), "example.com", opts)

		require.Error(t, err)
		assert.Equal(t, sitescout.EINVALID, sitescout.ErrorCode(err))
		assert.False(t, fetched, "no request may be issued without the proxy")
	})

	t.Run("rejects an unusable seed URL", func(t *testing.T) {
		t.Parallel()

		crawler := siteCrawler(nil)
		_, err := crawler.Discover(context.Background(), "http://", defaultOpts())

		require.Error(t, err)
		assert.Equal(t, sitescout.EINVALID, sitescout.ErrorCode(err))
	})

	t.Run("cancellation returns the partial result", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		crawler := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(c context.Context, url string) (string, error) {
					if url == "https://example.com" {
						return url, nil
					}
					// Cancel during the first depth-1 batch.
					cancel()
					return url, nil
				},
			},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string) ([]string, error) {
					if baseURL == "https://example.com" {
						return []string{
							"https://example.com/a",
							"https://example.com/b",
							"https://example.com/c",
						}, nil
					}
					return []string{"https://example.com/deeper"}, nil
				},
			},
		}

		opts := defaultOpts()
		opts.BatchSize = 1
		result, err := crawler.Discover(ctx, "example.com", opts)

		require.NoError(t, err, "partial results are valid results")
		assert.Contains(t, result.URLs, "https://example.com")
		assert.NotContains(t, result.URLs, "https://example.com/deeper")
		assert.Less(t, result.TotalFound, 5)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		var types []crawl.ProgressType
		crawler := siteCrawler(map[string][]string{
			"https://example.com":       {"https://example.com/about"},
			"https://example.com/about": {},
		})
		crawler.Progress = func(event crawl.ProgressEvent) {
			types = append(types, event.Type)
		}

		_, err := crawler.Discover(context.Background(), "example.com", defaultOpts())
		require.NoError(t, err)

		assert.Contains(t, types, crawl.ProgressDepthStarted)
		assert.Contains(t, types, crawl.ProgressBatchCompleted)
		assert.Equal(t, crawl.ProgressFinished, types[len(types)-1])
	})

	t.Run("excluded extensions never enter the discovered set", func(t *testing.T) {
		t.Parallel()

		crawler := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return url, nil
				},
			},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string) ([]string, error) {
					return []string{
						"https://example.com/brochure.pdf",
						"https://example.com/about",
					}, nil
				},
			},
		}

		result, err := crawler.Discover(context.Background(), "example.com", defaultOpts())
		require.NoError(t, err)

		assert.NotContains(t, result.URLs, "https://example.com/brochure.pdf")
		assert.Contains(t, result.URLs, "https://example.com/about")
	})
}
