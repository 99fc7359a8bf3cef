package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/sitescout"
	main "github.com/fwojciec/sitescout/cmd/sitescout"
	"github.com/fwojciec/sitescout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(t *testing.T) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: &stdout,
		Stderr: &stderr,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return deps, &stdout, &stderr
}

func TestDiscoverCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls, selects, and stores a run", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)

		pages := map[string]string{
			"https://example.com": `<html><body>
				<a href="/about">About</a>
				<a href="/faq">FAQ</a>
			</body></html>`,
			"https://example.com/about": `<html><body><a href="/">Home</a></body></html>`,
			"https://example.com/faq":   `<html><body></body></html>`,
		}
		deps.NewFetcher = func(headless bool, timeout time.Duration, userAgent, proxy string) (sitescout.Fetcher, error) {
			return &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					html, ok := pages[url]
					if !ok {
						return "", sitescout.Errorf(sitescout.EFAILED, "HTTP 404 for %s", url)
					}
					return html, nil
				},
			}, nil
		}
		deps.Sitemaps = &mock.SitemapSource{
			DiscoverURLsFn: func(ctx context.Context, homepageURL string, scope sitescout.Scope) ([]string, error) {
				return []string{"https://example.com/products"}, nil
			},
		}
		var stored *sitescout.Run
		deps.Runs = &mock.RunService{
			CreateRunFn: func(ctx context.Context, run *sitescout.Run) error {
				run.ID = "run-1"
				stored = run
				return nil
			},
		}

		cmd := &main.DiscoverCmd{
			URL:         "example.com",
			MaxDepth:    2,
			MaxURLs:     100,
			BatchSize:   10,
			Concurrency: 4,
			Timeout:     5 * time.Second,
			Select:      10,
		}
		err := cmd.Run(deps)
		require.NoError(t, err)

		require.NotNil(t, stored, "run should be stored")
		assert.Equal(t, "https://example.com", stored.Homepage)
		assert.Equal(t, "example.com", stored.Domain)
		require.NotNil(t, stored.Result)
		assert.Contains(t, stored.Result.URLs, "https://example.com/about")
		assert.Contains(t, stored.Result.URLs, "https://example.com/products", "sitemap URL should be merged")
		require.NotEmpty(t, stored.Selected)
		assert.Equal(t, sitescout.BucketHomepage, stored.Selected[0].Bucket)

		assert.Contains(t, stdout.String(), "Stored run run-1")
	})

	t.Run("does not store run with --no-save", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(t)
		deps.NewFetcher = func(headless bool, timeout time.Duration, userAgent, proxy string) (sitescout.Fetcher, error) {
			return &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			}, nil
		}
		deps.Runs = &mock.RunService{
			CreateRunFn: func(ctx context.Context, run *sitescout.Run) error {
				t.Fatal("CreateRun should not be called")
				return nil
			},
		}

		cmd := &main.DiscoverCmd{
			URL:       "example.com",
			MaxURLs:   10,
			NoSitemap: true,
			NoSave:    true,
			Select:    5,
		}
		err := cmd.Run(deps)
		require.NoError(t, err)
	})

	t.Run("propagates proxy requirement error", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(t)
		deps.NewFetcher = func(headless bool, timeout time.Duration, userAgent, proxy string) (sitescout.Fetcher, error) {
			return &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "", nil
				},
			}, nil
		}

		cmd := &main.DiscoverCmd{
			URL:          "example.com",
			RequireProxy: true,
			NoSave:       true,
		}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, sitescout.EINVALID, sitescout.ErrorCode(err))
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints selection with buckets", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		deps.Runs = &mock.RunService{
			FindRunByIDFn: func(ctx context.Context, id string) (*sitescout.Run, error) {
				return &sitescout.Run{
					ID:       id,
					InputURL: "example.com",
					Homepage: "https://example.com",
					Domain:   "example.com",
					Selected: []sitescout.SelectedURL{
						{URL: "https://example.com", Bucket: sitescout.BucketHomepage, Position: 0},
						{URL: "https://example.com/about", Bucket: sitescout.BucketAbout, Position: 1},
					},
				}, nil
			},
		}

		cmd := &main.ShowCmd{ID: "run-1"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, "Run run-1")
		assert.Contains(t, out, "[homepage] https://example.com")
		assert.Contains(t, out, "[about] https://example.com/about")
	})

	t.Run("propagates ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(t)
		deps.Runs = &mock.RunService{
			FindRunByIDFn: func(ctx context.Context, id string) (*sitescout.Run, error) {
				return nil, sitescout.Errorf(sitescout.ENOTFOUND, "run not found")
			},
		}

		cmd := &main.ShowCmd{ID: "missing"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, sitescout.ENOTFOUND, sitescout.ErrorCode(err))
	})
}

func TestFetchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("fetches selected pages and stores them", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		deps.Runs = &mock.RunService{
			FindRunByIDFn: func(ctx context.Context, id string) (*sitescout.Run, error) {
				return &sitescout.Run{
					ID:     id,
					Domain: "example.com",
					Selected: []sitescout.SelectedURL{
						{URL: "https://example.com", Position: 0},
						{URL: "https://example.com/about", Position: 1},
					},
				}, nil
			},
		}
		var created []*sitescout.PageDoc
		deps.Pages = &mock.PageService{
			CreatePageFn: func(ctx context.Context, page *sitescout.PageDoc) error {
				created = append(created, page)
				return nil
			},
		}
		deps.NewPageFetcher = func(proxy string, requireProxy bool) (sitescout.PageFetcher, error) {
			return &mock.PageFetcher{
				FetchPageFn: func(ctx context.Context, url string) (*sitescout.PageDoc, error) {
					return &sitescout.PageDoc{URL: url, Status: 200, Markdown: "# Page"}, nil
				},
			}, nil
		}
		var saved []string
		committed := false
		deps.NewStore = func(baseDir, name string) sitescout.PageStore {
			return &mock.PageStore{
				SaveFn: func(ctx context.Context, page *sitescout.PageDoc) error {
					saved = append(saved, page.URL)
					return nil
				},
				CommitFn: func() error {
					committed = true
					return nil
				},
			}
		}

		cmd := &main.FetchCmd{ID: "run-1", Output: t.TempDir()}
		err := cmd.Run(deps)
		require.NoError(t, err)

		require.Len(t, created, 2)
		assert.Equal(t, "run-1", created[0].RunID)
		assert.Len(t, saved, 2)
		assert.True(t, committed, "export should be committed")
		assert.Contains(t, stdout.String(), "Fetched 2 of 2 pages")
	})

	t.Run("skips failed pages and keeps going", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := testDeps(t)
		deps.Runs = &mock.RunService{
			FindRunByIDFn: func(ctx context.Context, id string) (*sitescout.Run, error) {
				return &sitescout.Run{
					ID:     id,
					Domain: "example.com",
					Selected: []sitescout.SelectedURL{
						{URL: "https://example.com/broken", Position: 0},
						{URL: "https://example.com/about", Position: 1},
					},
				}, nil
			},
		}
		deps.Pages = &mock.PageService{
			CreatePageFn: func(ctx context.Context, page *sitescout.PageDoc) error { return nil },
		}
		deps.NewPageFetcher = func(proxy string, requireProxy bool) (sitescout.PageFetcher, error) {
			return &mock.PageFetcher{
				FetchPageFn: func(ctx context.Context, url string) (*sitescout.PageDoc, error) {
					if url == "https://example.com/broken" {
						return nil, sitescout.Errorf(sitescout.EFAILED, "HTTP 500 for %s", url)
					}
					return &sitescout.PageDoc{URL: url, Status: 200, Markdown: "# About"}, nil
				},
			}, nil
		}

		cmd := &main.FetchCmd{ID: "run-1", NoExport: true}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stderr.String(), "skip https://example.com/broken")
		assert.Contains(t, stdout.String(), "Fetched 1 of 2 pages")
	})

	t.Run("rejects run without selection", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(t)
		deps.Runs = &mock.RunService{
			FindRunByIDFn: func(ctx context.Context, id string) (*sitescout.Run, error) {
				return &sitescout.Run{ID: id}, nil
			},
		}

		cmd := &main.FetchCmd{ID: "run-1"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, sitescout.EINVALID, sitescout.ErrorCode(err))
	})
}

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("answers using the run's pages", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		deps.Pages = &mock.PageService{
			FindPagesByRunFn: func(ctx context.Context, runID string) ([]*sitescout.PageDoc, error) {
				return []*sitescout.PageDoc{
					{URL: "https://example.com/about", Title: "About", Markdown: "We make widgets."},
				}, nil
			},
		}
		var gotReq sitescout.LLMRequest
		deps.NewLLM = func() (sitescout.LLMClient, error) {
			return &mock.LLMClient{
				GenerateFn: func(ctx context.Context, req sitescout.LLMRequest) (*sitescout.LLMResponse, error) {
					gotReq = req
					return &sitescout.LLMResponse{Text: "They make widgets."}, nil
				},
			}, nil
		}

		cmd := &main.AskCmd{ID: "run-1", Question: "What do they make?"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "They make widgets.")
		assert.Contains(t, gotReq.UserPrompt, "We make widgets.")
		assert.Contains(t, gotReq.UserPrompt, "Question: What do they make?")
		assert.NotEmpty(t, gotReq.SystemPrompt)
	})

	t.Run("returns ENOTFOUND when no pages fetched", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(t)
		deps.Pages = &mock.PageService{
			FindPagesByRunFn: func(ctx context.Context, runID string) ([]*sitescout.PageDoc, error) {
				return nil, nil
			},
		}

		cmd := &main.AskCmd{ID: "run-1", Question: "Anything?"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, sitescout.ENOTFOUND, sitescout.ErrorCode(err))
	})
}
