package main

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/sitescout"
)

// FetchCmd content-fetches a run's selected URLs, storing the pages and
// exporting them as markdown files.
type FetchCmd struct {
	ID           string `arg:"" required:"" help:"Run ID"`
	Output       string `short:"o" default:"." help:"Base path for markdown export"`
	Proxy        string `env:"PROXY_URL" help:"Upstream HTTP proxy URL"`
	RequireProxy bool   `help:"Fail fast when no proxy is configured"`
	NoExport     bool   `help:"Skip markdown export"`
}

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		return err
	}
	if len(run.Selected) == 0 {
		return sitescout.Errorf(sitescout.EINVALID, "run %s has no selected URLs", run.ID)
	}

	fetcher, err := deps.NewPageFetcher(c.Proxy, c.RequireProxy)
	if err != nil {
		return err
	}

	var store sitescout.PageStore
	if !c.NoExport {
		store = deps.NewStore(c.Output, run.Domain)
	}

	var pages []*sitescout.PageDoc
	for i, sel := range run.Selected {
		fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", i+1, len(run.Selected), truncateURL(sel.URL, 40))

		page, err := fetcher.FetchPage(deps.Ctx, sel.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "\nskip %s: %v\n", sel.URL, err)
			continue
		}
		page.RunID = run.ID

		if err := deps.Pages.CreatePage(deps.Ctx, page); err != nil {
			fmt.Fprintf(deps.Stderr, "\nerror saving %s: %v\n", page.URL, err)
			continue
		}

		if store != nil {
			if err := store.Save(deps.Ctx, page); err != nil {
				_ = store.Abort()
				return fmt.Errorf("error exporting %s: %w", page.URL, err)
			}
		}

		pages = append(pages, page)
	}

	// Clear progress line
	fmt.Fprintf(deps.Stdout, "\r%80s\r", "")

	if store != nil {
		if len(pages) > 0 {
			if err := store.Commit(); err != nil {
				return fmt.Errorf("error committing export: %w", err)
			}
		} else {
			_ = store.Abort()
		}
	}

	fmt.Fprintf(deps.Stdout, "Fetched %d of %d pages\n", len(pages), len(run.Selected))

	c.reportTokens(deps, pages)
	return nil
}

// reportTokens prints the approximate LLM context size of the fetched
// pages. Token counting is best effort; a missing tokenizer never fails
// the fetch.
func (c *FetchCmd) reportTokens(deps *Dependencies, pages []*sitescout.PageDoc) {
	if len(pages) == 0 || deps.NewTokenCounter == nil {
		return
	}
	counter, err := deps.NewTokenCounter()
	if err != nil {
		return
	}

	total := 0
	for _, page := range pages {
		n, err := counter.CountTokens(deps.Ctx, page.Markdown)
		if err != nil {
			return
		}
		total += n
	}
	fmt.Fprintf(deps.Stdout, "~%d tokens of context\n", total)
}

// truncateURL shortens a URL for display by showing only the path.
func truncateURL(rawURL string, maxLen int) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		if len(rawURL) <= maxLen {
			return rawURL
		}
		return rawURL[:maxLen-3] + "..."
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	if len(path) <= maxLen {
		return path
	}

	// Truncate from the left to show the unique suffix
	return "..." + path[len(path)-maxLen+3:]
}
