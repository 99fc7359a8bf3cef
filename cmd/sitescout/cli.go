package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sitescout"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `help:"Path to the SQLite database" default:"sitescout.db" env:"SITESCOUT_DB"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Discover DiscoverCmd `cmd:"" help:"Discover and prioritize a site's URLs"`
	Runs     RunsCmd     `cmd:"" help:"List stored discovery runs"`
	Show     ShowCmd     `cmd:"" help:"Show a run's prioritized URL selection"`
	Fetch    FetchCmd    `cmd:"" help:"Fetch content for a run's selected URLs"`
	Ask      AskCmd      `cmd:"" help:"Ask a question about a run's fetched pages"`
}

// Dependencies holds all services and configuration for command execution.
// Collaborators only some commands need are created through factories so a
// command that never touches the network or the LLM does not pay for them.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Runs     sitescout.RunService
	Pages    sitescout.PageService
	Sitemaps sitescout.SitemapSource

	NewFetcher      func(headless bool, timeout time.Duration, userAgent, proxy string) (sitescout.Fetcher, error)
	NewPageFetcher  func(proxy string, requireProxy bool) (sitescout.PageFetcher, error)
	NewStore        func(baseDir, name string) sitescout.PageStore
	NewLLM          func() (sitescout.LLMClient, error)
	NewTokenCounter func() (sitescout.TokenCounter, error)
}
