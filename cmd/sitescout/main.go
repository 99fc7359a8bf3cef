package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitescout"
	"github.com/fwojciec/sitescout/fs"
	"github.com/fwojciec/sitescout/gemini"
	sshttp "github.com/fwojciec/sitescout/http"
	"github.com/fwojciec/sitescout/htmltomarkdown"
	"github.com/fwojciec/sitescout/rod"
	ssslog "github.com/fwojciec/sitescout/slog"
	"github.com/fwojciec/sitescout/sqlite"
	"github.com/fwojciec/sitescout/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitescout"),
		kong.Description("Discover, prioritize, and fetch a site's pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	db := sqlite.NewDB(cli.DB)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,

		Runs:     sqlite.NewRunService(db),
		Pages:    sqlite.NewPageService(db),
		Sitemaps: ssslog.NewLoggingSitemapSource(sshttp.NewSitemapSource(nil), logger),

		NewFetcher: func(headless bool, timeout time.Duration, userAgent, proxy string) (sitescout.Fetcher, error) {
			if headless {
				fetcher, err := rod.NewFetcher()
				if err != nil {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
					return nil, fmt.Errorf("failed to start browser: %w", err)
				}
				return fetcher, nil
			}
			return sshttp.NewFetcher(
				sshttp.WithTimeout(timeout),
				sshttp.WithUserAgent(userAgent),
				sshttp.WithProxy(proxy),
			)
		},
		NewPageFetcher: func(proxy string, requireProxy bool) (sitescout.PageFetcher, error) {
			fetcher, err := sshttp.NewPageFetcher(
				trafilatura.NewExtractor(),
				htmltomarkdown.NewConverter(),
				proxy,
				requireProxy,
			)
			if err != nil {
				return nil, err
			}
			return ssslog.NewLoggingPageFetcher(fetcher, logger), nil
		},
		NewStore: func(baseDir, name string) sitescout.PageStore {
			return fs.NewFileStore(baseDir, name)
		},
		NewLLM: func() (sitescout.LLMClient, error) {
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				return nil, sitescout.Errorf(sitescout.EINVALID, "GEMINI_API_KEY is not set")
			}
			client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
			if err != nil {
				return nil, fmt.Errorf("failed to create gemini client: %w", err)
			}
			return gemini.NewClient(client), nil
		},
		NewTokenCounter: func() (sitescout.TokenCounter, error) {
			return gemini.NewTokenCounter("gemini-2.0-flash")
		},
	}

	return kctx.Run(deps)
}
