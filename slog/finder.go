package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitescout"
)

// Ensure LoggingFinder implements sitescout.Finder.
var _ sitescout.Finder = (*LoggingFinder)(nil)

// LoggingFinder wraps a Finder with summary logging.
type LoggingFinder struct {
	next   sitescout.Finder
	logger *slog.Logger
}

// NewLoggingFinder creates a new LoggingFinder.
func NewLoggingFinder(next sitescout.Finder, logger *slog.Logger) *LoggingFinder {
	return &LoggingFinder{next: next, logger: logger}
}

// Discover delegates to the wrapped finder and logs the crawl summary.
func (f *LoggingFinder) Discover(ctx context.Context, inputURL string, opts sitescout.CrawlOptions) (result *sitescout.DiscoveryResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", inputURL,
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs,
				"found", result.TotalFound,
				"depth", result.MaxDepthReached,
				"failures", result.FailureCount,
			)
		}
		f.logger.Info("discovery", attrs...)
	}(time.Now())
	return f.next.Discover(ctx, inputURL, opts)
}
