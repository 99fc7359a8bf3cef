package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitescout"
)

// Ensure LoggingPageFetcher implements sitescout.PageFetcher.
var _ sitescout.PageFetcher = (*LoggingPageFetcher)(nil)

// LoggingPageFetcher wraps a PageFetcher with debug logging.
type LoggingPageFetcher struct {
	next   sitescout.PageFetcher
	logger *slog.Logger
}

// NewLoggingPageFetcher creates a new LoggingPageFetcher.
func NewLoggingPageFetcher(next sitescout.PageFetcher, logger *slog.Logger) *LoggingPageFetcher {
	return &LoggingPageFetcher{next: next, logger: logger}
}

// FetchPage delegates to the wrapped fetcher and logs the operation.
func (f *LoggingPageFetcher) FetchPage(ctx context.Context, url string) (page *sitescout.PageDoc, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if page != nil {
			attrs = append(attrs, "status", page.Status, "markdown_bytes", len(page.Markdown))
		}
		f.logger.Debug("page fetch", attrs...)
	}(time.Now())
	return f.next.FetchPage(ctx, url)
}
