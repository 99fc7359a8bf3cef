package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitescout"
)

// Ensure LoggingSitemapSource implements sitescout.SitemapSource.
var _ sitescout.SitemapSource = (*LoggingSitemapSource)(nil)

// LoggingSitemapSource wraps a SitemapSource with debug logging.
type LoggingSitemapSource struct {
	next   sitescout.SitemapSource
	logger *slog.Logger
}

// NewLoggingSitemapSource creates a new LoggingSitemapSource.
func NewLoggingSitemapSource(next sitescout.SitemapSource, logger *slog.Logger) *LoggingSitemapSource {
	return &LoggingSitemapSource{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped source and logs the operation.
func (s *LoggingSitemapSource) DiscoverURLs(ctx context.Context, homepageURL string, scope sitescout.Scope) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", homepageURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, homepageURL, scope)
}
