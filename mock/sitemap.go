package mock

import (
	"context"

	"github.com/fwojciec/sitescout"
)

var _ sitescout.SitemapSource = (*SitemapSource)(nil)

// SitemapSource is a mock implementation of sitescout.SitemapSource.
type SitemapSource struct {
	DiscoverURLsFn func(ctx context.Context, homepageURL string, scope sitescout.Scope) ([]string, error)
}

func (s *SitemapSource) DiscoverURLs(ctx context.Context, homepageURL string, scope sitescout.Scope) ([]string, error) {
	return s.DiscoverURLsFn(ctx, homepageURL, scope)
}
